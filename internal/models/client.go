package models

import "time"

type ClientStatus string

const (
	ClientRegular ClientStatus = "REGULAR"
	ClientVIP     ClientStatus = "VIP"
	ClientRisk    ClientStatus = "RISK"
)

func ValidClientStatus(s ClientStatus) bool {
	switch s {
	case ClientRegular, ClientVIP, ClientRisk:
		return true
	}
	return false
}

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName  string     `gorm:"size:150;not null" json:"fullName"`
	Phone     string     `gorm:"size:30;not null" json:"phone"`
	Email     *string    `gorm:"size:150" json:"email"`
	BirthDate *time.Time `json:"birthDate"`
	Notes     *string    `gorm:"type:text" json:"notes"`

	IsBlocked   bool         `gorm:"default:false" json:"isBlocked"`
	NoShowCount int          `gorm:"default:0" json:"noShowCount"`
	Status      ClientStatus `gorm:"size:20;default:'REGULAR'" json:"status"`

	Appointments []Appointment `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
