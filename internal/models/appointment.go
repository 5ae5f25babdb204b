package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referential integrity is enforced in the handlers, not by the
	// database: masters and clients may be deleted while their history
	// stays queryable, so no FK constraints are created for these ids.
	ClientID uint   `gorm:"index;not null" json:"clientId"`
	Client   Client `json:"client"`

	MasterID uint   `gorm:"index;not null" json:"masterId"`
	Master   Master `json:"master"`

	// ServiceID may be nil (service deleted or never set); ServiceName is a
	// denormalized snapshot and is always present.
	ServiceID   *uint    `json:"serviceId"`
	Service     *Service `json:"service"`
	ServiceName string   `gorm:"size:150;not null" json:"serviceName"`

	// Price is the amount actually charged, independent of Service.BasePrice.
	Price float64 `gorm:"not null;default:0" json:"price"`

	StartsAt time.Time `gorm:"index;not null" json:"startsAt"`
	EndsAt   time.Time `gorm:"not null" json:"endsAt"`

	Status string  `gorm:"size:20;default:'PENDING'" json:"status"`
	Notes  *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
