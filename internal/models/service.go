package models

import "time"

type ServiceCategory string

const (
	CategoryTattoo       ServiceCategory = "TATTOO"
	CategoryPiercing     ServiceCategory = "PIERCING"
	CategoryBeauty       ServiceCategory = "BEAUTY"
	CategoryConsultation ServiceCategory = "CONSULTATION"
	CategoryOther        ServiceCategory = "OTHER"
)

func ValidServiceCategory(c ServiceCategory) bool {
	switch c {
	case CategoryTattoo, CategoryPiercing, CategoryBeauty, CategoryConsultation, CategoryOther:
		return true
	}
	return false
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name                   string          `gorm:"size:150;not null" json:"name"`
	Category               ServiceCategory `gorm:"size:20;default:'OTHER'" json:"category"`
	BasePrice              *float64        `json:"basePrice"`
	DefaultDurationMinutes *int            `json:"defaultDurationMinutes"`
	IsActive               bool            `gorm:"default:true" json:"isActive"`
	Notes                  *string         `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
