package models

import "time"

type Master struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName       string  `gorm:"size:150;not null" json:"fullName"`
	Specialization *string `gorm:"size:100" json:"specialization"`
	Phone          *string `gorm:"size:30" json:"phone"`
	Bio            *string `gorm:"type:text" json:"bio"`
	IsActive       bool    `gorm:"default:true" json:"isActive"`

	WorkingDays     []MasterWorkingDay      `json:"-"`
	DayAvailability []MasterDayAvailability `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MasterWorkingDay is the recurring weekly template: one row per weekday.
type MasterWorkingDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MasterID uint `gorm:"index;not null" json:"masterId"`

	Weekday   int    `gorm:"not null" json:"weekday"` // 0 = Sunday .. 6 = Saturday
	StartTime string `gorm:"size:5" json:"startTime"` // "HH:MM"
	EndTime   string `gorm:"size:5" json:"endTime"`
	IsDayOff  bool   `gorm:"default:false" json:"isDayOff"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MasterDayAvailability overrides the weekly template for one concrete date.
// Date is always normalized to local midnight.
type MasterDayAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MasterID uint `gorm:"index;not null" json:"masterId"`

	Date      time.Time `gorm:"index;not null" json:"date"`
	StartTime string    `gorm:"size:5" json:"startTime"`
	EndTime   string    `gorm:"size:5" json:"endTime"`
	IsDayOff  bool      `gorm:"default:false" json:"isDayOff"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
