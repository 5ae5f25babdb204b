package models

import "time"

type InventoryCategory string

const (
	InventoryConsumable InventoryCategory = "CONSUMABLE"
	InventoryJewelry    InventoryCategory = "JEWELRY"
	InventoryAftercare  InventoryCategory = "AFTERCARE"
	InventoryEquipment  InventoryCategory = "EQUIPMENT"
	InventoryOther      InventoryCategory = "OTHER"
)

func ValidInventoryCategory(c InventoryCategory) bool {
	switch c {
	case InventoryConsumable, InventoryJewelry, InventoryAftercare, InventoryEquipment, InventoryOther:
		return true
	}
	return false
}

type MovementType string

const (
	MovementIn     MovementType = "IN"
	MovementOut    MovementType = "OUT"
	MovementAdjust MovementType = "ADJUST"
)

func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string  `gorm:"size:150;not null" json:"name"`
	Unit string  `gorm:"size:20;not null" json:"unit"`
	SKU  *string `gorm:"size:50" json:"sku"`

	Quantity    int `gorm:"not null;default:0" json:"quantity"` // >= 0 invariant
	MinQuantity int `gorm:"not null;default:0" json:"minQuantity"`

	PricePerUnit *float64          `json:"pricePerUnit"`
	Category     InventoryCategory `gorm:"size:20;default:'OTHER'" json:"category"`
	IsActive     bool              `gorm:"default:true" json:"isActive"`
	Notes        *string           `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventoryMovement is an append-only ledger row. The owning item's quantity
// is adjusted in the same transaction that inserts the movement.
type InventoryMovement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ItemID uint          `gorm:"index;not null" json:"itemId"`
	Item   InventoryItem `json:"item"`

	Type     MovementType `gorm:"size:10;not null" json:"type"`
	Quantity int          `gorm:"not null" json:"quantity"`
	Reason   *string      `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// NextQuantity applies a movement to the current balance. IN adds, OUT
// subtracts, ADJUST sets the absolute value.
func NextQuantity(current int, t MovementType, quantity int) int {
	switch t {
	case MovementIn:
		return current + quantity
	case MovementOut:
		return current - quantity
	case MovementAdjust:
		return quantity
	}
	return current
}
