package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veldroid/tattoopro-api/internal/audit"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/httpresp"
	"github.com/veldroid/tattoopro-api/internal/middleware"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/redislock"
	"github.com/veldroid/tattoopro-api/internal/schedule"
)

type InventoryHandler struct {
	db     *gorm.DB
	tz     string
	locker redislock.Locker
	audit  *audit.Dispatcher
}

func NewInventoryHandler(db *gorm.DB, tz string, locker redislock.Locker, audit *audit.Dispatcher) *InventoryHandler {
	return &InventoryHandler{db: db, tz: tz, locker: locker, audit: audit}
}

// --------- Requests ---------

type InventoryItemRequest struct {
	Name         string                   `json:"name" binding:"required"`
	Unit         string                   `json:"unit" binding:"required"`
	SKU          *string                  `json:"sku"`
	MinQuantity  *int                     `json:"minQuantity"`
	PricePerUnit *float64                 `json:"pricePerUnit"`
	Category     models.InventoryCategory `json:"category"`
	IsActive     *bool                    `json:"isActive"`
	Notes        *string                  `json:"notes"`
}

type MovementRequest struct {
	ItemID   uint                `json:"itemId" binding:"required"`
	Type     models.MovementType `json:"type" binding:"required"`
	Quantity int                 `json:"quantity" binding:"required"`
	Reason   *string             `json:"reason"`
}

// --------- Items ---------

func (h *InventoryHandler) List(c *gin.Context) {
	q := h.db.Model(&models.InventoryItem{})

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var items []models.InventoryItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed to list inventory")
		return
	}

	httpresp.OK(c, items)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	var item models.InventoryItem
	if err := h.db.First(&item, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "item not found")
		return
	}
	httpresp.OK(c, item)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	category := req.Category
	if category == "" {
		category = models.InventoryOther
	}
	if !models.ValidInventoryCategory(category) {
		httperr.BadRequestCode(c, "INVALID_CATEGORY", "unknown inventory category")
		return
	}

	item := models.InventoryItem{
		Name:         strings.TrimSpace(req.Name),
		Unit:         strings.TrimSpace(req.Unit),
		SKU:          req.SKU,
		PricePerUnit: req.PricePerUnit,
		Category:     category,
		IsActive:     true,
		Notes:        req.Notes,
	}
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed to create item")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "inventory_item_created",
		Entity:   "inventory_item",
		EntityID: &item.ID,
	})

	httpresp.Created(c, item)
}

// Update never touches Quantity, stock level changes only through movements.
func (h *InventoryHandler) Update(c *gin.Context) {
	var item models.InventoryItem
	if err := h.db.First(&item, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "item not found")
		return
	}

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	if req.Category != "" {
		if !models.ValidInventoryCategory(req.Category) {
			httperr.BadRequestCode(c, "INVALID_CATEGORY", "unknown inventory category")
			return
		}
		item.Category = req.Category
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Unit = strings.TrimSpace(req.Unit)
	item.SKU = req.SKU
	item.PricePerUnit = req.PricePerUnit
	item.Notes = req.Notes
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed to update item")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "inventory_item_updated",
		Entity:   "inventory_item",
		EntityID: &item.ID,
	})

	httpresp.OK(c, item)
}

// Delete deactivates the item. The movement ledger references it forever, so
// rows are never removed.
func (h *InventoryHandler) Delete(c *gin.Context) {
	var item models.InventoryItem
	if err := h.db.First(&item, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "item not found")
		return
	}

	if err := h.db.Model(&item).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed to delete item")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "inventory_item_deactivated",
		Entity:   "inventory_item",
		EntityID: &item.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// LowStock lists active items at or below their minimum, the restock list.
// Items already at zero are excluded, they show up through the ledger anyway.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	limit := intQuery(c, "limit", 50)

	var items []models.InventoryItem
	if err := h.db.
		Where("is_active = ? AND quantity > 0 AND quantity <= min_quantity", true).
		Order("quantity ASC").
		Limit(limit).
		Find(&items).Error; err != nil {

		httperr.Internal(c, "failed to list low stock")
		return
	}

	httpresp.OK(c, items)
}

// --------- Movements ---------

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	page, limit, offset := pageParams(c, 50, 200)

	q := h.db.Model(&models.InventoryMovement{})

	if itemID := c.Query("itemId"); itemID != "" {
		q = q.Where("item_id = ?", itemID)
	}
	if mType := c.Query("type"); mType != "" {
		q = q.Where("type = ?", mType)
	}
	if s := c.Query("from"); s != "" {
		from, err := parseDateIn(h.tz, s)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "bad from date")
			return
		}
		q = q.Where("created_at >= ?", from)
	}
	if s := c.Query("to"); s != "" {
		to, err := parseDateIn(h.tz, s)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "bad to date")
			return
		}
		q = q.Where("created_at <= ?", schedule.EndOfDay(to))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed to count movements")
		return
	}

	var movements []models.InventoryMovement
	if err := q.
		Preload("Item").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&movements).Error; err != nil {

		httperr.Internal(c, "failed to list movements")
		return
	}

	httpresp.List(c, movements, total, page, limit)
}

// CreateMovement appends a ledger row and adjusts the item balance in one
// transaction. The quantity can never go below zero.
func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	if !models.ValidMovementType(req.Type) {
		httperr.BadRequestCode(c, "INVALID_TYPE", "movement type must be IN, OUT or ADJUST")
		return
	}
	if req.Quantity <= 0 {
		httperr.BadRequestCode(c, "INVALID_QUANTITY", "quantity must be positive")
		return
	}

	var item models.InventoryItem
	var movement models.InventoryMovement

	err := h.locker.WithLock(c.Request.Context(), redislock.ItemKey(req.ItemID), func(ctx context.Context) error {
		return h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&item, req.ItemID).Error; err != nil {
				return err
			}

			next := models.NextQuantity(item.Quantity, req.Type, req.Quantity)
			if next < 0 {
				return httperr.ErrBusiness("NEGATIVE_QUANTITY")
			}

			movement = models.InventoryMovement{
				ItemID:   item.ID,
				Type:     req.Type,
				Quantity: req.Quantity,
				Reason:   req.Reason,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}

			if err := tx.Model(&item).Update("quantity", next).Error; err != nil {
				return err
			}
			item.Quantity = next
			return nil
		})
	})
	if err != nil {
		var be httperr.BusinessError
		switch {
		case errors.As(err, &be):
			httperr.BadRequestCode(c, be.Code, "movement would make the stock negative")
		case errors.Is(err, gorm.ErrRecordNotFound):
			httperr.NotFound(c, "item not found")
		case errors.Is(err, redislock.ErrLockNotAcquired):
			httperr.Conflict(c, "BUSY", "try again in a moment")
		default:
			httperr.Internal(c, "failed to create movement")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "inventory_movement_created",
		Entity:   "inventory_movement",
		EntityID: &movement.ID,
		Metadata: gin.H{"type": req.Type, "quantity": req.Quantity},
	})

	httpresp.Created(c, gin.H{
		"item":     item,
		"movement": movement,
	})
}
