package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/audit"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/httpresp"
	"github.com/veldroid/tattoopro-api/internal/middleware"
	"github.com/veldroid/tattoopro-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

type ServiceRequest struct {
	Name                   string                 `json:"name" binding:"required"`
	Category               models.ServiceCategory `json:"category"`
	BasePrice              *float64               `json:"basePrice"`
	DefaultDurationMinutes *int                   `json:"defaultDurationMinutes"`
	IsActive               *bool                  `json:"isActive"`
	Notes                  *string                `json:"notes"`
}

// List returns active services only unless includeInactive=true.
func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{})

	if c.Query("includeInactive") != "true" {
		q = q.Where("is_active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed to list services")
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service not found")
		return
	}
	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidServiceCategory(category) {
		httperr.BadRequestCode(c, "INVALID_CATEGORY", "unknown service category")
		return
	}

	service := models.Service{
		Name:                   strings.TrimSpace(req.Name),
		Category:               category,
		BasePrice:              req.BasePrice,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		IsActive:               true,
		Notes:                  req.Notes,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed to create service")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service not found")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	if req.Category != "" {
		if !models.ValidServiceCategory(req.Category) {
			httperr.BadRequestCode(c, "INVALID_CATEGORY", "unknown service category")
			return
		}
		service.Category = req.Category
	}

	service.Name = strings.TrimSpace(req.Name)
	service.BasePrice = req.BasePrice
	service.DefaultDurationMinutes = req.DefaultDurationMinutes
	service.Notes = req.Notes
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed to update service")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

// Delete deactivates the service. Past appointments keep both the reference
// and the snapshot service_name, so history stays intact.
func (h *ServiceHandler) Delete(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service not found")
		return
	}

	if err := h.db.Model(&service).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed to delete service")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
