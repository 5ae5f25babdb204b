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

type MasterHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMasterHandler(db *gorm.DB, audit *audit.Dispatcher) *MasterHandler {
	return &MasterHandler{db: db, audit: audit}
}

// --------- Requests ---------

type MasterRequest struct {
	FullName       string  `json:"fullName" binding:"required"`
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
	IsActive       *bool   `json:"isActive"`
}

// --------- Handlers ---------

func (h *MasterHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Master{})

	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var masters []models.Master
	if err := q.Order("full_name ASC").Find(&masters).Error; err != nil {
		httperr.Internal(c, "failed to list masters")
		return
	}

	httpresp.OK(c, masters)
}

func (h *MasterHandler) Get(c *gin.Context) {
	var master models.Master
	if err := h.db.First(&master, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}
	httpresp.OK(c, master)
}

func (h *MasterHandler) Create(c *gin.Context) {
	var req MasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	master := models.Master{
		FullName:       strings.TrimSpace(req.FullName),
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Bio:            req.Bio,
		IsActive:       true,
	}
	if req.IsActive != nil {
		master.IsActive = *req.IsActive
	}

	if err := h.db.Create(&master).Error; err != nil {
		httperr.Internal(c, "failed to create master")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "master_created",
		Entity:   "master",
		EntityID: &master.ID,
	})

	httpresp.Created(c, master)
}

func (h *MasterHandler) Update(c *gin.Context) {
	var master models.Master
	if err := h.db.First(&master, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}

	var req MasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	master.FullName = strings.TrimSpace(req.FullName)
	master.Specialization = req.Specialization
	master.Phone = req.Phone
	master.Bio = req.Bio
	if req.IsActive != nil {
		master.IsActive = *req.IsActive
	}

	if err := h.db.Save(&master).Error; err != nil {
		httperr.Internal(c, "failed to update master")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "master_updated",
		Entity:   "master",
		EntityID: &master.ID,
	})

	httpresp.OK(c, master)
}

// Delete removes a master together with its schedule rows. Appointments stay,
// they keep the historical master id for reporting.
func (h *MasterHandler) Delete(c *gin.Context) {
	var master models.Master
	if err := h.db.First(&master, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", master.ID).Delete(&models.MasterWorkingDay{}).Error; err != nil {
			return err
		}
		if err := tx.Where("master_id = ?", master.ID).Delete(&models.MasterDayAvailability{}).Error; err != nil {
			return err
		}
		return tx.Delete(&master).Error
	})
	if err != nil {
		httperr.Internal(c, "failed to delete master")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "master_deleted",
		Entity:   "master",
		EntityID: &master.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
