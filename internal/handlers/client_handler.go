package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/audit"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/httpresp"
	"github.com/veldroid/tattoopro-api/internal/middleware"
	"github.com/veldroid/tattoopro-api/internal/models"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

// --------- Requests ---------

type ClientRequest struct {
	FullName  string              `json:"fullName" binding:"required"`
	Phone     string              `json:"phone" binding:"required"`
	Email     *string             `json:"email"`
	BirthDate *time.Time          `json:"birthDate"`
	Notes     *string             `json:"notes"`
	IsBlocked *bool               `json:"isBlocked"`
	Status    models.ClientStatus `json:"status"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	page, limit, offset := pageParams(c, 50, 200)

	q := h.db.Model(&models.Client{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed to count clients")
		return
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed to list clients")
		return
	}

	httpresp.List(c, clients, total, page, limit)
}

func (h *ClientHandler) Get(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client not found")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	status := req.Status
	if status == "" {
		status = models.ClientRegular
	}
	if !models.ValidClientStatus(status) {
		httperr.BadRequestCode(c, "INVALID_STATUS", "unknown client status")
		return
	}

	client := models.Client{
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
		BirthDate: req.BirthDate,
		Notes:     req.Notes,
		Status:    status,
	}
	if req.IsBlocked != nil {
		client.IsBlocked = *req.IsBlocked
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed to create client")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client not found")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	if req.Status != "" && !models.ValidClientStatus(req.Status) {
		httperr.BadRequestCode(c, "INVALID_STATUS", "unknown client status")
		return
	}

	client.FullName = strings.TrimSpace(req.FullName)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = req.Email
	client.BirthDate = req.BirthDate
	client.Notes = req.Notes
	if req.IsBlocked != nil {
		client.IsBlocked = *req.IsBlocked
	}
	if req.Status != "" {
		client.Status = req.Status
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed to update client")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client not found")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		httperr.Internal(c, "failed to delete client")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// Problem lists clients with repeated no-shows, the ones worth a phone call
// before accepting a new booking.
func (h *ClientHandler) Problem(c *gin.Context) {
	minNoShow := intQuery(c, "minNoShow", 1)
	limit := intQuery(c, "limit", 50)

	var clients []models.Client
	if err := h.db.
		Where("no_show_count >= ?", minNoShow).
		Order("no_show_count DESC").
		Limit(limit).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed to list problem clients")
		return
	}

	httpresp.OK(c, clients)
}
