package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/audit"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/httpresp"
	"github.com/veldroid/tattoopro-api/internal/middleware"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/redislock"
	"github.com/veldroid/tattoopro-api/internal/schedule"
	ucAppointment "github.com/veldroid/tattoopro-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db       *gorm.DB
	tz       string
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	audit    *audit.Dispatcher
}

func NewAppointmentHandler(
	db *gorm.DB,
	tz string,
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	audit *audit.Dispatcher,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		tz:       tz,
		createUC: createUC,
		updateUC: updateUC,
		audit:    audit,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID    uint     `json:"clientId" binding:"required"`
	MasterID    uint     `json:"masterId" binding:"required"`
	ServiceID   *uint    `json:"serviceId"`
	ServiceName string   `json:"serviceName"`
	Price       *float64 `json:"price"`
	StartsAt    string   `json:"startsAt" binding:"required"`
	EndsAt      string   `json:"endsAt"`
	Status      string   `json:"status"`
	Notes       *string  `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ClientID    *uint    `json:"clientId"`
	MasterID    *uint    `json:"masterId"`
	ServiceID   *uint    `json:"serviceId"`
	ServiceName *string  `json:"serviceName"`
	Price       *float64 `json:"price"`
	StartsAt    *string  `json:"startsAt"`
	EndsAt      *string  `json:"endsAt"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit, offset := pageParams(c, 50, 200)

	q := h.db.Model(&models.Appointment{}).
		Preload("Client").
		Preload("Master").
		Preload("Service")

	if s := c.Query("from"); s != "" {
		from, err := parseDateIn(h.tz, s)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "bad from date")
			return
		}
		q = q.Where("starts_at >= ?", from)
	}
	if s := c.Query("to"); s != "" {
		to, err := parseDateIn(h.tz, s)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "bad to date")
			return
		}
		q = q.Where("starts_at <= ?", schedule.EndOfDay(to))
	}

	if masterID := c.Query("masterId"); masterID != "" {
		q = q.Where("master_id = ?", masterID)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed to count appointments")
		return
	}

	var appointments []models.Appointment
	if err := q.
		Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed to list appointments")
		return
	}

	httpresp.List(c, appointments, total, page, limit)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Master").
		Preload("Service").
		First(&ap, c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "appointment not found")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		MasterID:    req.MasterID,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		Price:       req.Price,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      req.Status,
		Notes:       req.Notes,
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid appointment id")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:          uint(id),
		ClientID:    req.ClientID,
		MasterID:    req.MasterID,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		Price:       req.Price,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      req.Status,
		Notes:       req.Notes,
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment not found")
			return
		}
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	var ap models.Appointment
	if err := h.db.First(&ap, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "appointment not found")
		return
	}

	if err := h.db.Delete(&ap).Error; err != nil {
		httperr.Internal(c, "failed to delete appointment")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

func writeAppointmentError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "OVERLAP":
			httperr.BadRequestCode(c, be.Code, "master already booked for this time")
		case "CLIENT_NOT_FOUND", "MASTER_NOT_FOUND", "SERVICE_NOT_FOUND":
			httperr.NotFoundCode(c, be.Code, "referenced record not found")
		default:
			httperr.BadRequestCode(c, be.Code, be.Code)
		}
		return
	}
	if errors.Is(err, redislock.ErrLockNotAcquired) {
		httperr.Conflict(c, "BUSY", "try again in a moment")
		return
	}
	httperr.Internal(c, "failed to save appointment")
}
