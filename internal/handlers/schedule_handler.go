package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/audit"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/httpresp"
	"github.com/veldroid/tattoopro-api/internal/middleware"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/schedule"
)

type ScheduleHandler struct {
	db    *gorm.DB
	tz    string
	audit *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, tz string, audit *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, tz: tz, audit: audit}
}

// --------- Requests ---------

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsDayOff  bool   `json:"isDayOff"`
}

type WeeklyScheduleRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

type DayOverrideConfig struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsDayOff  bool   `json:"isDayOff"`
}

type DayAvailabilityRequest struct {
	From string              `json:"from" binding:"required"`
	To   string              `json:"to" binding:"required"`
	Days []DayOverrideConfig `json:"days" binding:"required"`
}

// --------- Weekly template ---------

func (h *ScheduleHandler) GetWeekly(c *gin.Context) {
	masterID := c.Param("id")

	if err := h.db.First(&models.Master{}, masterID).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}

	var days []models.MasterWorkingDay
	if err := h.db.
		Where("master_id = ?", masterID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		httperr.Internal(c, "failed to get schedule")
		return
	}

	httpresp.OK(c, days)
}

// PutWeekly replaces the whole weekly template atomically, clear then insert.
func (h *ScheduleHandler) PutWeekly(c *gin.Context) {
	var master models.Master
	if err := h.db.First(&master, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}

	var req WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	for _, d := range req.Days {
		if !d.IsDayOff && !validTimeRange(d.StartTime, d.EndTime) {
			httperr.BadRequestCode(c, "INVALID_TIME", "startTime must be before endTime")
			return
		}
	}

	var toCreate []models.MasterWorkingDay
	for _, d := range req.Days {
		toCreate = append(toCreate, models.MasterWorkingDay{
			MasterID:  master.ID,
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsDayOff:  d.IsDayOff,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", master.ID).Delete(&models.MasterWorkingDay{}).Error; err != nil {
			return err
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed to save schedule")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "schedule_replaced",
		Entity:   "master",
		EntityID: &master.ID,
	})

	httpresp.OK(c, toCreate)
}

// --------- Per-date overrides ---------

func (h *ScheduleHandler) ListDayAvailability(c *gin.Context) {
	masterID := c.Param("id")

	if err := h.db.First(&models.Master{}, masterID).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}

	q := h.db.Where("master_id = ?", masterID)

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := parseDateIn(h.tz, fromStr)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "bad from date")
			return
		}
		q = q.Where("date >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := parseDateIn(h.tz, toStr)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "bad to date")
			return
		}
		q = q.Where("date <= ?", schedule.EndOfDay(to))
	}

	var overrides []models.MasterDayAvailability
	if err := q.Order("date ASC").Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed to get day availability")
		return
	}

	httpresp.OK(c, overrides)
}

// PutDayAvailability replaces every override in [from, to] with the given
// set, delete-range then bulk insert in one transaction. Dates outside the
// declared range are rejected before anything is touched.
func (h *ScheduleHandler) PutDayAvailability(c *gin.Context) {
	var master models.Master
	if err := h.db.First(&master, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "master not found")
		return
	}

	var req DayAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	from, err := parseDateIn(h.tz, req.From)
	if err != nil {
		httperr.BadRequestCode(c, "INVALID_DATE", "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateIn(h.tz, req.To)
	if err != nil {
		httperr.BadRequestCode(c, "INVALID_DATE", "to must be YYYY-MM-DD")
		return
	}
	from = schedule.Normalize(from)
	to = schedule.Normalize(to)

	toCreate := make([]models.MasterDayAvailability, 0, len(req.Days))
	for _, d := range req.Days {
		date, err := parseDateIn(h.tz, d.Date)
		if err != nil {
			httperr.BadRequestCode(c, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
		date = schedule.Normalize(date)

		if date.Before(from) || date.After(to) {
			httperr.BadRequestCode(c, "DATE_OUT_OF_RANGE", "date is outside of [from, to]")
			return
		}
		if !d.IsDayOff && !validTimeRange(d.StartTime, d.EndTime) {
			httperr.BadRequestCode(c, "INVALID_TIME", "startTime must be before endTime")
			return
		}

		toCreate = append(toCreate, models.MasterDayAvailability{
			MasterID:  master.ID,
			Date:      date,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsDayOff:  d.IsDayOff,
		})
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("master_id = ? AND date >= ? AND date <= ?", master.ID, from, to).
			Delete(&models.MasterDayAvailability{}).Error; err != nil {
			return err
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed to save day availability")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "day_availability_replaced",
		Entity:   "master",
		EntityID: &master.ID,
		Metadata: gin.H{"from": req.From, "to": req.To, "days": len(toCreate)},
	})

	httpresp.OK(c, gin.H{
		"masterId":         master.ID,
		"from":             from,
		"to":               to,
		"updatedDaysCount": len(toCreate),
	})
}

func validTimeRange(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	return schedule.MinutesOfDay(start) < schedule.MinutesOfDay(end)
}
