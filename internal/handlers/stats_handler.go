package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/httpresp"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/stats"
)

type StatsHandler struct {
	db *gorm.DB
	tz string
}

func NewStatsHandler(db *gorm.DB, tz string) *StatsHandler {
	return &StatsHandler{db: db, tz: tz}
}

// --------- Loaders ---------

func (h *StatsHandler) statusCounts(from, to time.Time, masterID uint) (map[string]int, error) {
	type row struct {
		Status string
		Count  int
	}
	q := h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("starts_at >= ? AND starts_at <= ?", from, to)
	if masterID != 0 {
		q = q.Where("master_id = ?", masterID)
	}

	var rows []row
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (h *StatsHandler) completedPrices(from, to time.Time, masterID uint) ([]float64, error) {
	q := h.db.Model(&models.Appointment{}).
		Where("status = ? AND starts_at >= ? AND starts_at <= ?", "COMPLETED", from, to)
	if masterID != 0 {
		q = q.Where("master_id = ?", masterID)
	}

	var prices []float64
	err := q.Pluck("price", &prices).Error
	return prices, err
}

func (h *StatsHandler) outMovements(from, to time.Time) ([]stats.OutMovement, error) {
	var rows []models.InventoryMovement
	err := h.db.
		Preload("Item").
		Where("type = ? AND created_at >= ? AND created_at <= ?", models.MovementOut, from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]stats.OutMovement, 0, len(rows))
	for _, m := range rows {
		out = append(out, stats.OutMovement{
			Quantity:     m.Quantity,
			PricePerUnit: m.Item.PricePerUnit,
			Category:     m.Item.Category,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out, nil
}

// serviceSales loads the service-mix rows: APPROVED or COMPLETED with a
// positive price.
func (h *StatsHandler) serviceSales(from, to time.Time, masterID uint, category string) ([]stats.ServiceSale, error) {
	q := h.db.
		Preload("Service").
		Where(
			"status IN ? AND price > 0 AND starts_at >= ? AND starts_at <= ?",
			[]string{"APPROVED", "COMPLETED"}, from, to,
		)
	if masterID != 0 {
		q = q.Where("master_id = ?", masterID)
	}
	if category != "" {
		q = q.Joins("JOIN services ON services.id = appointments.service_id").
			Where("services.category = ?", category)
	}

	var rows []models.Appointment
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]stats.ServiceSale, 0, len(rows))
	for _, ap := range rows {
		sale := stats.ServiceSale{
			ServiceID:   ap.ServiceID,
			ServiceName: ap.ServiceName,
			Price:       ap.Price,
		}
		if ap.Service != nil {
			sale.Category = ap.Service.Category
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (h *StatsHandler) masterSchedules() ([]stats.MasterScheduleInput, error) {
	var masters []models.Master
	if err := h.db.
		Preload("WorkingDays").
		Preload("DayAvailability").
		Find(&masters).Error; err != nil {
		return nil, err
	}

	inputs := make([]stats.MasterScheduleInput, 0, len(masters))
	for _, m := range masters {
		inputs = append(inputs, stats.MasterScheduleInput{
			MasterID:    m.ID,
			MasterName:  m.FullName,
			WorkingDays: m.WorkingDays,
			Overrides:   m.DayAvailability,
		})
	}
	return inputs, nil
}

// bookedSlots collects APPROVED and COMPLETED appointments, the time that
// actually occupies a master's chair.
func (h *StatsHandler) bookedSlots(from, to time.Time) ([]stats.BookedSlot, error) {
	var rows []models.Appointment
	err := h.db.
		Preload("Master").
		Where(
			"status IN ? AND starts_at >= ? AND starts_at <= ?",
			[]string{"APPROVED", "COMPLETED"}, from, to,
		).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	slots := make([]stats.BookedSlot, 0, len(rows))
	for _, ap := range rows {
		slots = append(slots, stats.BookedSlot{
			MasterID:   ap.MasterID,
			MasterName: ap.Master.FullName,
			StartsAt:   ap.StartsAt,
			EndsAt:     ap.EndsAt,
		})
	}
	return slots, nil
}

func (h *StatsHandler) clientHistories() ([]stats.ClientHistory, error) {
	var clients []models.Client
	err := h.db.
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("starts_at ASC")
		}).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}

	histories := make([]stats.ClientHistory, 0, len(clients))
	for _, cl := range clients {
		hist := stats.ClientHistory{
			ID:          cl.ID,
			FullName:    cl.FullName,
			Phone:       &cl.Phone,
			Email:       cl.Email,
			Status:      cl.Status,
			NoShowCount: cl.NoShowCount,
		}
		for _, ap := range cl.Appointments {
			hist.Visits = append(hist.Visits, stats.VisitPoint{
				StartsAt: ap.StartsAt,
				Status:   ap.Status,
				Price:    ap.Price,
			})
		}
		histories = append(histories, hist)
	}
	return histories, nil
}

// --------- Handlers ---------

func (h *StatsHandler) Appointments(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	masterID := uint(intQuery(c, "masterId", 0))
	counts, err := h.statusCounts(from, to, masterID)
	if err != nil {
		httperr.Internal(c, "failed to load appointment stats")
		return
	}

	summary := stats.BuildAppointmentsSummary(counts)
	httpresp.OK(c, gin.H{
		"summary":  summary,
		"byStatus": counts,
	})
}

func (h *StatsHandler) MasterUtilization(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	masters, err := h.masterSchedules()
	if err != nil {
		httperr.Internal(c, "failed to load masters")
		return
	}
	booked, err := h.bookedSlots(from, to)
	if err != nil {
		httperr.Internal(c, "failed to load appointments")
		return
	}

	httpresp.OK(c, stats.MasterUtilization(from, to, masters, booked))
}

func (h *StatsHandler) ClientsDashboard(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	histories, err := h.clientHistories()
	if err != nil {
		httperr.Internal(c, "failed to load clients")
		return
	}

	httpresp.OK(c, stats.BuildClientsDashboard(from, to, histories))
}

// OwnerDashboard is the single call the admin UI renders its home screen
// from: money, load and client health in one payload.
func (h *StatsHandler) OwnerDashboard(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	prices, err := h.completedPrices(from, to, 0)
	if err != nil {
		httperr.Internal(c, "failed to load revenue")
		return
	}
	movements, err := h.outMovements(from, to)
	if err != nil {
		httperr.Internal(c, "failed to load inventory movements")
		return
	}
	counts, err := h.statusCounts(from, to, 0)
	if err != nil {
		httperr.Internal(c, "failed to load appointment stats")
		return
	}
	sales, err := h.serviceSales(from, to, 0, "")
	if err != nil {
		httperr.Internal(c, "failed to load service sales")
		return
	}
	masters, err := h.masterSchedules()
	if err != nil {
		httperr.Internal(c, "failed to load masters")
		return
	}
	booked, err := h.bookedSlots(from, to)
	if err != nil {
		httperr.Internal(c, "failed to load appointments")
		return
	}
	histories, err := h.clientHistories()
	if err != nil {
		httperr.Internal(c, "failed to load clients")
		return
	}

	byService, byCategory := stats.GroupServiceSales(sales)

	httpresp.OK(c, gin.H{
		"finance":           stats.BuildFinanceSummary(prices, movements),
		"appointments":      stats.BuildAppointmentsSummary(counts),
		"services":          stats.BuildServicesStats(byService, byCategory),
		"masterUtilization": stats.MasterUtilization(from, to, masters, booked),
		"clients":           stats.BuildClientsDashboard(from, to, histories),
	})
}
