package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/csvutil"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/schedule"
	"github.com/veldroid/tattoopro-api/internal/stats"
)

type ExportHandler struct {
	db    *gorm.DB
	tz    string
	stats *StatsHandler
}

func NewExportHandler(db *gorm.DB, tz string) *ExportHandler {
	return &ExportHandler{db: db, tz: tz, stats: NewStatsHandler(db, tz)}
}

func writeCSV(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", []byte(body))
}

func fmtMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func fmtFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Clients exports the per-client report as a spreadsheet.
func (h *ExportHandler) Clients(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	histories, err := h.stats.clientHistories()
	if err != nil {
		httperr.Internal(c, "failed to load clients")
		return
	}

	_, items := stats.BuildClientReport(from, to, histories)

	rows := [][]string{{
		"clientId", "fullName", "phone", "email", "status", "noShowCount",
		"firstVisit", "lastVisit", "totalVisits", "visitsInRange",
		"revenueInRange", "isNewInRange", "daysSinceLastVisit",
		"activitySegment", "hasSecondVisitWithin90Days",
	}}
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(it.ClientID), 10),
			it.FullName,
			strOrEmpty(it.Phone),
			strOrEmpty(it.Email),
			string(it.Status),
			strconv.Itoa(it.NoShowCount),
			it.FirstVisit,
			it.LastVisit,
			strconv.Itoa(it.TotalVisits),
			strconv.Itoa(it.VisitsInRange),
			fmtMoney(it.RevenueInRange),
			fmtFlag(it.IsNewInRange),
			strconv.Itoa(it.DaysSinceLastVisit),
			string(it.ActivitySegment),
			fmtFlag(it.HasSecondVisitWithin90Days),
		})
	}

	writeCSV(c, "clients.csv", csvutil.Render(rows))
}

func (h *ExportHandler) Appointments(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	q := h.db.
		Preload("Client").
		Preload("Master").
		Where("starts_at >= ? AND starts_at <= ?", from, to)
	if masterID := c.Query("masterId"); masterID != "" {
		q = q.Where("master_id = ?", masterID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.
		Order("starts_at ASC").
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed to load appointments")
		return
	}

	rows := [][]string{{
		"id", "startsAt", "endsAt", "status", "client", "master",
		"service", "price", "notes",
	}}
	for _, ap := range appointments {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(ap.ID), 10),
			ap.StartsAt.Format(time.RFC3339),
			ap.EndsAt.Format(time.RFC3339),
			ap.Status,
			ap.Client.FullName,
			ap.Master.FullName,
			ap.ServiceName,
			fmtMoney(ap.Price),
			strOrEmpty(ap.Notes),
		})
	}

	writeCSV(c, "appointments.csv", csvutil.Render(rows))
}

// Finance exports one row per completed appointment with the consumables
// cost of its day alongside. The BOM prefix makes Excel open it as UTF-8
// instead of guessing.
func (h *ExportHandler) Finance(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	var completed []models.Appointment
	if err := h.db.
		Preload("Master").
		Preload("Service").
		Where("status = ? AND starts_at >= ? AND starts_at <= ?", "COMPLETED", from, to).
		Order("starts_at ASC").
		Find(&completed).Error; err != nil {

		httperr.Internal(c, "failed to load revenue")
		return
	}
	movements, err := h.stats.outMovements(from, to)
	if err != nil {
		httperr.Internal(c, "failed to load inventory movements")
		return
	}
	cogsByDay := stats.CogsByDay(movements)

	rows := [][]string{{
		"date", "appointmentId", "masterName", "serviceName",
		"serviceCategory", "appointmentPrice", "clientId",
		"cogsApproxDayConsumables",
	}}
	for _, ap := range completed {
		category := models.CategoryOther
		if ap.Service != nil {
			category = ap.Service.Category
		}

		cogsCell := ""
		if cogs := cogsByDay[schedule.DateKey(ap.StartsAt)]; cogs > 0 {
			cogsCell = fmtMoney(cogs)
		}

		rows = append(rows, []string{
			schedule.DateKey(ap.StartsAt),
			strconv.FormatUint(uint64(ap.ID), 10),
			ap.Master.FullName,
			ap.ServiceName,
			string(category),
			fmtMoney(ap.Price),
			strconv.FormatUint(uint64(ap.ClientID), 10),
			cogsCell,
		})
	}

	writeCSV(c, "finance.csv", csvutil.BOM+csvutil.Render(rows))
}
