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

type ReportHandler struct {
	db    *gorm.DB
	tz    string
	stats *StatsHandler
}

func NewReportHandler(db *gorm.DB, tz string) *ReportHandler {
	return &ReportHandler{db: db, tz: tz, stats: NewStatsHandler(db, tz)}
}

func (h *ReportHandler) masterSales(from, to time.Time, masterID uint) ([]stats.MasterSale, error) {
	q := h.db.
		Preload("Master").
		Where(
			"status = ? AND starts_at >= ? AND starts_at <= ?",
			"COMPLETED", from, to,
		)
	if masterID != 0 {
		q = q.Where("master_id = ?", masterID)
	}

	var rows []models.Appointment
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]stats.MasterSale, 0, len(rows))
	for _, ap := range rows {
		sales = append(sales, stats.MasterSale{
			MasterID:   ap.MasterID,
			MasterName: ap.Master.FullName,
			ClientID:   ap.ClientID,
			Price:      ap.Price,
		})
	}
	return sales, nil
}

// --------- Handlers ---------

// Clients is the detailed per-client report: one row per client with
// lifetime history, plus the period summary.
func (h *ReportHandler) Clients(c *gin.Context) {
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

	summary, items := stats.BuildClientReport(from, to, histories)
	httpresp.OK(c, gin.H{
		"summary": summary,
		"clients": items,
	})
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	masterID := uint(intQuery(c, "masterId", 0))

	prices, err := h.stats.completedPrices(from, to, masterID)
	if err != nil {
		httperr.Internal(c, "failed to load revenue")
		return
	}
	movements, err := h.stats.outMovements(from, to)
	if err != nil {
		httperr.Internal(c, "failed to load inventory movements")
		return
	}
	sales, err := h.masterSales(from, to, masterID)
	if err != nil {
		httperr.Internal(c, "failed to load master sales")
		return
	}

	total, byMaster := stats.MasterRevenue(sales)
	httpresp.OK(c, gin.H{
		"summary":      stats.BuildFinanceSummary(prices, movements),
		"totalRevenue": total,
		"byMaster":     byMaster,
		"cogsByDay":    stats.CogsByDay(movements),
	})
}

func (h *ReportHandler) Services(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	masterID := uint(intQuery(c, "masterId", 0))
	sales, err := h.stats.serviceSales(from, to, masterID, c.Query("serviceCategory"))
	if err != nil {
		httperr.Internal(c, "failed to load service sales")
		return
	}

	byService, byCategory := stats.GroupServiceSales(sales)
	httpresp.OK(c, gin.H{
		"summary":    stats.BuildServicesStats(byService, byCategory),
		"byService":  byService,
		"byCategory": byCategory,
	})
}

func (h *ReportHandler) InventoryOut(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	movements, err := h.stats.outMovements(from, to)
	if err != nil {
		httperr.Internal(c, "failed to load inventory movements")
		return
	}

	httpresp.OK(c, gin.H{
		"byCategory": stats.InventoryOutByCategory(movements),
		"totalCost":  stats.CogsTotal(movements),
	})
}

// InventoryOutRaw dumps the OUT ledger rows themselves, item names included,
// for anyone reconciling stock by hand.
func (h *ReportHandler) InventoryOutRaw(c *gin.Context) {
	from, to, ok := rangeFromQuery(c, h.tz)
	if !ok {
		httperr.BadRequestCode(c, "INVALID_DATE", "bad from/to date")
		return
	}

	var rows []models.InventoryMovement
	if err := h.db.
		Preload("Item").
		Where(
			"type = ? AND created_at >= ? AND created_at <= ?",
			models.MovementOut, from, to,
		).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed to load inventory movements")
		return
	}

	type rawRow struct {
		ID        uint      `json:"id"`
		ItemID    uint      `json:"itemId"`
		ItemName  string    `json:"itemName"`
		Quantity  int       `json:"quantity"`
		Unit      string    `json:"unit"`
		Cost      *float64  `json:"cost"`
		Reason    *string   `json:"reason"`
		CreatedAt time.Time `json:"createdAt"`
	}

	out := make([]rawRow, 0, len(rows))
	for _, m := range rows {
		r := rawRow{
			ID:        m.ID,
			ItemID:    m.ItemID,
			ItemName:  m.Item.Name,
			Quantity:  m.Quantity,
			Unit:      m.Item.Unit,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		}
		if m.Item.PricePerUnit != nil {
			cost := float64(m.Quantity) * *m.Item.PricePerUnit
			r.Cost = &cost
		}
		out = append(out, r)
	}

	httpresp.OK(c, out)
}
