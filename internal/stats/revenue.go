package stats

import (
	"sort"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/schedule"
)

// FinanceSummary is the headline money view of a period. TotalRevenue counts
// COMPLETED appointments only ("realized" revenue); the service-mix stats
// below deliberately use a broader filter, see BuildServicesStats.
type FinanceSummary struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalCompleted int     `json:"totalCompleted"`
	AvgCheck       float64 `json:"avgCheck"`
	CogsTotal      float64 `json:"cogsTotal"`
	GrossProfit    float64 `json:"grossProfit"`
	GrossMargin    float64 `json:"grossMargin"`
}

type AppointmentsSummary struct {
	TotalAppointments int     `json:"totalAppointments"`
	NoShowRate        float64 `json:"noShowRate"`
	CancelRate        float64 `json:"cancelRate"`
}

// OutMovement is one inventory OUT ledger row with its item's unit price.
type OutMovement struct {
	Quantity     int
	PricePerUnit *float64
	Category     models.InventoryCategory
	CreatedAt    time.Time
}

// CogsTotal approximates material cost from OUT movements. A movement whose
// item has no unit price still counts as consumption but contributes zero cost.
func CogsTotal(movements []OutMovement) float64 {
	var total float64
	for _, m := range movements {
		if m.PricePerUnit == nil {
			continue
		}
		total += float64(m.Quantity) * *m.PricePerUnit
	}
	return total
}

// CogsByDay buckets OUT-movement cost by calendar day (YYYY-MM-DD).
func CogsByDay(movements []OutMovement) map[string]float64 {
	byDay := make(map[string]float64)
	for _, m := range movements {
		if m.PricePerUnit == nil {
			continue
		}
		key := schedule.DateKey(m.CreatedAt)
		byDay[key] += float64(m.Quantity) * *m.PricePerUnit
	}
	return byDay
}

// BuildFinanceSummary folds completed-appointment prices and OUT movements
// into the headline finance block.
func BuildFinanceSummary(completedPrices []float64, movements []OutMovement) FinanceSummary {
	f := FinanceSummary{TotalCompleted: len(completedPrices)}
	for _, p := range completedPrices {
		f.TotalRevenue += p
	}
	if f.TotalCompleted > 0 {
		f.AvgCheck = f.TotalRevenue / float64(f.TotalCompleted)
	}
	f.CogsTotal = CogsTotal(movements)
	f.GrossProfit = f.TotalRevenue - f.CogsTotal
	if f.TotalRevenue > 0 {
		f.GrossMargin = f.GrossProfit / f.TotalRevenue
	}
	return f
}

// BuildAppointmentsSummary derives cancellation and no-show rates from
// per-status counts of all appointments in the period.
func BuildAppointmentsSummary(countsByStatus map[string]int) AppointmentsSummary {
	var s AppointmentsSummary
	for _, c := range countsByStatus {
		s.TotalAppointments += c
	}
	if s.TotalAppointments > 0 {
		s.NoShowRate = float64(countsByStatus["NO_SHOW"]) / float64(s.TotalAppointments)
		s.CancelRate = float64(countsByStatus["CANCELLED"]) / float64(s.TotalAppointments)
	}
	return s
}

// ServiceSale is one appointment contributing to the service mix: status
// APPROVED or COMPLETED and price > 0 ("booked-or-realized" revenue).
type ServiceSale struct {
	ServiceID   *uint
	ServiceName string
	Category    models.ServiceCategory
	Price       float64
}

type ServiceRevenueRow struct {
	ServiceID         *uint                  `json:"serviceId"`
	ServiceName       string                 `json:"serviceName"`
	ServiceCategory   models.ServiceCategory `json:"serviceCategory"`
	TotalRevenue      float64                `json:"totalRevenue"`
	AppointmentsCount int                    `json:"appointmentsCount"`
}

type CategoryRevenueRow struct {
	Category          models.ServiceCategory `json:"category"`
	TotalRevenue      float64                `json:"totalRevenue"`
	AppointmentsCount int                    `json:"appointmentsCount"`
}

type TopServiceRow struct {
	ServiceRevenueRow
	RevenueShare float64 `json:"revenueShare"`
}

type TopCategoryRow struct {
	CategoryRevenueRow
	RevenueShare float64 `json:"revenueShare"`
}

// ServicesStats is the service-mix block of the owner dashboard.
//
// Its revenue filter (APPROVED+COMPLETED, price > 0) is intentionally broader
// than FinanceSummary.TotalRevenue (COMPLETED only): the mix answers "what is
// being booked or sold", the headline answers "what was actually realized".
// Do not unify the two filters.
type ServicesStats struct {
	TotalRevenue             float64          `json:"totalRevenue"`
	TotalAppointments        int              `json:"totalAppointments"`
	TopServicesByRevenue     []TopServiceRow  `json:"topServicesByRevenue"`
	TopCategoriesByRevenue   []TopCategoryRow `json:"topCategoriesByRevenue"`
	RevenueConcentrationTop3 float64          `json:"revenueConcentrationTop3"`
	RevenueConcentrationTop5 float64          `json:"revenueConcentrationTop5"`
}

type serviceKey struct {
	id    uint
	isNil bool
	name  string
}

// GroupServiceSales rolls sales up by (serviceId, serviceName) and by
// category. Sales without a service reference fall into the OTHER category.
func GroupServiceSales(sales []ServiceSale) ([]ServiceRevenueRow, []CategoryRevenueRow) {
	serviceIdx := make(map[serviceKey]int)
	var byService []ServiceRevenueRow

	for _, s := range sales {
		key := serviceKey{name: s.ServiceName, isNil: s.ServiceID == nil}
		if s.ServiceID != nil {
			key.id = *s.ServiceID
		}
		category := s.Category
		if category == "" {
			category = models.CategoryOther
		}
		i, ok := serviceIdx[key]
		if !ok {
			i = len(byService)
			serviceIdx[key] = i
			byService = append(byService, ServiceRevenueRow{
				ServiceID:       s.ServiceID,
				ServiceName:     s.ServiceName,
				ServiceCategory: category,
			})
		}
		byService[i].TotalRevenue += s.Price
		byService[i].AppointmentsCount++
	}

	catIdx := make(map[models.ServiceCategory]int)
	var byCategory []CategoryRevenueRow
	for _, row := range byService {
		i, ok := catIdx[row.ServiceCategory]
		if !ok {
			i = len(byCategory)
			catIdx[row.ServiceCategory] = i
			byCategory = append(byCategory, CategoryRevenueRow{Category: row.ServiceCategory})
		}
		byCategory[i].TotalRevenue += row.TotalRevenue
		byCategory[i].AppointmentsCount += row.AppointmentsCount
	}

	return byService, byCategory
}

// BuildServicesStats ranks services/categories and computes top-N revenue
// concentration shares.
func BuildServicesStats(byService []ServiceRevenueRow, byCategory []CategoryRevenueRow) ServicesStats {
	var st ServicesStats
	for _, s := range byService {
		st.TotalRevenue += s.TotalRevenue
		st.TotalAppointments += s.AppointmentsCount
	}

	topServices := append([]ServiceRevenueRow(nil), byService...)
	sort.SliceStable(topServices, func(i, j int) bool {
		return topServices[i].TotalRevenue > topServices[j].TotalRevenue
	})
	if len(topServices) > 5 {
		topServices = topServices[:5]
	}
	for _, s := range topServices {
		row := TopServiceRow{ServiceRevenueRow: s}
		if st.TotalRevenue > 0 {
			row.RevenueShare = s.TotalRevenue / st.TotalRevenue
		}
		st.TopServicesByRevenue = append(st.TopServicesByRevenue, row)
	}

	topCategories := append([]CategoryRevenueRow(nil), byCategory...)
	sort.SliceStable(topCategories, func(i, j int) bool {
		return topCategories[i].TotalRevenue > topCategories[j].TotalRevenue
	})
	if len(topCategories) > 5 {
		topCategories = topCategories[:5]
	}
	for _, c := range topCategories {
		row := TopCategoryRow{CategoryRevenueRow: c}
		if st.TotalRevenue > 0 {
			row.RevenueShare = c.TotalRevenue / st.TotalRevenue
		}
		st.TopCategoriesByRevenue = append(st.TopCategoriesByRevenue, row)
	}

	st.RevenueConcentrationTop3 = concentration(st.TopServicesByRevenue, 3, st.TotalRevenue)
	st.RevenueConcentrationTop5 = concentration(st.TopServicesByRevenue, 5, st.TotalRevenue)
	return st
}

func concentration(top []TopServiceRow, n int, total float64) float64 {
	if total <= 0 {
		return 0
	}
	var sum float64
	for i, s := range top {
		if i >= n {
			break
		}
		sum += s.TotalRevenue
	}
	return sum / total
}

// MasterSale is one COMPLETED appointment for the per-master revenue report.
type MasterSale struct {
	MasterID   uint
	MasterName string
	ClientID   uint
	Price      float64
}

type MasterRevenueRow struct {
	MasterID   uint    `json:"masterId"`
	MasterName string  `json:"masterName"`
	Revenue    float64 `json:"revenue"`
	Count      int     `json:"count"`
	ClientIDs  []uint  `json:"clientIds"`
}

// MasterRevenue groups realized sales by master, tracking distinct clients.
func MasterRevenue(sales []MasterSale) (total float64, rows []MasterRevenueRow) {
	index := make(map[uint]int)
	seen := make(map[uint]map[uint]bool)

	for _, s := range sales {
		total += s.Price
		i, ok := index[s.MasterID]
		if !ok {
			i = len(rows)
			index[s.MasterID] = i
			seen[s.MasterID] = make(map[uint]bool)
			rows = append(rows, MasterRevenueRow{
				MasterID:   s.MasterID,
				MasterName: s.MasterName,
				ClientIDs:  []uint{},
			})
		}
		rows[i].Revenue += s.Price
		rows[i].Count++
		if s.ClientID != 0 && !seen[s.MasterID][s.ClientID] {
			seen[s.MasterID][s.ClientID] = true
			rows[i].ClientIDs = append(rows[i].ClientIDs, s.ClientID)
		}
	}
	return total, rows
}

type CategoryOutRow struct {
	Category      models.InventoryCategory `json:"category"`
	TotalQuantity int                      `json:"totalQuantity"`
	ApproxCost    *float64                 `json:"approxCost"`
}

// InventoryOutByCategory sums OUT consumption per item category. ApproxCost is
// nil when no priced movement contributed to the bucket.
func InventoryOutByCategory(movements []OutMovement) []CategoryOutRow {
	index := make(map[models.InventoryCategory]int)
	costs := make(map[models.InventoryCategory]float64)
	var rows []CategoryOutRow

	for _, m := range movements {
		i, ok := index[m.Category]
		if !ok {
			i = len(rows)
			index[m.Category] = i
			rows = append(rows, CategoryOutRow{Category: m.Category})
		}
		rows[i].TotalQuantity += m.Quantity
		if m.PricePerUnit != nil {
			costs[m.Category] += float64(m.Quantity) * *m.PricePerUnit
		}
	}
	for i := range rows {
		if c, ok := costs[rows[i].Category]; ok && c != 0 {
			cost := c
			rows[i].ApproxCost = &cost
		}
	}
	return rows
}
