package stats

import (
	"testing"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestBuildFinanceSummary(t *testing.T) {
	movements := []OutMovement{
		{Quantity: 4, PricePerUnit: fp(10), Category: models.InventoryConsumable},
		{Quantity: 3, PricePerUnit: nil, Category: models.InventoryJewelry},
	}

	f := BuildFinanceSummary([]float64{60, 40}, movements)
	if f.TotalRevenue != 100 {
		t.Fatalf("revenue: expected 100, got %v", f.TotalRevenue)
	}
	if f.CogsTotal != 40 {
		t.Fatalf("cogs: expected 40 (unpriced movement contributes 0), got %v", f.CogsTotal)
	}
	if f.GrossProfit != 60 {
		t.Fatalf("gross profit: expected 60, got %v", f.GrossProfit)
	}
	if f.GrossMargin != 0.6 {
		t.Fatalf("gross margin: expected 0.6, got %v", f.GrossMargin)
	}
	if f.AvgCheck != 50 {
		t.Fatalf("avg check: expected 50, got %v", f.AvgCheck)
	}
}

func TestBuildFinanceSummaryZeroRevenue(t *testing.T) {
	f := BuildFinanceSummary(nil, []OutMovement{{Quantity: 2, PricePerUnit: fp(5)}})
	if f.GrossProfit != -10 {
		t.Fatalf("gross profit: expected -10, got %v", f.GrossProfit)
	}
	if f.GrossMargin != 0 {
		t.Fatalf("gross margin must stay 0 when revenue is 0, got %v", f.GrossMargin)
	}
	if f.AvgCheck != 0 {
		t.Fatalf("avg check must stay 0 with no completed appointments, got %v", f.AvgCheck)
	}
}

func TestBuildAppointmentsSummaryRates(t *testing.T) {
	s := BuildAppointmentsSummary(map[string]int{
		"PENDING":   2,
		"APPROVED":  3,
		"COMPLETED": 3,
		"CANCELLED": 1,
		"NO_SHOW":   1,
	})
	if s.TotalAppointments != 10 {
		t.Fatalf("total: expected 10, got %d", s.TotalAppointments)
	}
	if s.NoShowRate != 0.1 {
		t.Fatalf("noShowRate: expected 0.1, got %v", s.NoShowRate)
	}
	if s.CancelRate != 0.1 {
		t.Fatalf("cancelRate: expected 0.1, got %v", s.CancelRate)
	}
}

func TestGroupServiceSales(t *testing.T) {
	id := uint(7)
	sales := []ServiceSale{
		{ServiceID: &id, ServiceName: "Sleeve tattoo", Category: models.CategoryTattoo, Price: 300},
		{ServiceID: &id, ServiceName: "Sleeve tattoo", Category: models.CategoryTattoo, Price: 200},
		{ServiceName: "Custom session", Price: 150},
	}

	byService, byCategory := GroupServiceSales(sales)
	if len(byService) != 2 {
		t.Fatalf("expected 2 service rows, got %d", len(byService))
	}
	if byService[0].TotalRevenue != 500 || byService[0].AppointmentsCount != 2 {
		t.Fatalf("sleeve row: expected 500/2, got %v/%d", byService[0].TotalRevenue, byService[0].AppointmentsCount)
	}
	// Sales without a service reference fall into OTHER.
	if byService[1].ServiceCategory != models.CategoryOther {
		t.Fatalf("expected OTHER category for unreferenced sale, got %s", byService[1].ServiceCategory)
	}
	if len(byCategory) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(byCategory))
	}
}

func TestBuildServicesStatsConcentration(t *testing.T) {
	byService := []ServiceRevenueRow{
		{ServiceName: "A", ServiceCategory: models.CategoryTattoo, TotalRevenue: 400, AppointmentsCount: 4},
		{ServiceName: "B", ServiceCategory: models.CategoryTattoo, TotalRevenue: 300, AppointmentsCount: 3},
		{ServiceName: "C", ServiceCategory: models.CategoryPiercing, TotalRevenue: 200, AppointmentsCount: 2},
		{ServiceName: "D", ServiceCategory: models.CategoryBeauty, TotalRevenue: 50, AppointmentsCount: 1},
		{ServiceName: "E", ServiceCategory: models.CategoryOther, TotalRevenue: 30, AppointmentsCount: 1},
		{ServiceName: "F", ServiceCategory: models.CategoryOther, TotalRevenue: 20, AppointmentsCount: 1},
	}
	st := BuildServicesStats(byService, nil)
	if st.TotalRevenue != 1000 {
		t.Fatalf("total revenue: expected 1000, got %v", st.TotalRevenue)
	}
	if len(st.TopServicesByRevenue) != 5 {
		t.Fatalf("expected top list capped at 5, got %d", len(st.TopServicesByRevenue))
	}
	if st.TopServicesByRevenue[0].ServiceName != "A" {
		t.Fatalf("expected A first, got %s", st.TopServicesByRevenue[0].ServiceName)
	}
	if st.TopServicesByRevenue[0].RevenueShare != 0.4 {
		t.Fatalf("top share: expected 0.4, got %v", st.TopServicesByRevenue[0].RevenueShare)
	}
	if st.RevenueConcentrationTop3 != 0.9 {
		t.Fatalf("top3 concentration: expected 0.9, got %v", st.RevenueConcentrationTop3)
	}
	if st.RevenueConcentrationTop5 != 0.98 {
		t.Fatalf("top5 concentration: expected 0.98, got %v", st.RevenueConcentrationTop5)
	}
}

func TestMasterRevenueDistinctClients(t *testing.T) {
	sales := []MasterSale{
		{MasterID: 1, MasterName: "Ivan", ClientID: 10, Price: 100},
		{MasterID: 1, MasterName: "Ivan", ClientID: 10, Price: 200},
		{MasterID: 1, MasterName: "Ivan", ClientID: 11, Price: 50},
		{MasterID: 2, MasterName: "Olga", ClientID: 10, Price: 75},
	}

	total, rows := MasterRevenue(sales)
	if total != 425 {
		t.Fatalf("total: expected 425, got %v", total)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 masters, got %d", len(rows))
	}
	if rows[0].Revenue != 350 || rows[0].Count != 3 {
		t.Fatalf("master 1: expected 350/3, got %v/%d", rows[0].Revenue, rows[0].Count)
	}
	if len(rows[0].ClientIDs) != 2 {
		t.Fatalf("master 1 distinct clients: expected 2, got %d", len(rows[0].ClientIDs))
	}
}

func TestInventoryOutByCategory(t *testing.T) {
	movements := []OutMovement{
		{Quantity: 5, PricePerUnit: fp(2), Category: models.InventoryConsumable},
		{Quantity: 3, PricePerUnit: nil, Category: models.InventoryConsumable},
		{Quantity: 1, PricePerUnit: nil, Category: models.InventoryJewelry},
	}

	rows := InventoryOutByCategory(movements)
	if len(rows) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(rows))
	}
	if rows[0].TotalQuantity != 8 {
		t.Fatalf("consumable quantity: expected 8, got %d", rows[0].TotalQuantity)
	}
	if rows[0].ApproxCost == nil || *rows[0].ApproxCost != 10 {
		t.Fatalf("consumable cost: expected 10, got %v", rows[0].ApproxCost)
	}
	if rows[1].ApproxCost != nil {
		t.Fatalf("jewelry cost must be nil with no priced movements, got %v", *rows[1].ApproxCost)
	}
}

func TestCogsByDay(t *testing.T) {
	movements := []OutMovement{
		{Quantity: 2, PricePerUnit: fp(10), CreatedAt: time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)},
		{Quantity: 1, PricePerUnit: fp(5), CreatedAt: time.Date(2026, time.May, 1, 18, 0, 0, 0, time.UTC)},
		{Quantity: 4, PricePerUnit: fp(1), CreatedAt: time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)},
	}

	byDay := CogsByDay(movements)
	if byDay["2026-05-01"] != 25 {
		t.Fatalf("2026-05-01: expected 25, got %v", byDay["2026-05-01"])
	}
	if byDay["2026-05-02"] != 4 {
		t.Fatalf("2026-05-02: expected 4, got %v", byDay["2026-05-02"])
	}
}
