package stats

import (
	"testing"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
)

func visit(t time.Time, status string, price float64) VisitPoint {
	return VisitPoint{StartsAt: t, Status: status, Price: price}
}

func TestSegmentBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want ActivitySegment
	}{
		{0, SegmentActive},
		{30, SegmentActive},
		{31, SegmentWarm},
		{90, SegmentWarm},
		{91, SegmentCold},
		{400, SegmentCold},
	}
	for _, c := range cases {
		if got := Segment(c.days); got != c.want {
			t.Fatalf("Segment(%d): expected %s, got %s", c.days, c.want, got)
		}
	}
}

func TestDiffDaysFloors(t *testing.T) {
	earlier := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	later := time.Date(2026, time.January, 3, 11, 0, 0, 0, time.UTC)
	if got := DiffDays(later, earlier); got != 1 {
		t.Fatalf("expected 1 whole day, got %d", got)
	}
	if got := DiffDays(earlier, later); got != -2 {
		t.Fatalf("expected -2 for negative span, got %d", got)
	}
}

func TestBuildClientReportNewVsRepeat(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)

	clients := []ClientHistory{
		{
			ID:       1,
			FullName: "New client",
			Visits: []VisitPoint{
				visit(time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC), "COMPLETED", 100),
				// Second visit 31 days after the first is still within 90.
				visit(time.Date(2026, time.July, 11, 12, 0, 0, 0, time.UTC), "COMPLETED", 150),
			},
		},
		{
			ID:       2,
			FullName: "Repeat client",
			Visits: []VisitPoint{
				visit(time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC), "COMPLETED", 80),
				visit(time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC), "COMPLETED", 120),
				visit(time.Date(2026, time.June, 20, 12, 0, 0, 0, time.UTC), "CANCELLED", 200),
			},
		},
		{
			ID:       3,
			FullName: "Out of range",
			Visits: []VisitPoint{
				visit(time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC), "COMPLETED", 60),
			},
		},
	}

	summary, items := BuildClientReport(from, to, clients)

	// Only clients with an in-range visit get a row.
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if summary.NewCount != 1 || summary.RepeatCount != 1 {
		t.Fatalf("expected 1 new / 1 repeat, got %d / %d", summary.NewCount, summary.RepeatCount)
	}
	if summary.NewRevenue != 100 {
		t.Fatalf("new revenue: expected 100 (only in-range realized), got %v", summary.NewRevenue)
	}
	// Cancelled visits count as visits but contribute no revenue.
	if summary.RepeatRevenue != 120 {
		t.Fatalf("repeat revenue: expected 120, got %v", summary.RepeatRevenue)
	}
	if summary.TotalClientsInRange != 2 {
		t.Fatalf("expected 2 clients in range, got %d", summary.TotalClientsInRange)
	}
	if summary.NewRetainedWithin90Days != 1 {
		t.Fatalf("expected the new client retained within 90 days, got %d", summary.NewRetainedWithin90Days)
	}

	if !items[0].HasSecondVisitWithin90Days {
		t.Fatalf("client 1 second visit 31 days later should count as retained")
	}
	if !items[0].IsNewInRange {
		t.Fatalf("client 1 should be new in range")
	}
	if items[1].IsNewInRange {
		t.Fatalf("client 2 first visit predates the range, must not be new")
	}
}

func TestBuildClientReportSkipsOutOfRangeClients(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)

	clients := []ClientHistory{
		{
			ID:       1,
			FullName: "Long gone",
			Status:   models.ClientRisk,
			Visits: []VisitPoint{
				visit(time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC), "COMPLETED", 90),
			},
		},
	}

	summary, items := BuildClientReport(from, to, clients)

	if len(items) != 0 {
		t.Fatalf("expected no items for a client without in-range visits, got %d", len(items))
	}
	if summary.RiskCount != 0 {
		t.Fatalf("out-of-range risk client must not be counted, got %d", summary.RiskCount)
	}
	if summary.TotalClientsInRange != 0 {
		t.Fatalf("expected 0 clients in range, got %d", summary.TotalClientsInRange)
	}
}

func TestBuildClientsDashboardSkipsOutOfRange(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)

	clients := []ClientHistory{
		{
			ID: 1,
			Visits: []VisitPoint{
				visit(time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC), "COMPLETED", 100),
			},
		},
		{
			ID: 2,
			Visits: []VisitPoint{
				visit(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC), "COMPLETED", 100),
			},
		},
		{ID: 3},
	}

	s := BuildClientsDashboard(from, to, clients)
	if s.TotalClientsInRange != 1 {
		t.Fatalf("expected only the in-range client counted, got %d", s.TotalClientsInRange)
	}
	if s.OneShotShare != 1 {
		t.Fatalf("expected oneShotShare 1, got %v", s.OneShotShare)
	}
	if s.ActiveCount != 1 {
		t.Fatalf("expected 1 active client, got %d", s.ActiveCount)
	}
}

func TestBuildClientsDashboardRetentionCohorts(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)

	clients := []ClientHistory{
		{
			// First visit over a year before the period end, returned three
			// months later: in both cohorts, retained in both.
			ID: 1,
			Visits: []VisitPoint{
				visit(time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC), "COMPLETED", 100),
				visit(time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC), "COMPLETED", 100),
				visit(time.Date(2026, time.June, 5, 12, 0, 0, 0, time.UTC), "COMPLETED", 100),
			},
		},
		{
			// First visit inside the period: too young for either cohort.
			ID: 2,
			Visits: []VisitPoint{
				visit(time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC), "COMPLETED", 50),
			},
		},
	}

	s := BuildClientsDashboard(from, to, clients)
	if s.Retention6m != 1 {
		t.Fatalf("retention6m: expected 1, got %v", s.Retention6m)
	}
	if s.Retention12m != 1 {
		t.Fatalf("retention12m: expected 1, got %v", s.Retention12m)
	}
	if s.FansShare != 0.5 {
		t.Fatalf("fansShare: expected 0.5, got %v", s.FansShare)
	}
	if s.RepeatRate != 0.5 {
		t.Fatalf("repeatRate: expected 0.5, got %v", s.RepeatRate)
	}
}
