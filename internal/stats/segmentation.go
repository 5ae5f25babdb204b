package stats

import (
	"math"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
)

type ActivitySegment string

const (
	SegmentActive  ActivitySegment = "ACTIVE"
	SegmentWarm    ActivitySegment = "WARM"
	SegmentCold    ActivitySegment = "COLD"
	SegmentUnknown ActivitySegment = "UNKNOWN"
)

// VisitPoint is one appointment of a client's lifetime history.
type VisitPoint struct {
	StartsAt time.Time
	Status   string
	Price    float64
}

// ClientHistory carries a client plus its full appointment history ordered by
// StartsAt ascending. The whole history, not just the reporting period.
type ClientHistory struct {
	ID          uint
	FullName    string
	Phone       *string
	Email       *string
	Status      models.ClientStatus
	NoShowCount int
	Visits      []VisitPoint
}

type ClientReportItem struct {
	ClientID                   uint                `json:"clientId"`
	FullName                   string              `json:"fullName"`
	Phone                      *string             `json:"phone"`
	Email                      *string             `json:"email"`
	Status                     models.ClientStatus `json:"status"`
	NoShowCount                int                 `json:"noShowCount"`
	FirstVisit                 string              `json:"firstVisit"`
	LastVisit                  string              `json:"lastVisit"`
	TotalVisits                int                 `json:"totalVisits"`
	VisitsInRange              int                 `json:"visitsInRange"`
	RevenueInRange             float64             `json:"revenueInRange"`
	IsNewInRange               bool                `json:"isNewInRange"`
	DaysSinceLastVisit         int                 `json:"daysSinceLastVisit"`
	ActivitySegment            ActivitySegment     `json:"activitySegment"`
	HasSecondVisitWithin90Days bool                `json:"hasSecondVisitWithin90Days"`
}

// ClientsSummary is the short-horizon new/repeat breakdown of a period.
type ClientsSummary struct {
	NewCount                int     `json:"newCount"`
	NewRevenue              float64 `json:"newRevenue"`
	RepeatCount             int     `json:"repeatCount"`
	RepeatRevenue           float64 `json:"repeatRevenue"`
	RiskCount               int     `json:"riskCount"`
	TotalClientsInRange     int     `json:"totalClientsInRange"`
	RepeatClientsInRange    int     `json:"repeatClientsInRange"`
	NewRetainedWithin90Days int     `json:"newRetainedWithin90Days"`
}

// ClientsDashboardSummary adds the long-horizon retention and activity
// segmentation on top of the short-horizon summary.
type ClientsDashboardSummary struct {
	ClientsSummary

	RepeatRate       float64 `json:"repeatRate"`
	NewRetentionRate float64 `json:"newRetentionRate"`

	ActiveCount int `json:"activeCount"`
	WarmCount   int `json:"warmCount"`
	ColdCount   int `json:"coldCount"`

	Retention6m  float64 `json:"retention6m"`
	Retention12m float64 `json:"retention12m"`
	OneShotShare float64 `json:"oneShotShare"`
	FansShare    float64 `json:"fansShare"`
}

// DiffDays is the whole-day difference later-earlier, rounded toward minus
// infinity, mirroring the millisecond arithmetic reports are specified in.
func DiffDays(later, earlier time.Time) int {
	return int(math.Floor(later.Sub(earlier).Hours() / 24))
}

// Segment buckets a client by days since their last visit, measured against
// the period end. Boundaries are inclusive at 30 and 90: exactly 30 days is
// still ACTIVE, exactly 90 still WARM.
func Segment(daysSinceLastVisit int) ActivitySegment {
	switch {
	case daysSinceLastVisit <= 30:
		return SegmentActive
	case daysSinceLastVisit <= 90:
		return SegmentWarm
	default:
		return SegmentCold
	}
}

// clientFacts is everything analyzeClient derives from one history.
type clientFacts struct {
	firstVisit                 time.Time
	lastVisit                  time.Time
	totalVisits                int
	visitsInRange              int
	revenueInRange             float64
	isNewInRange               bool
	hasSecondVisitWithin90Days bool
	daysSinceLastVisit         int
	segment                    ActivitySegment
}

func analyzeClient(c ClientHistory, from, to time.Time) (clientFacts, bool) {
	if len(c.Visits) == 0 {
		return clientFacts{}, false
	}

	f := clientFacts{
		firstVisit:  c.Visits[0].StartsAt,
		lastVisit:   c.Visits[len(c.Visits)-1].StartsAt,
		totalVisits: len(c.Visits),
	}

	for _, v := range c.Visits {
		if v.StartsAt.Before(from) || v.StartsAt.After(to) {
			continue
		}
		f.visitsInRange++
		// Only realized appointments count toward period revenue.
		if v.Status == "COMPLETED" {
			f.revenueInRange += v.Price
		}
	}

	f.isNewInRange = !f.firstVisit.Before(from) && !f.firstVisit.After(to)

	if len(c.Visits) >= 2 {
		f.hasSecondVisitWithin90Days = DiffDays(c.Visits[1].StartsAt, f.firstVisit) <= 90
	}

	f.daysSinceLastVisit = DiffDays(to, f.lastVisit)
	f.segment = Segment(f.daysSinceLastVisit)

	return f, true
}

// BuildClientReport produces the detailed per-client report plus its summary.
// Only clients with at least one visit whose startsAt falls inside [from, to]
// appear: out-of-period clients get no item row and count toward nothing,
// the risk counter included. Lifetime fields (firstVisit, totalVisits,
// segment) are still computed over the full history of those clients.
func BuildClientReport(from, to time.Time, clients []ClientHistory) (ClientsSummary, []ClientReportItem) {
	var summary ClientsSummary
	items := make([]ClientReportItem, 0, len(clients))

	for _, c := range clients {
		f, ok := analyzeClient(c, from, to)
		if !ok || f.visitsInRange == 0 {
			continue
		}

		items = append(items, ClientReportItem{
			ClientID:                   c.ID,
			FullName:                   c.FullName,
			Phone:                      c.Phone,
			Email:                      c.Email,
			Status:                     c.Status,
			NoShowCount:                c.NoShowCount,
			FirstVisit:                 f.firstVisit.UTC().Format(time.RFC3339Nano),
			LastVisit:                  f.lastVisit.UTC().Format(time.RFC3339Nano),
			TotalVisits:                f.totalVisits,
			VisitsInRange:              f.visitsInRange,
			RevenueInRange:             f.revenueInRange,
			IsNewInRange:               f.isNewInRange,
			DaysSinceLastVisit:         f.daysSinceLastVisit,
			ActivitySegment:            f.segment,
			HasSecondVisitWithin90Days: f.hasSecondVisitWithin90Days,
		})

		summary.TotalClientsInRange++
		if f.isNewInRange {
			summary.NewCount++
			summary.NewRevenue += f.revenueInRange
			if f.hasSecondVisitWithin90Days {
				summary.NewRetainedWithin90Days++
			}
		} else {
			summary.RepeatCount++
			summary.RepeatRevenue += f.revenueInRange
			summary.RepeatClientsInRange++
		}

		if c.Status == models.ClientRisk {
			summary.RiskCount++
		}
	}

	return summary, items
}

// BuildClientsDashboard computes the aggregate-only dashboard over the same
// in-range client set as the detailed report, adding segment counts and the
// long-horizon retention cohorts.
func BuildClientsDashboard(from, to time.Time, clients []ClientHistory) ClientsDashboardSummary {
	var s ClientsDashboardSummary

	var (
		retention6mNum, retention6mDen   int
		retention12mNum, retention12mDen int
		oneShotCount, fansCount          int
	)

	for _, c := range clients {
		f, ok := analyzeClient(c, from, to)
		if !ok || f.visitsInRange == 0 {
			continue
		}

		s.TotalClientsInRange++

		if f.isNewInRange {
			s.NewCount++
			s.NewRevenue += f.revenueInRange
			if f.hasSecondVisitWithin90Days {
				s.NewRetainedWithin90Days++
			}
		} else {
			s.RepeatCount++
			s.RepeatRevenue += f.revenueInRange
			s.RepeatClientsInRange++
		}

		if c.Status == models.ClientRisk {
			s.RiskCount++
		}

		switch f.segment {
		case SegmentActive:
			s.ActiveCount++
		case SegmentWarm:
			s.WarmCount++
		case SegmentCold:
			s.ColdCount++
		}

		// Lifetime loyalty shape, not limited to the period.
		if f.totalVisits == 1 {
			oneShotCount++
		} else if f.totalVisits >= 3 {
			fansCount++
		}

		// A client enters a retention cohort only once enough time has
		// passed since their first visit, measured at the period end.
		daysSinceFirst := DiffDays(to, f.firstVisit)
		sixMonthsAfter := f.firstVisit.AddDate(0, 6, 0)
		twelveMonthsAfter := f.firstVisit.AddDate(0, 12, 0)

		if daysSinceFirst >= 180 {
			retention6mDen++
			if hasReturnVisit(c.Visits, f.firstVisit, sixMonthsAfter) {
				retention6mNum++
			}
		}
		if daysSinceFirst >= 365 {
			retention12mDen++
			if hasReturnVisit(c.Visits, f.firstVisit, twelveMonthsAfter) {
				retention12mNum++
			}
		}
	}

	if s.TotalClientsInRange > 0 {
		s.RepeatRate = float64(s.RepeatClientsInRange) / float64(s.TotalClientsInRange)
		s.OneShotShare = float64(oneShotCount) / float64(s.TotalClientsInRange)
		s.FansShare = float64(fansCount) / float64(s.TotalClientsInRange)
	}
	if s.NewCount > 0 {
		s.NewRetentionRate = float64(s.NewRetainedWithin90Days) / float64(s.NewCount)
	}
	if retention6mDen > 0 {
		s.Retention6m = float64(retention6mNum) / float64(retention6mDen)
	}
	if retention12mDen > 0 {
		s.Retention12m = float64(retention12mNum) / float64(retention12mDen)
	}

	return s
}

func hasReturnVisit(visits []VisitPoint, first, deadline time.Time) bool {
	for _, v := range visits {
		if v.StartsAt.After(first) && !v.StartsAt.After(deadline) {
			return true
		}
	}
	return false
}
