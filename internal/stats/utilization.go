// Package stats implements the reporting arithmetic: master utilization,
// client segmentation and revenue/COGS aggregation. All functions here are
// pure over rows the repository layer already fetched, so the business rules
// stay unit-testable without a database.
package stats

import (
	"math"
	"strconv"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/schedule"
)

type MasterScheduleInput struct {
	MasterID    uint
	MasterName  string
	WorkingDays []models.MasterWorkingDay
	Overrides   []models.MasterDayAvailability
}

// BookedSlot is a reserved time range of one APPROVED or COMPLETED appointment.
type BookedSlot struct {
	MasterID   uint
	MasterName string
	StartsAt   time.Time
	EndsAt     time.Time
}

type MasterUtilizationRow struct {
	MasterID          uint    `json:"masterId"`
	MasterName        string  `json:"masterName"`
	AppointmentsCount int     `json:"appointmentsCount"`
	BookedMinutes     int     `json:"bookedMinutes"`
	AvailableMinutes  int     `json:"availableMinutes"`
	Utilization       float64 `json:"utilization"`
}

// MasterUtilization computes booked/available minutes per master over
// [from, to]. Masters are independent of each other; a master appearing only
// through appointments (deleted master row) still gets a line with zero
// available minutes.
func MasterUtilization(from, to time.Time, masters []MasterScheduleInput, booked []BookedSlot) []MasterUtilizationRow {
	rows := make([]MasterUtilizationRow, 0, len(masters))
	index := make(map[uint]int, len(masters))

	for _, m := range masters {
		row := MasterUtilizationRow{
			MasterID:   m.MasterID,
			MasterName: m.MasterName,
		}
		resolver := schedule.NewResolver(m.WorkingDays, m.Overrides)
		for _, day := range schedule.EachDay(from, to) {
			row.AvailableMinutes += schedule.OpenMinutes(resolver.Resolve(day))
		}
		index[m.MasterID] = len(rows)
		rows = append(rows, row)
	}

	for _, b := range booked {
		i, ok := index[b.MasterID]
		if !ok {
			name := b.MasterName
			if name == "" {
				name = "Master #" + strconv.FormatUint(uint64(b.MasterID), 10)
			}
			i = len(rows)
			index[b.MasterID] = i
			rows = append(rows, MasterUtilizationRow{MasterID: b.MasterID, MasterName: name})
		}
		minutes := int(math.Round(b.EndsAt.Sub(b.StartsAt).Minutes()))
		if minutes < 0 {
			minutes = 0
		}
		rows[i].AppointmentsCount++
		rows[i].BookedMinutes += minutes
	}

	for i := range rows {
		if rows[i].AvailableMinutes > 0 {
			rows[i].Utilization = float64(rows[i].BookedMinutes) / float64(rows[i].AvailableMinutes)
		}
	}
	return rows
}
