package stats

import (
	"testing"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMasterUtilizationSingleDay(t *testing.T) {
	// Monday 2026-01-05, working 09:00-17:00 = 480 available minutes.
	masters := []MasterScheduleInput{{
		MasterID:   1,
		MasterName: "Ivan",
		WorkingDays: []models.MasterWorkingDay{
			{MasterID: 1, Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
		},
	}}
	booked := []BookedSlot{{
		MasterID: 1,
		StartsAt: time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, time.January, 5, 11, 0, 0, 0, time.UTC),
	}}

	rows := MasterUtilization(day(2026, time.January, 5), day(2026, time.January, 5), masters, booked)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.AvailableMinutes != 480 {
		t.Fatalf("available minutes: expected 480, got %d", r.AvailableMinutes)
	}
	if r.BookedMinutes != 60 {
		t.Fatalf("booked minutes: expected 60, got %d", r.BookedMinutes)
	}
	if r.Utilization != 0.125 {
		t.Fatalf("utilization: expected 0.125, got %v", r.Utilization)
	}
}

func TestMasterUtilizationOverrideShortensDay(t *testing.T) {
	masters := []MasterScheduleInput{{
		MasterID: 2,
		WorkingDays: []models.MasterWorkingDay{
			{MasterID: 2, Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
		},
		Overrides: []models.MasterDayAvailability{
			{MasterID: 2, Date: day(2026, time.January, 5), StartTime: "12:00", EndTime: "14:00"},
		},
	}}

	rows := MasterUtilization(day(2026, time.January, 5), day(2026, time.January, 5), masters, nil)
	if rows[0].AvailableMinutes != 120 {
		t.Fatalf("expected override hours 120, got %d", rows[0].AvailableMinutes)
	}
}

func TestMasterUtilizationZeroAvailable(t *testing.T) {
	// No working days at all: booked time exists but utilization stays 0,
	// never a division by zero.
	booked := []BookedSlot{{
		MasterID: 3,
		StartsAt: time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}}

	rows := MasterUtilization(day(2026, time.March, 10), day(2026, time.March, 10), nil, booked)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].BookedMinutes != 120 {
		t.Fatalf("expected 120 booked minutes, got %d", rows[0].BookedMinutes)
	}
	if rows[0].AvailableMinutes != 0 {
		t.Fatalf("expected 0 available minutes, got %d", rows[0].AvailableMinutes)
	}
	if rows[0].Utilization != 0 {
		t.Fatalf("expected utilization 0, got %v", rows[0].Utilization)
	}
	if rows[0].MasterName != "Master #3" {
		t.Fatalf("expected fallback name, got %q", rows[0].MasterName)
	}
}

func TestMasterUtilizationMultiDayRange(t *testing.T) {
	// Mon-Sun week, only Mon and Wed are working days (8h each).
	masters := []MasterScheduleInput{{
		MasterID: 4,
		WorkingDays: []models.MasterWorkingDay{
			{MasterID: 4, Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
			{MasterID: 4, Weekday: 3, StartTime: "09:00", EndTime: "17:00"},
			{MasterID: 4, Weekday: 5, StartTime: "09:00", EndTime: "17:00", IsDayOff: true},
		},
	}}

	rows := MasterUtilization(day(2026, time.January, 5), day(2026, time.January, 11), masters, nil)
	if rows[0].AvailableMinutes != 960 {
		t.Fatalf("expected 960 available minutes over the week, got %d", rows[0].AvailableMinutes)
	}
}
