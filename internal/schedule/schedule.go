// Package schedule resolves a master's working hours for concrete dates.
// A per-date override row always wins over the weekly template, even when the
// override marks the day off; a date covered by neither is implicitly a day off.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
)

type DayHours struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsDayOff  bool   `json:"isDayOff"`
}

// MinutesOfDay parses "HH:MM" into minutes since midnight. Missing or
// malformed times parse to 0.
func MinutesOfDay(hm string) int {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return h*60 + m
}

// OpenMinutes is the number of minutes a resolved day is open for business.
func OpenMinutes(d DayHours) int {
	if d.IsDayOff {
		return 0
	}
	diff := MinutesOfDay(d.EndTime) - MinutesOfDay(d.StartTime)
	if diff < 0 {
		return 0
	}
	return diff
}

// Normalize truncates t to local midnight.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay moves t to 23:59:59.999, matching how report ranges treat "to".
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// DateKey formats a calendar date as YYYY-MM-DD for time-of-day-insensitive
// comparison.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// EachDay lists every calendar day in [from, to] inclusive.
func EachDay(from, to time.Time) []time.Time {
	var days []time.Time
	cur := Normalize(from)
	end := Normalize(to)
	for !cur.After(end) {
		days = append(days, cur)
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}

// Resolver answers DayHours questions for a single master from its weekly
// template and per-date overrides.
type Resolver struct {
	overrides map[string]DayHours
	weekly    map[int]DayHours
}

func NewResolver(workingDays []models.MasterWorkingDay, overrides []models.MasterDayAvailability) *Resolver {
	r := &Resolver{
		overrides: make(map[string]DayHours, len(overrides)),
		weekly:    make(map[int]DayHours, len(workingDays)),
	}
	for _, o := range overrides {
		r.overrides[DateKey(o.Date)] = DayHours{
			StartTime: o.StartTime,
			EndTime:   o.EndTime,
			IsDayOff:  o.IsDayOff,
		}
	}
	for _, w := range workingDays {
		r.weekly[w.Weekday] = DayHours{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			IsDayOff:  w.IsDayOff,
		}
	}
	return r
}

// Resolve is total: every date yields either an open interval or a day off.
func (r *Resolver) Resolve(date time.Time) DayHours {
	if d, ok := r.overrides[DateKey(date)]; ok {
		return d
	}
	if d, ok := r.weekly[int(date.Weekday())]; ok {
		return d
	}
	return DayHours{IsDayOff: true}
}
