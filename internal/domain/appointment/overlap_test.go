package appointment

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, time.June, 1, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"back to back", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(12, 0), at(13, 0), false},
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestValidStatus(t *testing.T) {
	valid := []string{"PENDING", "APPROVED", "COMPLETED", "CANCELLED", "NO_SHOW"}
	for _, s := range valid {
		if !ValidStatus(s) {
			t.Fatalf("%s must be valid", s)
		}
	}
	for _, s := range []string{"", "pending", "NOSHOW", "DONE"} {
		if ValidStatus(s) {
			t.Fatalf("%s must be invalid", s)
		}
	}
}
