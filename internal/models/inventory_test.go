package models

import "testing"

func TestNextQuantity(t *testing.T) {
	cases := []struct {
		current  int
		mType    MovementType
		quantity int
		want     int
	}{
		{10, MovementIn, 5, 15},
		{10, MovementOut, 4, 6},
		{10, MovementOut, 15, -5},
		{10, MovementAdjust, 0, 0},
		{10, MovementAdjust, 42, 42},
	}
	for _, c := range cases {
		if got := NextQuantity(c.current, c.mType, c.quantity); got != c.want {
			t.Fatalf("NextQuantity(%d, %s, %d): expected %d, got %d",
				c.current, c.mType, c.quantity, c.want, got)
		}
	}
}
