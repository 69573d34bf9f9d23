package numeric

import (
	"math"
	"testing"
)

func TestClampRange(t *testing.T) {
	cases := []struct {
		name            string
		x, low, high, w float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"at low", 0, 0, 10, 0},
		{"at high", 10, 0, 10, 10},
		{"inverted range", 5, 10, 0, 10},
		{"infinity", math.Inf(1), 0, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampRange(tc.x, tc.low, tc.high); got != tc.w {
				t.Fatalf("ClampRange(%v,%v,%v)=%v want %v", tc.x, tc.low, tc.high, got, tc.w)
			}
		})
	}
}

func TestClampLowHigh_Ints(t *testing.T) {
	if got := ClampLow(3, 5); got != 5 {
		t.Fatalf("ClampLow(3,5)=%d", got)
	}
	if got := ClampLow(7, 5); got != 7 {
		t.Fatalf("ClampLow(7,5)=%d", got)
	}
	if got := ClampHigh(7, 5); got != 5 {
		t.Fatalf("ClampHigh(7,5)=%d", got)
	}
	if got := ClampHigh(3, 5); got != 3 {
		t.Fatalf("ClampHigh(3,5)=%d", got)
	}
}

func TestClamp_Strings(t *testing.T) {
	if got := ClampRange("m", "b", "k"); got != "k" {
		t.Fatalf("unexpected %q", got)
	}
}
