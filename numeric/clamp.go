// Package numeric holds small range helpers over ordered values.
package numeric

import "cmp"

// ClampLow returns x, or low when x is below it.
func ClampLow[T cmp.Ordered](x, low T) T {
	if x < low {
		return low
	}
	return x
}

// ClampHigh returns x, or high when x is above it.
func ClampHigh[T cmp.Ordered](x, high T) T {
	if x > high {
		return high
	}
	return x
}

// ClampRange limits x to [low, high]. An inverted range (low > high) yields
// low.
func ClampRange[T cmp.Ordered](x, low, high T) T {
	if low > high {
		return low
	}
	return ClampHigh(ClampLow(x, low), high)
}
