package viewer

import (
	"math"
	"strconv"
	"strings"
)

// Step returns how many slots one navigation moves.
func Step(single bool) int {
	if single {
		return 1
	}
	return 2
}

// CanGoNext reports whether advancing from cursor stays inside a deck of n
// slots.
func CanGoNext(cursor, n int, single bool) bool {
	if single {
		return cursor < n-1
	}
	return cursor < n-2
}

// CanGoPrev reports whether retreating from cursor is possible.
func CanGoPrev(cursor int) bool {
	return cursor > 0
}

// AlignSpread rounds a cursor down to the start of its spread.
func AlignSpread(cursor int) int {
	if cursor < 0 {
		return 0
	}
	return cursor / 2 * 2
}

// Clamp forces cursor into [0, n) and, in double view, onto a spread start.
// An empty deck always yields 0.
func Clamp(cursor, n int, single bool) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		cursor = n - 1
	}
	if !single {
		cursor = AlignSpread(cursor)
	}
	return cursor
}

// SliderToCursor converts a 1-based slider value into a cursor. In double
// view the slider counts spreads.
func SliderToCursor(value, n int, single bool) int {
	value = max(1, min(value, SliderMax(n, single)))
	if single {
		return Clamp(value-1, n, true)
	}
	return Clamp((value-1)*2, n, false)
}

// CursorToSlider is the inverse of SliderToCursor.
func CursorToSlider(cursor int, single bool) int {
	if single {
		return cursor + 1
	}
	return cursor/2 + 1
}

// SliderMax is the largest meaningful slider value for a deck of n slots.
func SliderMax(n int, single bool) int {
	if n <= 0 {
		return 0
	}
	if single {
		return n
	}
	return (n + 1) / 2
}

// parseSliderValue accepts integer or decimal text, saturating at the int32
// range. Anything else, including NaN and infinities, is rejected.
func parseSliderValue(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return max(math.MinInt32, min(v, math.MaxInt32)), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Max(math.MinInt32, math.Min(f, math.MaxInt32))
	return int(math.Floor(f)), true
}
