package viewer

import (
	"math"
	"time"
)

const (
	// DoubleTapWindow is the longest gap between two taps of a double-tap.
	DoubleTapWindow = 300 * time.Millisecond
	// DoubleTapRadius is the farthest two taps of a double-tap may land apart,
	// in host pixels.
	DoubleTapRadius = 30.0
)

// TapDetector remembers the last unpaired tap.
type TapDetector struct {
	Window time.Duration
	Radius float64

	last    time.Time
	lastX   float64
	lastY   float64
	pending bool
}

// NewTapDetector returns a detector using the default thresholds.
func NewTapDetector() *TapDetector {
	return &TapDetector{Window: DoubleTapWindow, Radius: DoubleTapRadius}
}

// Observe records a tap and reports whether it completes a double-tap.
// A completed double-tap clears the memo so the next tap starts over.
func (d *TapDetector) Observe(x, y float64, at time.Time) bool {
	if d.pending {
		dt := at.Sub(d.last)
		if dt >= 0 && dt < d.Window && math.Hypot(x-d.lastX, y-d.lastY) <= d.Radius {
			d.pending = false
			return true
		}
	}
	d.last, d.lastX, d.lastY = at, x, y
	d.pending = true
	return false
}

// Reset forgets any pending tap.
func (d *TapDetector) Reset() {
	d.pending = false
}
