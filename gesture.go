package main

import (
	"math"

	"comicview/internal/viewer"
)

// gestureKind is what a completed press/release turned out to be
type gestureKind int

const (
	gestureTap gestureKind = iota
	gestureSwipe
	gestureNone // travelled, but not horizontally enough to be a swipe
)

// classifyGesture decides between a tap and a horizontal swipe from the
// total travel of a pointer. A swipe must cover threshold pixels and be
// more horizontal than vertical.
func classifyGesture(dx, dy, threshold float64) (gestureKind, viewer.SwipeDirection) {
	adx, ady := math.Abs(dx), math.Abs(dy)
	if adx >= threshold && adx > ady {
		if dx < 0 {
			return gestureSwipe, viewer.SwipeLeft
		}
		return gestureSwipe, viewer.SwipeRight
	}
	// Small jitter still counts as a tap
	if math.Hypot(dx, dy) < threshold/2 {
		return gestureTap, 0
	}
	return gestureNone, 0
}

// pointerTrack follows one press (mouse button or touch) from start to end
type pointerTrack struct {
	active         bool
	touch          bool
	touchID        int
	startX, startY float64
	lastX, lastY   float64
	target         pressTarget
}

// pressTarget records what the press started on, so a release is routed to
// the same control even if the pointer moved
type pressTarget int

const (
	targetPage pressTarget = iota
	targetButton
	targetSlider
	targetThumbnail
	targetConsumed // an outside click already handled this press
)

func (p *pointerTrack) begin(x, y float64, touch bool, id int, target pressTarget) {
	*p = pointerTrack{
		active:  true,
		touch:   touch,
		touchID: id,
		startX:  x,
		startY:  y,
		lastX:   x,
		lastY:   y,
		target:  target,
	}
}

func (p *pointerTrack) move(x, y float64) {
	p.lastX, p.lastY = x, y
}

func (p *pointerTrack) delta() (float64, float64) {
	return p.lastX - p.startX, p.lastY - p.startY
}
