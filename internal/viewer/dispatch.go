package viewer

import "time"

// Event is one raw interaction delivered by the host.
type Event interface {
	isEvent()
}

// SwipeDirection is the direction a finger or pointer travelled.
type SwipeDirection int

const (
	SwipeLeft SwipeDirection = iota
	SwipeRight
)

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
	KeyEscape
)

// Panel names an overlay that can be dismissed by clicking outside it.
type Panel int

const (
	PanelSlider Panel = iota
	PanelThumbnails
)

// Button is an on-screen control.
type Button int

const (
	ButtonNext Button = iota
	ButtonPrev
	ButtonExpansion
	ButtonFullscreenEnter
	ButtonFullscreenExit
	ButtonMove
	ButtonThumbnails
)

type (
	// Swipe is a recognized horizontal swipe gesture.
	Swipe struct{ Direction SwipeDirection }
	// Tap is a click or touch release that did not travel far, in host
	// pixels relative to the viewport.
	Tap struct {
		X, Y float64
		At   time.Time
	}
	// KeyPress is a key going down.
	KeyPress struct{ Key Key }
	// SliderMoved carries the raw slider value.
	SliderMoved struct{ Value string }
	// ThumbnailSelected carries the sequence index of a thumbnail.
	ThumbnailSelected struct{ Index int }
	// OutsideClick is a click that landed outside an open panel.
	OutsideClick struct{ Panel Panel }
	// ButtonPressed is a click on a control.
	ButtonPressed struct{ Button Button }
	// Resized is a new viewport measurement.
	Resized struct{ Width, Height float64 }
	// FullscreenChanged is a full-screen change observed by the host.
	FullscreenChanged struct{ On bool }
)

func (Swipe) isEvent()             {}
func (Tap) isEvent()               {}
func (KeyPress) isEvent()          {}
func (SliderMoved) isEvent()       {}
func (ThumbnailSelected) isEvent() {}
func (OutsideClick) isEvent()      {}
func (ButtonPressed) isEvent()     {}
func (Resized) isEvent()           {}
func (FullscreenChanged) isEvent() {}

// Dispatch routes one event. Each event is handled to completion, including
// reconciliation and notification, before Dispatch returns.
func (v *Viewer) Dispatch(ev Event) {
	switch e := ev.(type) {
	case Swipe:
		v.swipe(e.Direction)
	case Tap:
		v.tap(e.X, e.Y, e.At)
	case KeyPress:
		v.key(e.Key)
	case SliderMoved:
		v.SliderInput(e.Value)
	case ThumbnailSelected:
		v.SelectThumbnail(e.Index)
	case OutsideClick:
		switch e.Panel {
		case PanelSlider:
			v.DismissSlider()
		case PanelThumbnails:
			v.DismissThumbnails()
		}
	case ButtonPressed:
		v.button(e.Button)
	case Resized:
		v.Resize(e.Width, e.Height)
	case FullscreenChanged:
		v.SetFullscreen(e.On)
	}
}

// Leftward input advances rtl decks and retreats ltr decks; rightward input
// does the opposite.
func (v *Viewer) swipe(dir SwipeDirection) {
	if v.ui.zoomed {
		return
	}
	v.turn(dir == SwipeLeft)
}

func (v *Viewer) key(k Key) {
	switch k {
	case KeyArrowLeft:
		v.turn(true)
	case KeyArrowRight:
		v.turn(false)
	case KeyEscape:
		if v.state.Fullscreen {
			v.ExitFullscreen()
		}
	}
}

// turn moves for a physical left or right input.
func (v *Viewer) turn(left bool) {
	if left == (v.in.Direction == RTL) {
		v.Advance()
		return
	}
	v.Retreat()
}

func (v *Viewer) tap(x, y float64, at time.Time) {
	if v.taps.Observe(x, y, at) {
		v.toggleZoom(x, y)
		return
	}
	if v.ui.zoomed {
		v.ui.zoomed = false
		return
	}
	v.ui.showChrome = !v.ui.showChrome
	v.notify.clickCenter()
}

func (v *Viewer) toggleZoom(x, y float64) {
	if v.ui.zoomed {
		v.ui.zoomed = false
		return
	}
	v.ui.zoomed = true
	v.ui.showChrome = false
	v.ui.zoomX, v.ui.zoomY = 50, 50
	if vp := v.in.Viewport; vp.Measured() {
		v.ui.zoomX = clampPercent(x / vp.Width * 100)
		v.ui.zoomY = clampPercent(y / vp.Height * 100)
	}
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

func (v *Viewer) button(b Button) {
	switch b {
	case ButtonNext:
		v.Next()
	case ButtonPrev:
		v.Prev()
	case ButtonExpansion:
		v.ToggleExpansion()
	case ButtonFullscreenEnter:
		if !v.state.Fullscreen {
			v.EnterFullscreen()
			// A refused request leaves the flag alone
			if v.state.Fullscreen {
				v.ui.suppressAnimation = true
			}
		}
	case ButtonFullscreenExit:
		if v.state.Fullscreen {
			v.ExitFullscreen()
			v.ui.suppressAnimation = true
		}
	case ButtonMove:
		v.ToggleSlider()
	case ButtonThumbnails:
		v.ToggleThumbnails()
	}
}
