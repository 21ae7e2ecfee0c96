package main

import (
	"time"

	"comicview/internal/viewer"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// InputActions provides action methods for the binding managers
type InputActions interface {
	Quit()
	ToggleHelp()
	TogglePageIndicator()
	Escape()

	// Navigation
	PageLeft()
	PageRight()
	NavigateNext()
	NavigatePrevious()
	JumpFirst()
	JumpLast()

	// Layout and overlays
	ToggleExpansion()
	ToggleFullscreen()
	ToggleSlider()
	ToggleThumbnails()
	ToggleChrome()

	// Settings
	ToggleReadingDirection()
	CycleSortMethod()
}

// frameSnapshot captures what a frame was drawn from, so unchanged frames
// can be skipped
type frameSnapshot struct {
	Cursor        int
	SingleView    bool
	Expansion     bool
	Fullscreen    bool
	Zoomed        bool
	ZoomX, ZoomY  float64
	Chrome        bool
	Slider        bool
	Thumbnails    bool
	ThumbStart    int
	Indicator     bool
	Help          bool
	Direction     int
	WindowWidth   int
	WindowHeight  int
	PagesCount    int
	Overlay       string
	OverlayActive bool
	Transitioning bool
	Loaded        int
	SliderPreview int
	SliderDrag    bool
}

// Equals checks if two snapshots are equal. A nil snapshot never matches.
func (s *frameSnapshot) Equals(other *frameSnapshot) bool {
	if s == nil || other == nil {
		return false
	}
	return *s == *other
}

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	Viewer() *viewer.Viewer
	Images() *ImageManager
	ScreenLayout() screenLayout
	TransitionOffset() float64
	SliderPreview() (value int, dragging bool)

	IsShowingHelp() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// InputState provides the pointer handler with what it hit-tests against
type InputState interface {
	Viewer() *viewer.Viewer
	ScreenLayout() screenLayout
	IsShowingHelp() bool
	SetSliderPreview(value int, dragging bool)
}
