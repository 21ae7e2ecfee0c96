// Package viewer implements the reading-surface state machine of a comic
// viewer: the render sequence, the spread-aware cursor, layout
// reconciliation across direction, view mode and full-screen changes, input
// dispatch, and change notifications. It draws nothing; a host feeds it
// events and renders what it reports.
package viewer

import (
	"fmt"
	"log"
	"time"
)

// Text holds the localizable control labels.
type Text struct {
	Expansion  string
	FullScreen string
	Move       string
	Normal     string
	Thumbnails string
}

// DefaultText returns the English labels.
func DefaultText() Text {
	return Text{
		Expansion:  "Expansion",
		FullScreen: "Full screen",
		Move:       "Move",
		Normal:     "Normal",
		Thumbnails: "Thumbnails",
	}
}

// withDefaults fills empty labels.
func (t Text) withDefaults() Text {
	d := DefaultText()
	if t.Expansion == "" {
		t.Expansion = d.Expansion
	}
	if t.FullScreen == "" {
		t.FullScreen = d.FullScreen
	}
	if t.Move == "" {
		t.Move = d.Move
	}
	if t.Normal == "" {
		t.Normal = d.Normal
	}
	if t.Thumbnails == "" {
		t.Thumbnails = d.Thumbnails
	}
	return t
}

// FullscreenCapability is the host's ability to enter and leave full-screen.
type FullscreenCapability interface {
	Supported() bool
	Enter() error
	Exit() error
}

// Preloader warms page assets ahead of navigation. It receives caller page
// indices and must not block; failures are its own business.
type Preloader interface {
	Preload(pages []int)
}

// Options configure a Viewer at construction.
type Options struct {
	Pages              []Page
	Direction          Direction
	InitialCurrentPage int
	InitialIsExpansion bool
	SwitchingRatio     float64
	ShowPageIndicator  bool
	Text               Text

	// Viewport is the initial measurement, if the host already has one.
	Viewport Size

	// DoubleTapWindow and DoubleTapRadius override the double-tap
	// thresholds when positive.
	DoubleTapWindow time.Duration
	DoubleTapRadius float64

	Callbacks
	Fullscreen FullscreenCapability
	Preloader  Preloader

	// Logger receives diagnostic output. Nil disables logging.
	Logger *log.Logger
}

// preloadSpreads is how many spreads ahead of the cursor are warmed.
const preloadSpreads = 2

type uiState struct {
	showSlider        bool
	showThumbnails    bool
	showChrome        bool
	zoomed            bool
	zoomX, zoomY      float64 // focal point, percent of the viewport
	suppressAnimation bool
}

// Viewer owns the state of one mounted reading surface. It is not safe for
// concurrent use; the host's event loop serializes all calls.
type Viewer struct {
	in     Inputs
	state  State
	ui     uiState
	taps   *TapDetector
	notify *notifier
	shown  int // cursor the zoom and tap state belong to

	fullscreen    FullscreenCapability
	preloader     Preloader
	text          Text
	showIndicator bool
	logger        *log.Logger
}

// New mounts a viewer. The initial page and expansion values are the
// baseline for change notifications and are not reported themselves.
func New(opts Options) *Viewer {
	ratio := opts.SwitchingRatio
	if ratio <= 0 {
		ratio = DefaultSwitchingRatio
	}
	pages := make([]Page, len(opts.Pages))
	copy(pages, opts.Pages)

	v := &Viewer{
		in: Inputs{
			Pages:          pages,
			Direction:      opts.Direction,
			Viewport:       opts.Viewport,
			SwitchingRatio: ratio,
		},
		ui:            uiState{showChrome: true},
		taps:          NewTapDetector(),
		fullscreen:    opts.Fullscreen,
		preloader:     opts.Preloader,
		text:          opts.Text.withDefaults(),
		showIndicator: opts.ShowPageIndicator,
		logger:        opts.Logger,
	}
	if opts.DoubleTapWindow > 0 {
		v.taps.Window = opts.DoubleTapWindow
	}
	if opts.DoubleTapRadius > 0 {
		v.taps.Radius = opts.DoubleTapRadius
	}
	v.state = Reconcile(State{
		Cursor:    opts.InitialCurrentPage,
		Expansion: opts.InitialIsExpansion,
	}, v.in)
	v.notify = newNotifier(opts.Callbacks, v.state)
	v.shown = v.state.Cursor
	v.preload()
	return v
}

func (v *Viewer) logf(format string, args ...any) {
	if v.logger != nil {
		v.logger.Printf(format, args...)
	}
}

// apply reconciles against the current inputs and then reports changes, so
// observers never see a cursor that is invalid for the new layout.
func (v *Viewer) apply() {
	v.state = Reconcile(v.state, v.in)
	v.settle()
}

// settle reports changes after a cursor-only transition. A new page always
// opens unzoomed.
func (v *Viewer) settle() {
	if v.state.Cursor != v.shown {
		v.shown = v.state.Cursor
		v.ui.zoomed = false
		v.taps.Reset()
	}
	v.notify.flush(v.state)
}

// Resize feeds a new viewport measurement.
func (v *Viewer) Resize(width, height float64) {
	size := Size{Width: width, Height: height}
	if size == v.in.Viewport {
		return
	}
	wasSingle := v.state.SingleView
	v.in.Viewport = size
	v.apply()
	if wasSingle != v.state.SingleView {
		v.logf("view mode changed: single=%t cursor=%d", v.state.SingleView, v.state.Cursor)
	}
}

// SetDirection changes the reading order, keeping the displayed page.
func (v *Viewer) SetDirection(dir Direction) {
	if dir == v.in.Direction {
		return
	}
	v.in.Direction = dir
	v.apply()
}

// SetPages replaces the deck, keeping the displayed page where it survives.
func (v *Viewer) SetPages(pages []Page) {
	cp := make([]Page, len(pages))
	copy(cp, pages)
	v.in.Pages = cp
	v.apply()
}

// SetSwitchingRatio changes the single/double threshold.
func (v *Viewer) SetSwitchingRatio(ratio float64) {
	if ratio <= 0 {
		ratio = DefaultSwitchingRatio
	}
	v.in.SwitchingRatio = ratio
	v.apply()
}

// Advance moves the cursor one step up the sequence.
func (v *Viewer) Advance() {
	if !v.state.CanGoNext() {
		return
	}
	v.state.Cursor += Step(v.state.SingleView)
	v.ui.suppressAnimation = false
	v.settle()
	v.preload()
}

// Retreat moves the cursor one step down the sequence.
func (v *Viewer) Retreat() {
	if !v.state.CanGoPrev() {
		return
	}
	v.state.Cursor = Clamp(v.state.Cursor-Step(v.state.SingleView), v.state.Sequence.Len(), v.state.SingleView)
	v.ui.suppressAnimation = false
	v.settle()
	v.preload()
}

// Next moves forward in reading order.
func (v *Viewer) Next() {
	if v.in.Direction == LTR {
		v.Retreat()
		return
	}
	v.Advance()
}

// Prev moves backward in reading order.
func (v *Viewer) Prev() {
	if v.in.Direction == LTR {
		v.Advance()
		return
	}
	v.Retreat()
}

// CanGoNextInReading reports whether Next would move.
func (v *Viewer) CanGoNextInReading() bool {
	if v.in.Direction == LTR {
		return v.state.CanGoPrev()
	}
	return v.state.CanGoNext()
}

// CanGoPrevInReading reports whether Prev would move.
func (v *Viewer) CanGoPrevInReading() bool {
	if v.in.Direction == LTR {
		return v.state.CanGoNext()
	}
	return v.state.CanGoPrev()
}

// JumpTo moves the cursor to a sequence index, clamped and, in double view,
// rounded down to the spread start.
func (v *Viewer) JumpTo(index int) {
	n := v.state.Sequence.Len()
	if n == 0 {
		return
	}
	v.state.Cursor = Clamp(index, n, v.state.SingleView)
	v.ui.suppressAnimation = false
	v.settle()
	v.preload()
}

// SliderInput applies a raw 1-based slider value. Unparseable input is
// ignored.
func (v *Viewer) SliderInput(raw string) {
	value, ok := parseSliderValue(raw)
	if !ok {
		v.logf("ignoring slider input %q", raw)
		return
	}
	n := v.state.Sequence.Len()
	if n == 0 {
		return
	}
	v.JumpTo(SliderToCursor(value, n, v.state.SingleView))
}

// SliderValue is the 1-based slider position for the cursor.
func (v *Viewer) SliderValue() int {
	if v.state.Sequence.Len() == 0 {
		return 0
	}
	return CursorToSlider(v.state.Cursor, v.state.SingleView)
}

// SliderMax is the slider's upper bound.
func (v *Viewer) SliderMax() int {
	return SliderMax(v.state.Sequence.Len(), v.state.SingleView)
}

// SelectThumbnail jumps to the sequence index of a thumbnail and closes the
// thumbnail panel.
func (v *Viewer) SelectThumbnail(index int) {
	v.JumpTo(index)
	v.ui.showThumbnails = false
}

// ToggleExpansion flips the expanded layout. It does nothing in full-screen,
// where expansion is forced on.
func (v *Viewer) ToggleExpansion() {
	if v.state.Fullscreen {
		return
	}
	v.state.Expansion = !v.state.Expansion
	v.settle()
}

// CanFullscreen reports whether the full-screen affordance is offered.
func (v *Viewer) CanFullscreen() bool {
	return v.fullscreen != nil && v.fullscreen.Supported()
}

// EnterFullscreen asks the host for full-screen. A host failure leaves state
// untouched.
func (v *Viewer) EnterFullscreen() {
	if !v.CanFullscreen() || v.in.Fullscreen {
		return
	}
	if err := v.fullscreen.Enter(); err != nil {
		v.logf("full-screen request failed: %v", err)
		return
	}
	v.SetFullscreen(true)
}

// ExitFullscreen leaves full-screen, restoring the previous expansion.
func (v *Viewer) ExitFullscreen() {
	if !v.in.Fullscreen {
		return
	}
	if v.fullscreen != nil {
		if err := v.fullscreen.Exit(); err != nil {
			v.logf("full-screen exit failed: %v", err)
		}
	}
	v.SetFullscreen(false)
}

// SetFullscreen records a full-screen change observed by the host, for
// example when the window manager leaves full-screen on its own. Repeated
// signals are harmless.
func (v *Viewer) SetFullscreen(on bool) {
	v.in.Fullscreen = on
	v.apply()
}

// ToggleSlider shows or hides the move slider.
func (v *Viewer) ToggleSlider() {
	v.ui.showSlider = !v.ui.showSlider
}

// ToggleThumbnails shows or hides the thumbnail panel.
func (v *Viewer) ToggleThumbnails() {
	v.ui.showThumbnails = !v.ui.showThumbnails
}

// ToggleChrome shows or hides the controls.
func (v *Viewer) ToggleChrome() {
	v.ui.showChrome = !v.ui.showChrome
}

// TogglePageIndicator shows or hides the "current/total" readout.
func (v *Viewer) TogglePageIndicator() {
	v.showIndicator = !v.showIndicator
}

// DismissSlider hides the move slider.
func (v *Viewer) DismissSlider() {
	v.ui.showSlider = false
}

// DismissThumbnails hides the thumbnail panel.
func (v *Viewer) DismissThumbnails() {
	v.ui.showThumbnails = false
}

// preload hands the next spreads in reading order to the preloader.
func (v *Viewer) preload() {
	if v.preloader == nil {
		return
	}
	seq := v.state.Sequence
	step := Step(v.state.SingleView)
	dir := 1
	if v.in.Direction == LTR {
		dir = -1
	}
	var pages []int
	for k := 1; k <= preloadSpreads; k++ {
		start := v.state.Cursor + dir*k*step
		for j := 0; j < step; j++ {
			if l := seq.Logical(start + j); l >= 0 {
				pages = append(pages, l)
			}
		}
	}
	if len(pages) > 0 {
		v.preloader.Preload(pages)
	}
}

// State returns a copy of the reconciled state.
func (v *Viewer) State() State {
	return v.state
}

// CurrentPage returns the cursor.
func (v *Viewer) CurrentPage() int {
	return v.state.Cursor
}

// Sequence returns the render order.
func (v *Viewer) Sequence() Sequence {
	return v.state.Sequence
}

// Direction returns the reading order.
func (v *Viewer) Direction() Direction {
	return v.in.Direction
}

// Viewport returns the last measurement.
func (v *Viewer) Viewport() Size {
	return v.in.Viewport
}

// IsSingleView reports whether one slot is shown at a time.
func (v *Viewer) IsSingleView() bool {
	return v.state.SingleView
}

// CanGoNext reports whether Advance would move.
func (v *Viewer) CanGoNext() bool {
	return v.state.CanGoNext()
}

// CanGoPrev reports whether Retreat would move.
func (v *Viewer) CanGoPrev() bool {
	return v.state.CanGoPrev()
}

// IsExpansion reports whether the expanded layout is active.
func (v *Viewer) IsExpansion() bool {
	return v.state.Expansion
}

// IsFullscreen reports whether full-screen is active.
func (v *Viewer) IsFullscreen() bool {
	return v.state.Fullscreen
}

// IsZoomed reports whether the page is zoomed.
func (v *Viewer) IsZoomed() bool {
	return v.ui.zoomed
}

// ZoomOrigin returns the zoom focal point as viewport percentages.
func (v *Viewer) ZoomOrigin() (x, y float64) {
	return v.ui.zoomX, v.ui.zoomY
}

// IsShownChrome reports whether the controls are visible.
func (v *Viewer) IsShownChrome() bool {
	return v.ui.showChrome
}

// IsShownSlider reports whether the move slider is open.
func (v *Viewer) IsShownSlider() bool {
	return v.ui.showSlider
}

// IsShownThumbnails reports whether the thumbnail panel is open.
func (v *Viewer) IsShownThumbnails() bool {
	return v.ui.showThumbnails
}

// Animate reports whether the last cursor change should slide.
func (v *Viewer) Animate() bool {
	return !v.ui.suppressAnimation
}

// Text returns the control labels.
func (v *Viewer) Text() Text {
	return v.text
}

// ShowPageIndicator reports whether the readout is enabled.
func (v *Viewer) ShowPageIndicator() bool {
	return v.showIndicator
}

// VisibleSlots returns the sequence indices on screen. In double view the
// first index is the right-hand slot and the second the left-hand one.
func (v *Viewer) VisibleSlots() []int {
	n := v.state.Sequence.Len()
	if n == 0 {
		return nil
	}
	c := v.state.Cursor
	if v.state.SingleView || c+1 >= n {
		return []int{c}
	}
	return []int{c, c + 1}
}

// Indicator formats the "current/total" readout using caller page numbers.
func (v *Viewer) Indicator() string {
	seq := v.state.Sequence
	if seq.Total() == 0 {
		return "0/0"
	}
	current := -1
	for _, i := range v.VisibleSlots() {
		if l := seq.Logical(i); l >= 0 && (current < 0 || l < current) {
			current = l
		}
	}
	return fmt.Sprintf("%d/%d", current+1, seq.Total())
}

// ReadingStart returns the sequence index holding the first page in reading
// order for a deck of n pages, suitable as an initial cursor.
func ReadingStart(n int, dir Direction) int {
	if dir == LTR && n > 0 {
		return n - 1
	}
	return 0
}
