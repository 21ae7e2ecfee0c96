package main

import (
	"math"

	"comicview/internal/viewer"
)

// Chrome geometry in pixels
const (
	controllerHeight = 48.0
	controlWidth     = 132.0
	controlGap       = 8.0
	navButtonWidth   = 56.0
	normalMargin     = 24.0
	sliderHeight     = 40.0
	sliderInset      = 24.0
	thumbCellW       = 120.0
	thumbCellH       = 170.0
	thumbGap         = 12.0
	thumbPanelMargin = 40.0
)

type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r rect) empty() bool {
	return r.W <= 0 || r.H <= 0
}

// control is a clickable chrome element
type control struct {
	button viewer.Button
	label  string
	bounds rect
}

// thumbCell is one entry of the thumbnail grid
type thumbCell struct {
	page   int // caller page index
	slot   int // sequence index
	bounds rect
}

// screenLayout is every on-screen region for one frame
type screenLayout struct {
	width, height float64
	pageArea      rect
	controller    rect
	controls      []control
	indicator     rect
	sliderPanel   rect
	sliderTrack   rect
	thumbPanel    rect
	thumbCells    []thumbCell
	thumbPerPage  int
}

// computeLayout places the page area and chrome for the viewer's state.
// thumbStart is the first caller page shown in the thumbnail grid.
func computeLayout(width, height float64, v *viewer.Viewer, thumbStart int) screenLayout {
	l := screenLayout{width: width, height: height}
	text := v.Text()

	l.pageArea = rect{0, 0, width, height}
	if !v.IsExpansion() {
		l.pageArea = rect{normalMargin, normalMargin, width - 2*normalMargin, height - 2*normalMargin - controllerHeight}
	}

	if v.IsShownChrome() {
		l.controller = rect{0, height - controllerHeight, width, controllerHeight}

		var buttons []control
		if !v.IsFullscreen() {
			label := text.Expansion
			if v.IsExpansion() {
				label = text.Normal
			}
			buttons = append(buttons, control{button: viewer.ButtonExpansion, label: label})
		}
		if v.CanFullscreen() {
			if v.IsFullscreen() {
				buttons = append(buttons, control{button: viewer.ButtonFullscreenExit, label: text.Normal})
			} else {
				buttons = append(buttons, control{button: viewer.ButtonFullscreenEnter, label: text.FullScreen})
			}
		}
		buttons = append(buttons,
			control{button: viewer.ButtonMove, label: text.Move},
			control{button: viewer.ButtonThumbnails, label: text.Thumbnails},
		)

		total := float64(len(buttons))*controlWidth + float64(len(buttons)-1)*controlGap
		x := (width - total) / 2
		for i := range buttons {
			buttons[i].bounds = rect{x, l.controller.Y + 6, controlWidth, controllerHeight - 12}
			x += controlWidth + controlGap
		}

		// Side buttons follow the strip: the left edge advances the
		// sequence, which is "next" for rtl and "prev" for ltr.
		navH := math.Min(160, height/3)
		navY := (height - controllerHeight - navH) / 2
		left := rect{0, navY, navButtonWidth, navH}
		right := rect{width - navButtonWidth, navY, navButtonWidth, navH}
		nextRect, prevRect := left, right
		if v.Direction() == viewer.LTR {
			nextRect, prevRect = right, left
		}
		if v.CanGoNextInReading() {
			buttons = append(buttons, control{button: viewer.ButtonNext, label: "next", bounds: nextRect})
		}
		if v.CanGoPrevInReading() {
			buttons = append(buttons, control{button: viewer.ButtonPrev, label: "prev", bounds: prevRect})
		}
		l.controls = buttons
	}

	if v.ShowPageIndicator() {
		l.indicator = rect{width/2 - 60, 8, 120, 28}
	}

	if v.IsShownSlider() {
		panelW := math.Max(200, width*0.6)
		l.sliderPanel = rect{(width - panelW) / 2, height - controllerHeight - sliderHeight - 8, panelW, sliderHeight}
		l.sliderTrack = rect{l.sliderPanel.X + sliderInset, l.sliderPanel.Y + sliderHeight/2 - 4, panelW - 2*sliderInset, 8}
	}

	if v.IsShownThumbnails() {
		l.thumbPanel = rect{thumbPanelMargin, thumbPanelMargin, width - 2*thumbPanelMargin, height - 2*thumbPanelMargin - controllerHeight}
		cols := int((l.thumbPanel.W - thumbGap) / (thumbCellW + thumbGap))
		rows := int((l.thumbPanel.H - thumbGap) / (thumbCellH + thumbGap))
		if cols > 0 && rows > 0 {
			l.thumbPerPage = cols * rows
			l.thumbCells = thumbGrid(l.thumbPanel, cols, rows, thumbStart, v.Sequence())
		}
	}

	return l
}

// thumbGrid lays out cells in reading order: rows run right to left for rtl
// decks and left to right for ltr decks.
func thumbGrid(panel rect, cols, rows, start int, seq viewer.Sequence) []thumbCell {
	var cells []thumbCell
	for i := 0; i < cols*rows; i++ {
		page := start + i
		if page >= seq.Total() {
			break
		}
		row, col := i/cols, i%cols
		if seq.Direction() == viewer.RTL {
			col = cols - 1 - col
		}
		cells = append(cells, thumbCell{
			page: page,
			slot: seq.IndexOf(page),
			bounds: rect{
				panel.X + thumbGap + float64(col)*(thumbCellW+thumbGap),
				panel.Y + thumbGap + float64(row)*(thumbCellH+thumbGap),
				thumbCellW,
				thumbCellH,
			},
		})
	}
	return cells
}

// thumbPageStart returns the first page of the grid page holding current
func thumbPageStart(current, perPage int) int {
	if perPage <= 0 || current < 0 {
		return 0
	}
	return current / perPage * perPage
}

// controlAt returns the control under the point
func (l screenLayout) controlAt(x, y float64) (control, bool) {
	for _, c := range l.controls {
		if c.bounds.contains(x, y) {
			return c, true
		}
	}
	return control{}, false
}

// thumbnailAt returns the grid cell under the point
func (l screenLayout) thumbnailAt(x, y float64) (thumbCell, bool) {
	for _, c := range l.thumbCells {
		if c.bounds.contains(x, y) {
			return c, true
		}
	}
	return thumbCell{}, false
}

// sliderValueAt converts a position on the track into a 1-based slider
// value. The slider runs right to left like the page strip.
func (l screenLayout) sliderValueAt(x float64, max int) int {
	if max <= 1 || l.sliderTrack.empty() {
		return 1
	}
	frac := (l.sliderTrack.X + l.sliderTrack.W - x) / l.sliderTrack.W
	frac = math.Max(0, math.Min(1, frac))
	return 1 + int(math.Round(frac*float64(max-1)))
}

// sliderKnobX is the inverse of sliderValueAt
func (l screenLayout) sliderKnobX(value, max int) float64 {
	if max <= 1 {
		return l.sliderTrack.X + l.sliderTrack.W
	}
	frac := float64(value-1) / float64(max-1)
	return l.sliderTrack.X + l.sliderTrack.W - frac*l.sliderTrack.W
}

// spreadSlots splits the page area into the regions the visible slots are
// drawn in. A single slot gets the whole area; in a spread the first slot
// is on the right.
func spreadSlots(area rect, count int) []rect {
	if count <= 1 {
		return []rect{area}
	}
	half := area.W / 2
	return []rect{
		{area.X + half, area.Y, half, area.H},
		{area.X, area.Y, half, area.H},
	}
}
