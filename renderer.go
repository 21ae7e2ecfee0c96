package main

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"comicview/internal/viewer"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}
	colorAccent    = color.RGBA{230, 120, 60, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
	bgPageArea    = color.RGBA{24, 24, 24, 255}
)

// zoomFactor is the magnification applied by a double-tap
const zoomFactor = 2.0

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{renderState: renderState}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Clear()

	v := r.renderState.Viewer()
	l := r.renderState.ScreenLayout()

	if !v.IsExpansion() {
		DrawFilledRect(screen, l.pageArea.X, l.pageArea.Y, l.pageArea.W, l.pageArea.H, bgPageArea)
	}
	r.drawPages(screen, v, l)

	if v.ShowPageIndicator() && !l.indicator.empty() {
		r.drawIndicator(screen, v, l)
	}
	if v.IsShownChrome() {
		r.drawChrome(screen, v, l)
	}
	if v.IsShownSlider() {
		r.drawSlider(screen, v, l)
	}
	if v.IsShownThumbnails() {
		r.drawThumbnails(screen, v, l)
	}
	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}
	if msg := r.renderState.GetOverlayMessage(); msg != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen, msg)
	}
}

// drawPages draws the visible slots. In double view the cursor slot is on
// the right and its partner on the left; the pad slot stays empty.
func (r *Renderer) drawPages(screen *ebiten.Image, v *viewer.Viewer, l screenLayout) {
	slots := v.VisibleSlots()
	if len(slots) == 0 {
		return
	}
	seq := v.Sequence()
	regions := spreadSlots(l.pageArea, 1)
	if !v.IsSingleView() {
		regions = spreadSlots(l.pageArea, 2)
	}

	zoomed := v.IsZoomed()
	zx, zy := v.ZoomOrigin()
	fx, fy := l.width*zx/100, l.height*zy/100
	offset := r.renderState.TransitionOffset()
	upscale := v.IsExpansion()

	for i, slot := range slots {
		if i >= len(regions) {
			break
		}
		page := seq.Logical(slot)
		if page < 0 {
			continue
		}
		img := r.renderState.Images().GetImage(page)
		if img == nil {
			continue
		}

		region := regions[i]
		align := "center"
		if len(regions) == 2 {
			// Pages meet at the spine
			align = "left"
			if i == 1 {
				align = "right"
			}
		}

		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		scale := fitScale(iw, ih, int(region.W), int(region.H), upscale)
		sw, sh := float64(iw)*scale, float64(ih)*scale

		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(horizontalPosition(region, sw, align), region.Y+(region.H-sh)/2)
		op.GeoM.Translate(offset, 0)
		if zoomed {
			op.GeoM.Translate(-fx, -fy)
			op.GeoM.Scale(zoomFactor, zoomFactor)
			op.GeoM.Translate(fx, fy)
		}
		screen.DrawImage(img, op)
	}
}

func horizontalPosition(region rect, scaledW float64, align string) float64 {
	switch align {
	case "left":
		return region.X
	case "right":
		return region.X + region.W - scaledW
	default:
		return region.X + (region.W-scaledW)/2
	}
}

func (r *Renderer) drawIndicator(screen *ebiten.Image, v *viewer.Viewer, l screenLayout) {
	DrawFilledRect(screen, l.indicator.X, l.indicator.Y, l.indicator.W, l.indicator.H, bgColorMedium)
	DrawCenteredText(screen, v.Indicator(), uiFace(16), l.indicator, colorWhite)
}

func (r *Renderer) drawChrome(screen *ebiten.Image, v *viewer.Viewer, l screenLayout) {
	c := l.controller
	DrawFilledRect(screen, c.X, c.Y, c.W, c.H, bgColorDark)

	face := uiFace(16)
	for _, ctl := range l.controls {
		b := ctl.bounds
		switch ctl.button {
		case viewer.ButtonNext, viewer.ButtonPrev:
			DrawFilledRect(screen, b.X, b.Y, b.W, b.H, bgColorLight)
			arrow := "<"
			if b.X > l.width/2 {
				arrow = ">"
			}
			DrawCenteredText(screen, arrow, uiFace(32), b, colorWhite)
		default:
			active := (ctl.button == viewer.ButtonMove && v.IsShownSlider()) ||
				(ctl.button == viewer.ButtonThumbnails && v.IsShownThumbnails())
			bg := color.Color(bgColorMedium)
			if active {
				bg = colorAccent
			}
			DrawFilledRect(screen, b.X, b.Y, b.W, b.H, bg)
			DrawStrokeRect(screen, b, 1, colorGray)
			DrawCenteredText(screen, ctl.label, face, b, colorWhite)
		}
	}
}

func (r *Renderer) drawSlider(screen *ebiten.Image, v *viewer.Viewer, l screenLayout) {
	p := l.sliderPanel
	DrawFilledRect(screen, p.X, p.Y, p.W, p.H, bgColorDark)
	t := l.sliderTrack
	DrawFilledRect(screen, t.X, t.Y, t.W, t.H, colorGray)

	value := v.SliderValue()
	if preview, dragging := r.renderState.SliderPreview(); dragging {
		value = preview
	}
	max := v.SliderMax()
	knob := l.sliderKnobX(value, max)
	// Filled part grows from the right, like the page strip
	DrawFilledRect(screen, knob, t.Y, t.X+t.W-knob, t.H, colorAccent)
	DrawFilledRect(screen, knob-6, t.Y-8, 12, t.H+16, colorWhite)
	DrawText(screen, fmt.Sprintf("%d/%d", value, max), uiFace(14), p.X+6, p.Y+2, colorWhite)
}

func (r *Renderer) drawThumbnails(screen *ebiten.Image, v *viewer.Viewer, l screenLayout) {
	p := l.thumbPanel
	DrawFilledRect(screen, p.X, p.Y, p.W, p.H, bgColorDark)

	current := map[int]bool{}
	for _, slot := range v.VisibleSlots() {
		current[slot] = true
	}

	face := uiFace(14)
	images := r.renderState.Images()
	for _, cell := range l.thumbCells {
		b := cell.bounds
		labelH := 20.0
		thumb := images.GetThumbnail(cell.page, int(b.W), int(b.H-labelH))
		if thumb != nil {
			tw, th := float64(thumb.Bounds().Dx()), float64(thumb.Bounds().Dy())
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(b.X+(b.W-tw)/2, b.Y+(b.H-labelH-th)/2)
			screen.DrawImage(thumb, op)
		}
		border := color.Color(colorGray)
		if current[cell.slot] {
			border = colorAccent
		}
		DrawStrokeRect(screen, b, 2, border)
		DrawCenteredText(screen, fmt.Sprintf("%d", cell.page+1), face, rect{b.X, b.Y + b.H - labelH, b.W, labelH}, colorWhite)
	}
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image, msg string) {
	face := uiFace(24)
	if face == nil {
		return
	}
	w, h := text.Measure(msg, face, 0)
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	box := rect{(sw - w - 40) / 2, (sh - h - 30) / 2, w + 40, h + 30}
	DrawFilledRect(screen, box.X, box.Y, box.W, box.H, bgColorDark)
	DrawCenteredText(screen, msg, face, box, colorYellow)
}

// getActionsList returns the sorted actions that have any binding
func (r *Renderer) getActionsList() []string {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()

	var actions []string
	for _, def := range actionDefinitions {
		if len(keybindings[def.Name]) > 0 || len(mousebindings[def.Name]) > 0 {
			actions = append(actions, def.Name)
		}
	}
	sort.Strings(actions)
	return actions
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	padding := 40.0
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	size := r.renderState.GetFontSize()
	actions := r.getActionsList()
	lineHeight := size * 1.4
	// Shrink until everything fits, but stay readable
	for size > 10 && float64(len(actions)+6)*lineHeight > h-padding*2 {
		size--
		lineHeight = size * 1.4
	}
	face := uiFace(size)
	if face == nil {
		return
	}

	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	descriptions := GetActionDescriptions()

	y := padding + 20
	DrawText(screen, "HELP: Controls (Keyboard | Mouse)", face, padding+20, y, colorWhite)
	y += lineHeight * 1.5

	nameX := padding + 40
	inputX := nameX + size*12
	descX := inputX + size*16
	for _, action := range actions {
		DrawText(screen, action, face, nameX, y, colorLightBlue)

		x := inputX
		if keys := keybindings[action]; len(keys) > 0 {
			s := strings.Join(keys, ", ")
			DrawText(screen, s, face, x, y, colorYellow)
			kw, _ := text.Measure(s+" ", face, 0)
			x += kw
		}
		if mouse := mousebindings[action]; len(mouse) > 0 {
			DrawText(screen, "| "+strings.Join(mouse, ", "), face, x, y, colorCyan)
		}
		DrawText(screen, descriptions[action], face, descX, y, colorGray)
		y += lineHeight
	}

	y += lineHeight
	DrawText(screen, "Tap: controls   Double-tap: zoom   Swipe: turn page", face, padding+20, y, colorOrange)
	y += lineHeight

	status := r.renderState.GetConfigStatus()
	statusColor := colorGreen
	switch status.Status {
	case "Warning":
		statusColor = colorYellow
	case "Error":
		statusColor = colorLightRed
	}
	DrawText(screen, "Config Status: "+status.Status, face, padding+20, y, statusColor)
	for _, warning := range status.Warnings {
		y += lineHeight
		DrawText(screen, "  "+warning, face, padding+20, y, colorLightRed)
	}
}
