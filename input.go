package main

import (
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"comicview/internal/viewer"
)

// InputHandler handles keyboard, mouse and touch input processing
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	pointer             pointerTrack
	pressedButton       viewer.Button
	touchIDs            []ebiten.TouchID
	now                 func() time.Time
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
		now:                 time.Now,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	inputProcessed := false

	for _, def := range actionDefinitions {
		if h.keybindingManager.ExecuteAction(def.Name, h.inputActions) {
			inputProcessed = true
			continue
		}
		if h.mousebindingManager.ExecuteAction(def.Name, h.inputActions) {
			inputProcessed = true
		}
	}

	inputProcessed = h.handlePointer() || inputProcessed

	return inputProcessed
}

// handlePointer follows the left mouse button and the first touch through
// press, drag and release
func (h *InputHandler) handlePointer() bool {
	if !h.pointer.active {
		if h.mousebindingManager.GetSettings().EnableMouse && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			h.press(float64(x), float64(y), false, 0)
			return true
		}
		h.touchIDs = inpututil.AppendJustPressedTouchIDs(h.touchIDs[:0])
		if len(h.touchIDs) > 0 {
			id := h.touchIDs[0]
			x, y := ebiten.TouchPosition(id)
			h.press(float64(x), float64(y), true, int(id))
			return true
		}
		return false
	}

	if h.pointer.touch {
		id := ebiten.TouchID(h.pointer.touchID)
		if inpututil.IsTouchJustReleased(id) {
			h.release()
			return true
		}
		x, y := ebiten.TouchPosition(id)
		h.drag(float64(x), float64(y))
		return false
	}

	x, y := ebiten.CursorPosition()
	h.drag(float64(x), float64(y))
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.release()
		return true
	}
	return false
}

// press decides what the press started on. Open panels are dismissed by a
// press outside them, unless the press is on the control that toggles them.
func (h *InputHandler) press(x, y float64, touch bool, id int) {
	v := h.inputState.Viewer()
	l := h.inputState.ScreenLayout()

	if h.inputState.IsShowingHelp() {
		h.inputActions.ToggleHelp()
		h.pointer.begin(x, y, touch, id, targetConsumed)
		return
	}

	ctl, onControl := l.controlAt(x, y)

	if v.IsShownSlider() {
		if l.sliderPanel.contains(x, y) {
			h.pointer.begin(x, y, touch, id, targetSlider)
			h.inputState.SetSliderPreview(l.sliderValueAt(x, v.SliderMax()), true)
			return
		}
		if !onControl || ctl.button != viewer.ButtonMove {
			v.Dispatch(viewer.OutsideClick{Panel: viewer.PanelSlider})
			h.pointer.begin(x, y, touch, id, targetConsumed)
			return
		}
	}

	if v.IsShownThumbnails() {
		if l.thumbPanel.contains(x, y) {
			h.pointer.begin(x, y, touch, id, targetThumbnail)
			return
		}
		if !onControl || ctl.button != viewer.ButtonThumbnails {
			v.Dispatch(viewer.OutsideClick{Panel: viewer.PanelThumbnails})
			h.pointer.begin(x, y, touch, id, targetConsumed)
			return
		}
	}

	if onControl {
		h.pressedButton = ctl.button
		h.pointer.begin(x, y, touch, id, targetButton)
		return
	}
	h.pointer.begin(x, y, touch, id, targetPage)
}

func (h *InputHandler) drag(x, y float64) {
	h.pointer.move(x, y)
	if h.pointer.target == targetSlider {
		v := h.inputState.Viewer()
		h.inputState.SetSliderPreview(h.inputState.ScreenLayout().sliderValueAt(x, v.SliderMax()), true)
	}
}

func (h *InputHandler) release() {
	p := h.pointer
	h.pointer = pointerTrack{}
	v := h.inputState.Viewer()
	l := h.inputState.ScreenLayout()

	switch p.target {
	case targetConsumed:
	case targetSlider:
		h.inputState.SetSliderPreview(0, false)
		value := l.sliderValueAt(p.lastX, v.SliderMax())
		v.Dispatch(viewer.SliderMoved{Value: strconv.Itoa(value)})
	case targetThumbnail:
		if cell, ok := l.thumbnailAt(p.lastX, p.lastY); ok {
			v.Dispatch(viewer.ThumbnailSelected{Index: cell.slot})
		}
	case targetButton:
		// Released over the same control counts as a click
		if ctl, ok := l.controlAt(p.lastX, p.lastY); ok && ctl.button == h.pressedButton {
			debugLog("button %d", ctl.button)
			v.Dispatch(viewer.ButtonPressed{Button: ctl.button})
		}
	case targetPage:
		dx, dy := p.delta()
		kind, dir := classifyGesture(dx, dy, h.mousebindingManager.GetSettings().SwipeThreshold)
		switch kind {
		case gestureSwipe:
			v.Dispatch(viewer.Swipe{Direction: dir})
		case gestureTap:
			v.Dispatch(viewer.Tap{X: p.startX, Y: p.startY, At: h.now()})
		}
	}
}
