package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"comicview/internal/viewer"
)

// MouseSettings contains pointer configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleTapTime    int     `json:"double_tap_time"`   // milliseconds
	DoubleTapRadius  float64 `json:"double_tap_radius"` // pixels
	SwipeThreshold   float64 `json:"swipe_threshold"`   // pixels
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleTapTime:    int(viewer.DoubleTapWindow / time.Millisecond),
		DoubleTapRadius:  viewer.DoubleTapRadius,
		SwipeThreshold:   50,
		EnableMouse:      true,
		WheelInverted:    false,
	}
}

// withDefaults replaces out-of-range values with defaults. A zero value
// MouseSettings (absent from the config file) becomes the defaults.
func (s MouseSettings) withDefaults() MouseSettings {
	if s == (MouseSettings{}) {
		return GetDefaultMouseSettings()
	}
	d := GetDefaultMouseSettings()
	if s.WheelSensitivity <= 0 {
		s.WheelSensitivity = d.WheelSensitivity
	}
	if s.DoubleTapTime <= 0 || s.DoubleTapTime > 1000 {
		s.DoubleTapTime = d.DoubleTapTime
	}
	if s.DoubleTapRadius <= 0 {
		s.DoubleTapRadius = d.DoubleTapRadius
	}
	if s.SwipeThreshold <= 0 {
		s.SwipeThreshold = d.SwipeThreshold
	}
	return s
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button      ebiten.MouseButton
	IsWheel     bool
	WheelDeltaY float64
	Shift       bool
	Ctrl        bool
	Alt         bool
}

// getMouseMapping returns the bindable buttons. The left button is reserved
// for taps, swipes and the on-screen controls.
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3,
		"Forward":     ebiten.MouseButton4,
	}
}

// parseMouseString parses a mouse string like "Ctrl+MiddleClick" or "WheelUp"
func parseMouseString(mouseStr string) (MouseCombination, error) {
	parts := strings.Split(mouseStr, "+")
	actionName := parts[len(parts)-1]

	var combination MouseCombination
	switch actionName {
	case "WheelUp":
		combination.IsWheel = true
		combination.WheelDeltaY = 1.0
	case "WheelDown":
		combination.IsWheel = true
		combination.WheelDeltaY = -1.0
	default:
		button, exists := getMouseMapping()[actionName]
		if !exists {
			return MouseCombination{}, fmt.Errorf("unknown mouse action: %s", actionName)
		}
		combination.Button = button
	}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return MouseCombination{}, fmt.Errorf("unknown modifier: %s", modifier)
		}
	}
	return combination, nil
}

// validateMousebindings checks every binding parses and none conflict
func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[string]string)
	for action, mouseStrings := range mousebindings {
		if _, known := actionIndex[action]; !known {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, mouseStr := range mouseStrings {
			if _, err := parseMouseString(mouseStr); err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %w", mouseStr, action, err)
			}
			if existing, ok := seen[mouseStr]; ok {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existing, action)
			}
			seen[mouseStr] = action
		}
	}
	return nil
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings map[string][]string
	combinations  map[string][]MouseCombination
	settings      MouseSettings
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{settings: settings}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

// isMouseActionTriggered checks if a mouse combination fired this tick
func (mm *MousebindingManager) isMouseActionTriggered(combination MouseCombination) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	if !modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt) {
		return false
	}

	if combination.IsWheel {
		_, wheelY := ebiten.Wheel()
		if mm.settings.WheelInverted {
			wheelY = -wheelY
		}
		wheelY *= mm.settings.WheelSensitivity
		return (combination.WheelDeltaY > 0 && wheelY > 0) || (combination.WheelDeltaY < 0 && wheelY < 0)
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, combination := range mm.combinations[action] {
		if mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction runs the action if one of its mouse bindings fired
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings replaces the mouse bindings and re-parses them
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.combinations = make(map[string][]MouseCombination, len(mousebindings))
	for action, mouseStrings := range mousebindings {
		for _, mouseStr := range mouseStrings {
			if combination, err := parseMouseString(mouseStr); err == nil {
				mm.combinations[action] = append(mm.combinations[action], combination)
			}
		}
	}
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
