package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"comicview/internal/viewer"
)

// Window size constants
const (
	defaultWidth  = 1200
	defaultHeight = 800
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., page1, page2, page10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// readingStartPage marks "start at the first page in reading order".
const readingStartPage = -1

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		if _, known := actionIndex[action]; !known {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns the set of key names a binding may use
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

// TextConfig holds the control labels.
type TextConfig struct {
	Expansion  string `json:"expansion"`
	FullScreen string `json:"full_screen"`
	Move       string `json:"move"`
	Normal     string `json:"normal"`
	Thumbnails string `json:"thumbnails"`
}

func (t TextConfig) viewerText() viewer.Text {
	return viewer.Text{
		Expansion:  t.Expansion,
		FullScreen: t.FullScreen,
		Move:       t.Move,
		Normal:     t.Normal,
		Thumbnails: t.Thumbnails,
	}
}

type Config struct {
	WindowWidth       int                 `json:"window_width"`
	WindowHeight      int                 `json:"window_height"`
	Direction         string              `json:"direction"`
	SwitchingRatio    float64             `json:"switching_ratio"`
	InitialPage       int                 `json:"initial_page"`
	InitialExpansion  bool                `json:"initial_expansion"`
	ShowPageIndicator bool                `json:"show_page_indicator"`
	Text              TextConfig          `json:"text"`
	HelpFontSize      float64             `json:"help_font_size"`
	SortMethod        int                 `json:"sort_method"`
	Fullscreen        bool                `json:"fullscreen"`
	CacheSize         int                 `json:"cache_size"`
	TransitionFrames  int                 `json:"transition_frames"`
	PreloadEnabled    bool                `json:"preload_enabled"`
	Keybindings       map[string][]string `json:"keybindings"`
	Mousebindings     map[string][]string `json:"mousebindings"`
	MouseSettings     MouseSettings       `json:"mouse_settings"`
}

// defaultConfig returns the configuration used when no file exists
func defaultConfig() Config {
	dt := viewer.DefaultText()
	return Config{
		WindowWidth:       defaultWidth,
		WindowHeight:      defaultHeight,
		Direction:         "rtl",
		SwitchingRatio:    viewer.DefaultSwitchingRatio,
		InitialPage:       readingStartPage,
		InitialExpansion:  false,
		ShowPageIndicator: false,
		Text: TextConfig{
			Expansion:  dt.Expansion,
			FullScreen: dt.FullScreen,
			Move:       dt.Move,
			Normal:     dt.Normal,
			Thumbnails: dt.Thumbnails,
		},
		HelpFontSize:     20.0,
		SortMethod:       SortNatural,
		Fullscreen:       false,
		CacheSize:        16,
		TransitionFrames: 8,
		PreloadEnabled:   true,
		Keybindings:      GetDefaultKeybindings(),
		Mousebindings:    GetDefaultMousebindings(),
		MouseSettings:    GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "comicview.json"
	}
	return filepath.Join(homeDir, ".comicview.json")
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("Warning: %s", msg)
		result.Warnings = append(result.Warnings, msg)
		result.Status = "Warning"
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	if _, err := viewer.ParseDirection(config.Direction); err != nil {
		warn("%v, using rtl", err)
		config.Direction = "rtl"
	}

	if config.SwitchingRatio <= 0 {
		config.SwitchingRatio = viewer.DefaultSwitchingRatio
	}

	if config.InitialPage < readingStartPage {
		config.InitialPage = readingStartPage
	}

	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 20.0
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Cache size (minimum 4 so a spread and its neighbours fit, maximum 64)
	if config.CacheSize < 4 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	if config.TransitionFrames < 0 {
		config.TransitionFrames = 0
	} else if config.TransitionFrames > 60 {
		config.TransitionFrames = 60
	}

	config.MouseSettings = config.MouseSettings.withDefaults()

	// Fill in missing keybindings with defaults, then validate
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		for action, defaultKeys := range GetDefaultKeybindings() {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}
		if err := validateKeybindings(config.Keybindings); err != nil {
			warn("Keybinding errors: %v", err)
			config.Keybindings = GetDefaultKeybindings()
		}
	}

	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		for action, defaultMouse := range GetDefaultMousebindings() {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultMouse
			}
		}
		if err := validateMousebindings(config.Mousebindings); err != nil {
			warn("Mouse binding errors: %v", err)
			config.Mousebindings = GetDefaultMousebindings()
		}
	}

	result.Config = config
	return result
}

// direction returns the parsed reading direction
func (c Config) direction() viewer.Direction {
	d, _ := viewer.ParseDirection(c.Direction)
	return d
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

// saveConfigToPath writes the configuration as indented JSON
func saveConfigToPath(config Config, configPath string) error {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		return fmt.Errorf("refusing to save invalid window size %dx%d", config.WindowWidth, config.WindowHeight)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", configPath, err)
	}
	return nil
}
