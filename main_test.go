package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"comicview/internal/viewer"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"PNG file", "test.png", true},
		{"JPG file", "test.jpg", true},
		{"JPEG file", "test.jpeg", true},
		{"WebP file", "test.webp", true},
		{"BMP file", "test.bmp", true},
		{"GIF file", "test.gif", true},
		{"PNG uppercase", "test.PNG", true},
		{"JPG uppercase", "test.JPG", true},
		{"Text file", "test.txt", false},
		{"Archive", "book.cbz", false},
		{"No extension", "test", false},
		{"Empty string", "", false},
		{"Multiple dots", "test.backup.jpg", true},
		{"Path with directory", "/path/to/test.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isSupportedExt(tt.path)
			if result != tt.expected {
				t.Errorf("isSupportedExt(%s) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestIsArchiveExt(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
		kind     string
	}{
		{"book.zip", true, "zip"},
		{"book.CBZ", true, "zip"},
		{"book.rar", true, "rar"},
		{"book.cbr", true, "rar"},
		{"book.7z", true, "7z"},
		{"book.cb7", true, "7z"},
		{"book.tar", false, ""},
		{"page.png", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isArchiveExt(tt.path); got != tt.expected {
				t.Errorf("isArchiveExt(%s) = %v, want %v", tt.path, got, tt.expected)
			}
			if got := archiveKind(tt.path); got != tt.kind {
				t.Errorf("archiveKind(%s) = %q, want %q", tt.path, got, tt.kind)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name              string
		configJSON        string
		expectedWidth     int
		expectedHeight    int
		expectedRatio     float64
		expectedDirection string
		expectedPage      int
		expectedCache     int
		expectedStatus    string
	}{
		{
			name: "Valid config",
			configJSON: `{
				"window_width": 1000,
				"window_height": 800,
				"switching_ratio": 1.2,
				"direction": "ltr",
				"initial_page": 3,
				"cache_size": 20
			}`,
			expectedWidth:     1000,
			expectedHeight:    800,
			expectedRatio:     1.2,
			expectedDirection: "ltr",
			expectedPage:      3,
			expectedCache:     20,
			expectedStatus:    "OK",
		},
		{
			name: "Width too small",
			configJSON: `{
				"window_width": 200,
				"window_height": 600,
				"switching_ratio": 1.0,
				"direction": "rtl"
			}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    600,
			expectedRatio:     1.0,
			expectedDirection: "rtl",
			expectedPage:      readingStartPage,
			expectedCache:     16,
			expectedStatus:    "OK",
		},
		{
			name: "Height too small",
			configJSON: `{
				"window_width": 800,
				"window_height": 100,
				"direction": "rtl",
				"switching_ratio": 1.5
			}`,
			expectedWidth:     800,
			expectedHeight:    defaultHeight,
			expectedRatio:     1.5,
			expectedDirection: "rtl",
			expectedPage:      readingStartPage,
			expectedCache:     16,
			expectedStatus:    "OK",
		},
		{
			name: "Non-positive ratio and unknown direction",
			configJSON: `{
				"window_width": 800,
				"window_height": 600,
				"switching_ratio": -2,
				"direction": "up",
				"initial_page": -7,
				"cache_size": 500
			}`,
			expectedWidth:     800,
			expectedHeight:    600,
			expectedRatio:     viewer.DefaultSwitchingRatio,
			expectedDirection: "rtl",
			expectedPage:      readingStartPage,
			expectedCache:     64,
			expectedStatus:    "Warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, ".comicview.json")

			err := os.WriteFile(configPath, []byte(tt.configJSON), 0644)
			if err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			result := loadConfigFromPath(configPath)
			config := result.Config

			if config.WindowWidth != tt.expectedWidth {
				t.Errorf("Expected width %d, got %d", tt.expectedWidth, config.WindowWidth)
			}
			if config.WindowHeight != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, config.WindowHeight)
			}
			if config.SwitchingRatio != tt.expectedRatio {
				t.Errorf("Expected ratio %.1f, got %.1f", tt.expectedRatio, config.SwitchingRatio)
			}
			if config.Direction != tt.expectedDirection {
				t.Errorf("Expected direction %s, got %s", tt.expectedDirection, config.Direction)
			}
			if config.InitialPage != tt.expectedPage {
				t.Errorf("Expected initial page %d, got %d", tt.expectedPage, config.InitialPage)
			}
			if config.CacheSize != tt.expectedCache {
				t.Errorf("Expected cache size %d, got %d", tt.expectedCache, config.CacheSize)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s (warnings: %v)", tt.expectedStatus, result.Status, result.Warnings)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.json")

	result := loadConfigFromPath(configPath)

	if result.Status != "Default" {
		t.Errorf("Expected status Default, got %s", result.Status)
	}
	if !reflect.DeepEqual(result.Config, defaultConfig()) {
		t.Errorf("Default config mismatch.\nExpected: %+v\nGot: %+v", defaultConfig(), result.Config)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	result := loadConfigFromPath(configPath)
	if !result.HasError || result.Status != "Error" {
		t.Errorf("Expected error status, got %s (HasError=%v)", result.Status, result.HasError)
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected a warning describing the parse error")
	}
}

func TestLoadConfigBadKeybindingsFallBack(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "keys.json")
	data := `{"keybindings": {"next": ["KeyWhatever"]}}`
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	result := loadConfigFromPath(configPath)
	if result.Status != "Warning" {
		t.Errorf("Expected status Warning, got %s", result.Status)
	}
	if !reflect.DeepEqual(result.Config.Keybindings, GetDefaultKeybindings()) {
		t.Errorf("Expected default keybindings after validation failure, got %v", result.Config.Keybindings)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "saved.json")
	config := defaultConfig()
	config.Direction = "ltr"
	config.ShowPageIndicator = true
	config.Text.Move = "Seek"

	if err := saveConfigToPath(config, configPath); err != nil {
		t.Fatalf("saveConfigToPath failed: %v", err)
	}
	result := loadConfigFromPath(configPath)
	if result.Status != "OK" {
		t.Fatalf("Expected status OK, got %s (%v)", result.Status, result.Warnings)
	}
	if result.Config.direction() != viewer.LTR {
		t.Errorf("Expected ltr, got %v", result.Config.direction())
	}
	if !result.Config.ShowPageIndicator {
		t.Error("Expected page indicator to survive the round trip")
	}
	if got := result.Config.Text.viewerText().Move; got != "Seek" {
		t.Errorf("Expected Move label Seek, got %s", got)
	}

	config.WindowWidth = 10
	if err := saveConfigToPath(config, configPath); err == nil {
		t.Error("Expected an error saving an invalid window size")
	}
}

func TestValidateKeybindings(t *testing.T) {
	tests := []struct {
		name        string
		keybindings map[string][]string
		wantErr     bool
	}{
		{"Defaults", GetDefaultKeybindings(), false},
		{"Modifier", map[string][]string{"help": {"Shift+Slash"}}, false},
		{"Unknown key", map[string][]string{"next": {"KeyWhatever"}}, true},
		{"Unknown modifier", map[string][]string{"next": {"Hyper+KeyN"}}, true},
		{"Unknown action", map[string][]string{"rotate_left": {"KeyL"}}, true},
		{"Conflict", map[string][]string{"next": {"KeyN"}, "previous": {"KeyN"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKeybindings(tt.keybindings)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateKeybindings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMousebindings(t *testing.T) {
	tests := []struct {
		name          string
		mousebindings map[string][]string
		wantErr       bool
	}{
		{"Defaults", GetDefaultMousebindings(), false},
		{"Wheel with modifier", map[string][]string{"next": {"Ctrl+WheelDown"}}, false},
		{"Left click is reserved", map[string][]string{"next": {"LeftClick"}}, true},
		{"Unknown modifier", map[string][]string{"next": {"Meta+WheelDown"}}, true},
		{"Conflict", map[string][]string{"next": {"WheelDown"}, "previous": {"WheelDown"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMousebindings(tt.mousebindings)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMousebindings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMouseSettingsWithDefaults(t *testing.T) {
	if got := (MouseSettings{}).withDefaults(); got != GetDefaultMouseSettings() {
		t.Errorf("Zero settings should become defaults, got %+v", got)
	}

	s := MouseSettings{EnableMouse: true, DoubleTapTime: 5000, SwipeThreshold: -1, WheelSensitivity: 2}
	got := s.withDefaults()
	if got.DoubleTapTime != 300 {
		t.Errorf("Expected double tap time 300, got %d", got.DoubleTapTime)
	}
	if got.SwipeThreshold != 50 {
		t.Errorf("Expected swipe threshold 50, got %v", got.SwipeThreshold)
	}
	if got.WheelSensitivity != 2 {
		t.Errorf("Expected wheel sensitivity to be kept, got %v", got.WheelSensitivity)
	}
}

func TestCollectPages(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []struct {
		name      string
		shouldAdd bool
	}{
		{"page10.jpg", true},
		{"page2.png", true},
		{"page1.webp", true},
		{"document.txt", false},
		{"backup.bak", false},
	}

	for _, file := range testFiles {
		f, err := os.Create(filepath.Join(tempDir, file.name))
		if err != nil {
			t.Fatalf("Failed to create test file %s: %v", file.name, err)
		}
		f.Close()
	}

	result, err := collectPages([]string{tempDir}, SortNatural)
	if err != nil {
		t.Fatalf("collectPages failed: %v", err)
	}

	expected := []string{"page1.webp", "page2.png", "page10.jpg"}
	if len(result) != len(expected) {
		t.Fatalf("Expected %d pages, got %d: %v", len(expected), len(result), result)
	}
	for i, name := range expected {
		if filepath.Base(result[i].Path) != name {
			t.Errorf("Page %d: expected %s, got %s", i, name, result[i].Path)
		}
	}

	singleFile := filepath.Join(tempDir, "page2.png")
	result, err = collectPages([]string{singleFile}, SortNatural)
	if err != nil {
		t.Fatalf("collectPages with single file failed: %v", err)
	}
	if len(result) != 1 || result[0].Path != singleFile {
		t.Errorf("Expected [%s], got %v", singleFile, result)
	}

	if _, err := collectPages([]string{filepath.Join(tempDir, "missing")}, SortNatural); err == nil {
		t.Error("Expected an error for a missing path")
	}
}

func TestCollectPagesFromZip(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "book.cbz")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, name := range []string{"b/003.png", "b/001.png", "notes.txt", "b/002.jpg"} {
		if _, err := zw.Create(name); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish archive: %v", err)
	}
	f.Close()

	result, err := collectPages([]string{archivePath}, SortNatural)
	if err != nil {
		t.Fatalf("collectPages failed: %v", err)
	}

	expected := []string{"b/001.png", "b/002.jpg", "b/003.png"}
	if len(result) != len(expected) {
		t.Fatalf("Expected %d pages, got %v", len(expected), result)
	}
	for i, entry := range expected {
		if result[i].ArchivePath != archivePath || result[i].EntryPath != entry {
			t.Errorf("Page %d: expected %s in %s, got %+v", i, entry, archivePath, result[i])
		}
	}

	result, err = collectPages([]string{archivePath}, SortEntryOrder)
	if err != nil {
		t.Fatalf("collectPages failed: %v", err)
	}
	if len(result) != 3 || result[0].EntryPath != "b/003.png" {
		t.Errorf("Entry order should keep archive order, got %v", result)
	}
}

func TestClassifyGesture(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    float64
		kind      gestureKind
		direction viewer.SwipeDirection
	}{
		{"Still", 0, 0, gestureTap, 0},
		{"Jitter", 5, -4, gestureTap, 0},
		{"Swipe left", -80, 10, gestureSwipe, viewer.SwipeLeft},
		{"Swipe right", 120, -30, gestureSwipe, viewer.SwipeRight},
		{"Mostly vertical", 60, 90, gestureNone, 0},
		{"Short drag", 40, 0, gestureNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, dir := classifyGesture(tt.dx, tt.dy, 50)
			if kind != tt.kind {
				t.Fatalf("classifyGesture(%v, %v) kind = %v, want %v", tt.dx, tt.dy, kind, tt.kind)
			}
			if kind == gestureSwipe && dir != tt.direction {
				t.Errorf("classifyGesture(%v, %v) direction = %v, want %v", tt.dx, tt.dy, dir, tt.direction)
			}
		})
	}
}

func TestSliderTrackMapping(t *testing.T) {
	l := screenLayout{sliderTrack: rect{X: 100, Y: 0, W: 400, H: 8}}

	tests := []struct {
		name     string
		x        float64
		max      int
		expected int
	}{
		{"Right end is the first value", 500, 5, 1},
		{"Left end is the last value", 100, 5, 5},
		{"Middle", 300, 5, 3},
		{"Beyond the track clamps", 900, 5, 1},
		{"Single value", 250, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.sliderValueAt(tt.x, tt.max); got != tt.expected {
				t.Errorf("sliderValueAt(%v, %d) = %d, want %d", tt.x, tt.max, got, tt.expected)
			}
		})
	}

	for value := 1; value <= 5; value++ {
		if got := l.sliderValueAt(l.sliderKnobX(value, 5), 5); got != value {
			t.Errorf("sliderKnobX(%d) does not map back, got %d", value, got)
		}
	}
}

func TestThumbGrid(t *testing.T) {
	pages := []viewer.Page{"p0", "p1", "p2", "p3", "p4"}
	panel := rect{X: 0, Y: 0, W: 1000, H: 1000}

	rtl := viewer.BuildSequence(pages, viewer.RTL, false)
	cells := thumbGrid(panel, 3, 2, 0, rtl)
	if len(cells) != 5 {
		t.Fatalf("Expected 5 cells, got %d", len(cells))
	}
	wantX := panel.X + thumbGap + 2*(thumbCellW+thumbGap)
	if cells[0].bounds.X != wantX {
		t.Errorf("RTL first cell should be rightmost, got x=%v want %v", cells[0].bounds.X, wantX)
	}
	if cells[3].bounds.Y <= cells[0].bounds.Y {
		t.Error("Fourth cell should be on the second row")
	}

	ltr := viewer.BuildSequence(pages, viewer.LTR, false)
	cells = thumbGrid(panel, 3, 2, 0, ltr)
	if cells[0].bounds.X != panel.X+thumbGap {
		t.Errorf("LTR first cell should be leftmost, got x=%v", cells[0].bounds.X)
	}
	// Padded ltr spread: caller page 0 sits in the last slot
	if cells[0].page != 0 || cells[0].slot != 5 {
		t.Errorf("Expected page 0 in slot 5, got page %d slot %d", cells[0].page, cells[0].slot)
	}

	if got := thumbPageStart(7, 6); got != 6 {
		t.Errorf("thumbPageStart(7, 6) = %d, want 6", got)
	}
	if got := thumbPageStart(3, 0); got != 0 {
		t.Errorf("thumbPageStart(3, 0) = %d, want 0", got)
	}
}

func TestComputeLayoutNavButtons(t *testing.T) {
	pages := []viewer.Page{"p0", "p1", "p2", "p3", "p4", "p5"}
	landscape := viewer.Size{Width: 1200, Height: 800}

	tests := []struct {
		name      string
		direction viewer.Direction
		initial   int
		nextX     float64
	}{
		{"RTL next is on the left", viewer.RTL, 0, 0},
		{"LTR next is on the right", viewer.LTR, viewer.ReadingStart(len(pages), viewer.LTR), 1200 - navButtonWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viewer.New(viewer.Options{
				Pages:              pages,
				Direction:          tt.direction,
				InitialCurrentPage: tt.initial,
				Viewport:           landscape,
			})

			l := computeLayout(landscape.Width, landscape.Height, v, 0)

			var next, prev bool
			for _, c := range l.controls {
				switch c.button {
				case viewer.ButtonNext:
					next = true
					if c.bounds.X != tt.nextX {
						t.Errorf("next button at x=%v, want %v", c.bounds.X, tt.nextX)
					}
				case viewer.ButtonPrev:
					prev = true
				case viewer.ButtonFullscreenEnter, viewer.ButtonFullscreenExit:
					t.Error("full-screen control shown without a capability")
				}
			}
			if !next {
				t.Error("Expected a next button at the reading start")
			}
			if prev {
				t.Error("Did not expect a prev button at the reading start")
			}
		})
	}
}

func TestComputeLayoutExpansion(t *testing.T) {
	v := viewer.New(viewer.Options{
		Pages:              []viewer.Page{"p0", "p1"},
		InitialIsExpansion: true,
		Viewport:           viewer.Size{Width: 800, Height: 600},
	})
	l := computeLayout(800, 600, v, 0)
	if l.pageArea != (rect{0, 0, 800, 600}) {
		t.Errorf("Expanded layout should use the whole window, got %+v", l.pageArea)
	}
	if len(l.controls) == 0 {
		t.Error("Chrome starts visible, got no controls")
	}

	v.ToggleChrome()
	l = computeLayout(800, 600, v, 0)
	if len(l.controls) != 0 || !l.controller.empty() {
		t.Errorf("Hidden chrome should place no controls, got %d", len(l.controls))
	}

	v.ToggleExpansion()
	l = computeLayout(800, 600, v, 0)
	if l.pageArea.X != normalMargin || l.pageArea.H != 600-2*normalMargin-controllerHeight {
		t.Errorf("Normal layout should be inset, got %+v", l.pageArea)
	}
}

func TestSpreadSlots(t *testing.T) {
	area := rect{X: 10, Y: 0, W: 200, H: 100}
	regions := spreadSlots(area, 2)
	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(regions))
	}
	if regions[0].X != 110 || regions[1].X != 10 {
		t.Errorf("First slot should be the right half, got %+v", regions)
	}
	if got := spreadSlots(area, 1); len(got) != 1 || got[0] != area {
		t.Errorf("Single slot should fill the area, got %+v", got)
	}
}

func TestCalculateHorizontalPosition(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		maxW     float64
		scaledW  float64
		align    string
		expected float64
	}{
		{"Left align", 10, 100, 50, "left", 10},
		{"Right align", 10, 100, 50, "right", 60},
		{"Center align", 10, 100, 50, "center", 35},
		{"Default (center) align", 0, 200, 100, "unknown", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := horizontalPosition(rect{X: tt.x, W: tt.maxW}, tt.scaledW, tt.align)
			if result != tt.expected {
				t.Errorf("Expected %.1f, got %.1f", tt.expected, result)
			}
		})
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name          string
		iw, ih        int
		maxW, maxH    int
		upscale       bool
		expectedScale float64
	}{
		{"Shrink to height", 1000, 2000, 500, 500, false, 0.25},
		{"Small image keeps size", 100, 100, 500, 500, false, 1},
		{"Small image upscaled", 100, 100, 500, 400, true, 4},
		{"Degenerate", 0, 100, 500, 500, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitScale(tt.iw, tt.ih, tt.maxW, tt.maxH, tt.upscale); got != tt.expectedScale {
				t.Errorf("fitScale() = %v, want %v", got, tt.expectedScale)
			}
		})
	}
}

func TestFrameSnapshotEquals(t *testing.T) {
	a := &frameSnapshot{Cursor: 2, Expansion: true}
	b := &frameSnapshot{Cursor: 2, Expansion: true}
	if !a.Equals(b) {
		t.Error("Identical snapshots should be equal")
	}
	b.Cursor = 4
	if a.Equals(b) {
		t.Error("Different cursors should not be equal")
	}
	var none *frameSnapshot
	if a.Equals(none) || none.Equals(a) {
		t.Error("A nil snapshot never matches")
	}
}
