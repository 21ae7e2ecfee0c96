package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"quit", []string{"KeyQ"}, []string{}, "Quit application"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"page_indicator", []string{"KeyI"}, []string{}, "Show/hide the page indicator"},
	{"escape", []string{"Escape"}, []string{}, "Leave full screen"},
	{"page_left", []string{"ArrowLeft"}, []string{}, "Turn toward the left"},
	{"page_right", []string{"ArrowRight"}, []string{}, "Turn toward the right"},
	{"next", []string{"Space", "KeyN"}, []string{"WheelDown", "Forward"}, "Next page in reading order"},
	{"previous", []string{"Backspace", "KeyP"}, []string{"WheelUp", "Back"}, "Previous page in reading order"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first page"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last page"},
	{"toggle_expansion", []string{"KeyE"}, []string{"MiddleClick"}, "Toggle expanded layout"},
	{"fullscreen", []string{"Enter", "KeyF"}, []string{}, "Toggle full screen"},
	{"toggle_slider", []string{"KeyM"}, []string{}, "Show/hide the move slider"},
	{"toggle_thumbnails", []string{"KeyT"}, []string{"RightClick"}, "Show/hide thumbnails"},
	{"toggle_chrome", []string{"KeyC"}, []string{}, "Show/hide controls"},
	{"toggle_reading_direction", []string{"Shift+KeyB"}, []string{"Ctrl+MiddleClick"}, "Toggle reading direction (RTL ↔ LTR)"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{"Alt+MiddleClick"}, "Cycle sort method (Natural/Simple/Entry)"},
}

// actionIndex maps action names to their definitions
var actionIndex = func() map[string]ActionDefinition {
	m := make(map[string]ActionDefinition, len(actionDefinitions))
	for _, a := range actionDefinitions {
		m[a.Name] = a
	}
	return m
}()

// ActionExecutor provides centralized action execution logic shared by the
// keyboard and mouse binding managers
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "quit":
		inputActions.Quit()
	case "help":
		inputActions.ToggleHelp()
	case "page_indicator":
		inputActions.TogglePageIndicator()
	case "escape":
		inputActions.Escape()
	case "page_left":
		inputActions.PageLeft()
	case "page_right":
		inputActions.PageRight()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpFirst()
	case "jump_last":
		inputActions.JumpLast()
	case "toggle_expansion":
		inputActions.ToggleExpansion()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "toggle_slider":
		inputActions.ToggleSlider()
	case "toggle_thumbnails":
		inputActions.ToggleThumbnails()
	case "toggle_chrome":
		inputActions.ToggleChrome()
	case "toggle_reading_direction":
		inputActions.ToggleReadingDirection()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the ActionExecutor used by the binding managers
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
