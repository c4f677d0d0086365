package types

// Navigation actions
type NavigateAction struct {
	Direction string // "next" or "prev"
}

func (a NavigateAction) Type() string { return "navigate" }

// SlideAction moves the background slideshow
type SlideAction struct {
	Direction string // "next" or "prev"
}

func (a SlideAction) Type() string { return "slide" }

type TogglePauseAction struct{}

func (a TogglePauseAction) Type() string { return "toggle_pause" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type RescanAction struct{}

func (a RescanAction) Type() string { return "rescan" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type ToggleStatusAction struct{}

func (a ToggleStatusAction) Type() string { return "toggle_status" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type SaveConfigAction struct{}

func (a SaveConfigAction) Type() string { return "save_config" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
