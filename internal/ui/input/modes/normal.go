package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"showreel/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return []types.Action{types.NavigateAction{Direction: "next"}}, true

	case key.Matches(msg, m.keys.Prev):
		return []types.Action{types.NavigateAction{Direction: "prev"}}, true

	case key.Matches(msg, m.keys.NextSlide):
		if ctx.TotalSlides() == 0 {
			return nil, true
		}
		return []types.Action{types.SlideAction{Direction: "next"}}, true

	case key.Matches(msg, m.keys.PrevSlide):
		if ctx.TotalSlides() == 0 {
			return nil, true
		}
		return []types.Action{types.SlideAction{Direction: "prev"}}, true

	case key.Matches(msg, m.keys.Pause):
		if ctx.TotalSlides() == 0 {
			return nil, true
		}
		return []types.Action{types.TogglePauseAction{}}, true

	case key.Matches(msg, m.keys.GoTo):
		// nothing to jump between with a single item
		if ctx.TotalItems() < 2 {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeGoTo}}, true

	case key.Matches(msg, m.keys.Rescan):
		return []types.Action{types.RescanAction{}}, true

	case key.Matches(msg, m.keys.Sort):
		return []types.Action{types.CycleSortAction{}}, true

	case key.Matches(msg, m.keys.Status):
		return []types.Action{types.ToggleStatusAction{}}, true

	case key.Matches(msg, m.keys.Save):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmSave}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
