package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"showreel/internal/ui/input/types"
)

// ConfirmMode asks before writing the config file
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "confirm-save"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y", "enter":
		return []types.Action{
			types.SaveConfigAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// swallow everything else while the question is open
	return nil, true
}
