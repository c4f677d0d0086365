package modes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"

	"showreel/internal/ui/input/types"
)

// GoToMode reads a 1-based item number. Only digits are accepted and the
// input is capped at the width of the highest item number.
type GoToMode struct {
	PromptMode
}

func NewGoToMode(ti *textinput.Model) *GoToMode {
	return &GoToMode{
		PromptMode: NewPromptMode(types.ModeGoTo, "goto", "Go to item: ", isDigit, ti),
	}
}

func (m *GoToMode) Enter(ctx types.Context) []types.Action {
	m.PromptMode.Enter(ctx)
	if m.textInput != nil {
		last := strconv.Itoa(ctx.TotalItems())
		m.textInput.CharLimit = len(last)
		m.textInput.Placeholder = "1.." + last
	}
	return nil
}
