package modes

import (
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"showreel/internal/ui/input/types"
)

// PromptMode is a one-line prompt over the shared text input. Runes the
// accept filter rejects never reach the input, and submitting an empty
// prompt cancels it.
type PromptMode struct {
	mode      types.Mode
	name      string
	prompt    string
	accept    func(rune) bool
	textInput *textinput.Model
}

func NewPromptMode(mode types.Mode, name, prompt string, accept func(rune) bool, ti *textinput.Model) PromptMode {
	return PromptMode{
		mode:      mode,
		name:      name,
		prompt:    prompt,
		accept:    accept,
		textInput: ti,
	}
}

func (m PromptMode) Name() string {
	return m.name
}

// Prompt returns the label shown before the input
func (m PromptMode) Prompt() string {
	return m.prompt
}

func (m PromptMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Reset()
		m.textInput.Focus()
		m.textInput.Prompt = "" // drawn by the popup
	}
	return nil
}

func (m PromptMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	return nil
}

func (m PromptMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc:
		return m.cancel(), true
	case tea.KeyEnter:
		if m.value() == "" {
			return m.cancel(), true
		}
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case tea.KeyRunes, tea.KeySpace:
		if m.accept != nil {
			for _, r := range msg.Runes {
				if !m.accept(r) {
					return nil, true
				}
			}
		}
	}
	// editing keys and accepted runes go to the text input
	return nil, false
}

func (m PromptMode) cancel() []types.Action {
	return []types.Action{
		types.CancelTextAction{},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}
}

func (m PromptMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}

func isDigit(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsDigit(r)
}
