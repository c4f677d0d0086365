package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"showreel/internal/ui/input/types"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections(keys types.KeyMap) []helpSection {
	return []helpSection{
		{"Carousel", []key.Binding{keys.Next, keys.Prev, keys.GoTo}},
		{"Background", []key.Binding{keys.NextSlide, keys.PrevSlide, keys.Pause}},
		{"Library", []key.Binding{keys.Rescan, keys.Sort, keys.Status, keys.Save}},
		{"Other", []key.Binding{keys.Help, keys.Quit}},
	}
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain(keys types.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("Showreel Help"))
	help.WriteString("\n")

	width := 0
	for _, section := range helpSections(keys) {
		for _, b := range section.bindings {
			width = max(width, lipgloss.Width(b.Help().Key))
		}
	}

	for i, section := range helpSections(keys) {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			if !b.Enabled() {
				continue
			}
			k := b.Help().Key
			pad := strings.Repeat(" ", width-lipgloss.Width(k))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(k), pad, descStyle.Render(b.Help().Desc)))
		}
	}

	help.WriteString("\n")
	note := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(note.Render("  Hovering the carousel with the mouse pauses it; clicking stops auto-advance."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	return root.Run()
}

// configureVimKeyBindings adds j/k/g/G/q on top of ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	extra := map[string][]string{
		"down":   {"j"},
		"up":     {"k"},
		"top":    {"g"},
		"bottom": {"G"},
		"exit":   {"q"},
	}
	for action, keys := range extra {
		config.Keybind[action] = appendMissing(config.Keybind[action], keys...)
	}
}

func appendMissing(list []string, keys ...string) []string {
	for _, k := range keys {
		found := false
		for _, existing := range list {
			if existing == k {
				found = true
				break
			}
		}
		if !found {
			list = append(list, k)
		}
	}
	return list
}
