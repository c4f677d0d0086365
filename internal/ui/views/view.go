package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Background string // full-screen slideshow frame
	Carousel   string
	CarouselX  int
	CarouselY  int

	Slide        int // 0-based
	Slides       int
	SlideLoading bool
	SlidePaused  bool
	Spinner      string

	Item        int // 0-based cursor
	Items       int
	AutoStopped bool

	SortMode      string
	StatusMessage string
	StatusError   bool
	ShowStatus    bool

	ShowHelp  bool
	HelpModel help.Model
	Keys      help.KeyMap

	InputMode   string
	InputPrompt string
	TextInput   string

	ReadyMarker bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render composes the background, the carousel and the bottom bars
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return "Loading..."
	}

	screen := state.Background
	if screen == "" {
		screen = blankScreen(state.Width, state.Height)
	}
	screen = Overlay(screen, state.Carousel, state.CarouselX, state.CarouselY)

	var bars []string
	if state.ShowHelp && state.Keys != nil {
		bars = append(bars, state.HelpModel.FullHelpView(state.Keys.FullHelp()))
	} else if state.Keys != nil && state.InputMode == "normal" {
		bars = append(bars, state.HelpModel.ShortHelpView(state.Keys.ShortHelp()))
	}
	if state.ShowStatus {
		bars = append(bars, r.renderStatusBar(state))
	}
	if len(bars) > 0 {
		block := lipgloss.JoinVertical(lipgloss.Left, bars...)
		screen = Overlay(screen, block, 0, state.Height-lipgloss.Height(block))
	}

	switch state.InputMode {
	case "goto":
		popup := r.styles.Prompt.Render(state.InputPrompt) + state.TextInput
		screen = r.popupRender.RenderPopupOverlay(screen, popup, state.Height, state.Width, r.styles.Popup)
	case "confirm-save":
		popup := r.styles.Confirm.Render("Save current settings to the config file? (y/n)")
		screen = r.popupRender.RenderPopupOverlay(screen, popup, state.Height, state.Width, r.styles.Popup)
	}

	if state.ReadyMarker {
		// picked up by the pty test driver
		screen = Overlay(screen, "__READY__", 0, 0)
	}
	return clip(screen, state.Width, state.Height)
}

func (r *Renderer) renderStatusBar(state ViewState) string {
	var parts []string

	if state.Slides > 0 {
		slide := fmt.Sprintf("slide %d/%d", state.Slide+1, state.Slides)
		switch {
		case state.SlideLoading:
			slide = state.Spinner + " " + slide
		case state.SlidePaused:
			slide += " paused"
		}
		parts = append(parts, slide)
	}
	if state.Items > 0 {
		item := fmt.Sprintf("item %d/%d", state.Item+1, state.Items)
		if state.AutoStopped {
			item += " manual"
		}
		parts = append(parts, item)
	}
	if state.SortMode != "" {
		parts = append(parts, "order: "+state.SortMode)
	}

	left := r.styles.StatusKey.Render("showreel")
	body := " " + strings.Join(parts, " · ")
	if state.StatusMessage != "" {
		msgStyle := r.styles.StatusSuccess
		if state.StatusError {
			msgStyle = r.styles.StatusError
		}
		body += "  " + msgStyle.Render(state.StatusMessage)
	}

	line := left + r.styles.Status.Render(body)
	if w := lipgloss.Width(line); w < state.Width {
		line += r.styles.Status.Render(strings.Repeat(" ", state.Width-w))
	}
	return ansi.Truncate(line, state.Width, "…")
}

// clip trims the screen to width x height so overlays never scroll the
// terminal
func clip(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			lines[i] = ansi.Truncate(l, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

func blankScreen(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
