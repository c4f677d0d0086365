package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[0m"

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers popupContent over a dimmed copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	return Overlay(desaturateANSI(mainContent), styledPopup, x, y)
}

// Overlay draws top over base with its top-left corner at column x, row y.
// Cells of base outside top's bounding box are kept, styles included.
func Overlay(base, top string, x, y int) string {
	if top == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	for len(baseLines) < y+len(topLines) {
		baseLines = append(baseLines, "")
	}

	for i, tl := range topLines {
		row := y + i
		if row < 0 {
			continue
		}
		bl := baseLines[row]
		bw := ansi.StringWidth(bl)
		if bw < x {
			bl += strings.Repeat(" ", x-bw)
			bw = x
		}
		tw := ansi.StringWidth(tl)

		var b strings.Builder
		b.WriteString(ansi.Cut(bl, 0, x))
		b.WriteString(resetStyle)
		b.WriteString(tl)
		b.WriteString(resetStyle)
		if bw > x+tw {
			b.WriteString(ansi.Cut(bl, x+tw, bw))
		}
		baseLines[row] = b.String()
	}
	return strings.Join(baseLines, "\n")
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	for i, l := range lines {
		lines[i] = dim.Render(l)
	}
	return strings.Join(lines, "\n")
}
