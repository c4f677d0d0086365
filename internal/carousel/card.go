package carousel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"showreel/internal/domain"
)

// ItemRenderer draws one item into a cell of the given size. The carousel
// measures the first rendered cell to size its track.
type ItemRenderer interface {
	RenderItem(item domain.Item, width, height int) string
}

// ItemRendererFunc adapts a function to ItemRenderer
type ItemRendererFunc func(item domain.Item, width, height int) string

func (f ItemRendererFunc) RenderItem(item domain.Item, width, height int) string {
	return f(item, width, height)
}

// CardRenderer draws items as bordered text cards
type CardRenderer struct {
	Border lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
}

// NewCardRenderer returns the default card look
func NewCardRenderer() *CardRenderer {
	return &CardRenderer{
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// RenderItem draws item as a card exactly width x height cells including
// the border
func (r *CardRenderer) RenderItem(item domain.Item, width, height int) string {
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	lines := []string{r.Title.Render(runewidth.Truncate(item.Title, innerW, "…"))}
	for _, l := range wrap(item.Body, innerW) {
		if len(lines) >= innerH {
			break
		}
		lines = append(lines, r.Body.Render(l))
	}

	return r.Border.
		Width(innerW).
		Height(innerH).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// wrap breaks s into lines no wider than width cells
func wrap(s string, width int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for runewidth.StringWidth(word) > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					break
				}
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, head)
				word = word[len(head):]
			}
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
