package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/viralscript/internal/render"
)

// renderContent styles Markdown-lite text for a card of the given inner width.
func (s styles) renderContent(text string, width int) string {
	blocks := render.Render(text)
	lines := make([]string, 0, len(blocks))
	wrap := lipgloss.NewStyle().Width(max(10, width))
	for _, b := range blocks {
		switch b.Kind {
		case render.BlockSpacer:
			lines = append(lines, "")
		case render.BlockHeading:
			lines = append(lines, s.accent(b.Accent).Render(strings.ToUpper(b.Text)))
		case render.BlockQuote:
			lines = append(lines, s.quote.Width(max(10, width-2)).Render(b.Text))
		case render.BlockParagraph:
			var sb strings.Builder
			for _, sp := range b.Spans {
				if sp.Bold {
					sb.WriteString(s.bold.Render(sp.Text))
					continue
				}
				sb.WriteString(sp.Text)
			}
			lines = append(lines, wrap.Render(sb.String()))
		}
	}
	return strings.Join(lines, "\n")
}
