package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

type loadingKind int

const (
	loadingScripts loadingKind = iota
	loadingBundle
)

// loadingModal blocks input while a generation is in flight.
type loadingModal struct {
	spin   spinner.Model
	width  int
	height int
	box    lipglossv2.Style
}

func newLoadingModal() *loadingModal {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := &loadingModal{spin: sp, width: 52, height: 7}
	m.box = lipglossv2.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))
	return m
}

func (m *loadingModal) tick() tea.Cmd { return m.spin.Tick }

func (m *loadingModal) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return cmd
}

func loadingCopy(kind loadingKind, count int) string {
	if kind == loadingBundle {
		return "Building your social media bundle: voice-over, feed post, carousel and threads."
	}
	return fmt.Sprintf("Crafting %d viral script variations for you. Hang tight.", count)
}

func (m *loadingModal) view(s styles, kind loadingKind, count int) string {
	body := m.spin.View() + " " + s.title.Render("Generating") + "\n\n" + loadingCopy(kind, count)
	return m.box.Render(body)
}
