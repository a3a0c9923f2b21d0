package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// keyModal is the credential gate: a masked input over a dimmed background.
type keyModal struct {
	input  textinput.Model
	width  int
	height int
	padX   int
	padY   int
	box    lipglossv2.Style
}

func newKeyModal(termW, termH int) *keyModal {
	m := &keyModal{padX: 2, padY: 1}
	ti := textinput.New()
	ti.Prompt = "API key: "
	ti.Placeholder = "paste your key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 512
	ti.Focus()
	m.input = ti
	m.resizeForTerm(termW, termH)
	return m
}

func (m *keyModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.6)
	if termW < 80 {
		w = termW - 4
	}
	if w < 46 {
		w = max(42, termW-2)
	}
	if w > 80 {
		w = 80
	}
	h := 12
	if termH < 14 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))
	m.input.Width = max(10, w-2-m.padX*2-len(m.input.Prompt)-1)
}

func (m *keyModal) value() string { return m.input.Value() }

func (m *keyModal) reset() {
	m.input.SetValue("")
	m.input.Focus()
}

func (m *keyModal) update(msg tea.Msg) (*keyModal, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resizeForTerm(x.Width, x.Height)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(x)
		return m, cmd
	}
	return m, nil
}

func (m *keyModal) view(s styles, gateErr string) string {
	var b strings.Builder
	b.WriteString(s.title.Render("Viral Script Generator"))
	b.WriteString("\n\n")
	b.WriteString("An API key is required to generate scripts.\n")
	b.WriteString(s.muted.Render("Use a key from a project with billing enabled."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if gateErr != "" {
		b.WriteString("\n\n")
		b.WriteString(s.errorBox.Render(gateErr))
	}
	b.WriteString("\n\n")
	b.WriteString(s.footer.Render("enter=save • ctrl+c=quit"))
	return m.box.Render(b.String())
}
