package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/viralscript/internal/render"
	"github.com/mithrel/viralscript/pkg/api"
)

type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	primary lipgloss.Color
	amber   lipgloss.Color
	blue    lipgloss.Color
	green   lipgloss.Color
	danger  lipgloss.Color
}

var (
	darkPalette = palette{
		text: "252", muted: "244", border: "238", primary: "63",
		amber: "214", blue: "75", green: "78", danger: "203",
	}
	lightPalette = palette{
		text: "235", muted: "242", border: "250", primary: "57",
		amber: "130", blue: "25", green: "28", danger: "160",
	}
)

type styles struct {
	p        palette
	title    lipgloss.Style
	muted    lipgloss.Style
	errorBox lipgloss.Style
	card     lipgloss.Style
	cardSel  lipgloss.Style
	tab      lipgloss.Style
	tabSel   lipgloss.Style
	label    lipgloss.Style
	labelSel lipgloss.Style
	quote    lipgloss.Style
	bold     lipgloss.Style
	hashtag  lipgloss.Style
	footer   lipgloss.Style
}

func newStyles(theme api.Theme) styles {
	p := darkPalette
	if theme == api.ThemeLight {
		p = lightPalette
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)
	return styles{
		p:        p,
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		errorBox: lipgloss.NewStyle().Foreground(p.danger).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(p.danger).PaddingLeft(1),
		card:     card,
		cardSel:  card.BorderForeground(p.primary),
		tab:      lipgloss.NewStyle().Foreground(p.muted).Padding(0, 2),
		tabSel:   lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.primary).Padding(0, 2),
		label:    lipgloss.NewStyle().Foreground(p.muted),
		labelSel: lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		quote:    lipgloss.NewStyle().Italic(true).Foreground(p.muted).Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(p.border).PaddingLeft(1),
		bold:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		hashtag:  lipgloss.NewStyle().Foreground(p.blue),
		footer:   lipgloss.NewStyle().Foreground(p.muted),
	}
}

func (s styles) accent(a render.Accent) lipgloss.Style {
	c := s.p.amber
	switch a {
	case render.AccentBlue:
		c = s.p.blue
	case render.AccentGreen:
		c = s.p.green
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
