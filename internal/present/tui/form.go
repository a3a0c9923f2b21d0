package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/viralscript/pkg/api"
)

const (
	fieldURL = iota
	fieldStyle
	fieldLength
	fieldHook
	fieldCount
	numFields
)

// scriptForm collects ScriptFormValues. The URL is free text; the enums and
// count are pickers changed with left/right.
type scriptForm struct {
	url    textinput.Model
	style  api.LanguageStyle
	length api.ContentLength
	hook   api.HookType
	count  int
	focus  int
	err    string
}

func newScriptForm(defaults api.ScriptFormValues) scriptForm {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "https://shopee.co.id/..."
	ti.CharLimit = 2048
	ti.SetValue(defaults.ProductURL)
	f := scriptForm{
		url:    ti,
		style:  defaults.Style,
		length: defaults.Length,
		hook:   defaults.Hook,
		count:  defaults.ScriptCount,
	}
	f.setFocus(fieldURL)
	return f
}

func (f *scriptForm) setFocus(i int) {
	f.focus = (i + numFields) % numFields
	if f.focus == fieldURL {
		f.url.Focus()
	} else {
		f.url.Blur()
	}
}

func (f scriptForm) values() api.ScriptFormValues {
	return api.ScriptFormValues{
		ProductURL:  strings.TrimSpace(f.url.Value()),
		Style:       f.style,
		Length:      f.length,
		Hook:        f.hook,
		ScriptCount: f.count,
	}
}

func (f *scriptForm) adjust(delta int) {
	switch f.focus {
	case fieldStyle:
		f.style = cycle(api.LanguageStyles(), f.style, delta)
	case fieldLength:
		f.length = cycle(api.ContentLengths(), f.length, delta)
	case fieldHook:
		f.hook = cycle(api.HookTypes(), f.hook, delta)
	case fieldCount:
		f.count += delta
		if f.count < api.MinScriptCount {
			f.count = api.MinScriptCount
		}
		if f.count > api.MaxScriptCount {
			f.count = api.MaxScriptCount
		}
	}
}

// update handles navigation keys and forwards the rest to the URL input.
func (f scriptForm) update(msg tea.KeyMsg) (scriptForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return f, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return f, nil
	case "left":
		if f.focus != fieldURL {
			f.adjust(-1)
			return f, nil
		}
	case "right":
		if f.focus != fieldURL {
			f.adjust(1)
			return f, nil
		}
	}
	if f.focus != fieldURL {
		return f, nil
	}
	var cmd tea.Cmd
	f.url, cmd = f.url.Update(msg)
	f.err = ""
	return f, cmd
}

func (f scriptForm) view(s styles, width int, active bool) string {
	row := func(i int, label, value string) string {
		ls := s.label
		marker := "  "
		if active && f.focus == i {
			ls = s.labelSel
			marker = "› "
		}
		return fmt.Sprintf("%s%s %s", marker, ls.Render(fmt.Sprintf("%-14s", label)), value)
	}
	picker := func(i int, v string) string {
		if active && f.focus == i {
			return "◂ " + v + " ▸"
		}
		return v
	}
	var b strings.Builder
	b.WriteString(s.title.Render("Script Generator"))
	b.WriteString("\n\n")
	b.WriteString(row(fieldURL, "Product link", f.url.View()))
	b.WriteString("\n")
	b.WriteString(row(fieldStyle, "Style", picker(fieldStyle, string(f.style))))
	b.WriteString("\n")
	b.WriteString(row(fieldLength, "Length", picker(fieldLength, string(f.length))))
	b.WriteString("\n")
	b.WriteString(row(fieldHook, "Hook", picker(fieldHook, string(f.hook))))
	b.WriteString("\n")
	b.WriteString(row(fieldCount, "Variations", picker(fieldCount, fmt.Sprintf("%d", f.count))))
	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(s.errorBox.Render(f.err))
	}
	return s.card.Width(max(30, width-2)).Render(b.String())
}
