// Package tui is the interactive front end: a credential gate, the script
// form, result cards and the social media bundle view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mithrel/viralscript/internal/workflow"
	"github.com/mithrel/viralscript/pkg/api"
)

// Deps wires the model to the rest of the application.
type Deps struct {
	Controller *workflow.Controller
	Generator  workflow.Generator
	Defaults   api.ScriptFormValues
	Theme      api.Theme
	SaveTheme  func(api.Theme) error
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	Log       *zap.Logger
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, d Deps) error {
	m := newModel(ctx, d)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type focusArea int

const (
	focusForm focusArea = iota
	focusResults
)

// viewState is what the results renderers need from the model.
type viewState struct {
	scripts    []api.GeneratedScript
	bundle     *api.SocialMediaBundle
	requested  int
	selScript  int
	selSection int
}

type model struct {
	ctx       context.Context
	ctrl      *workflow.Controller
	gen       workflow.Generator
	log       *zap.Logger
	saveTheme func(api.Theme) error
	clip      func(string) error

	theme   api.Theme
	st      styles
	form    scriptForm
	focus   focusArea
	key     *keyModal
	loading *loadingModal
	vp      viewport.Model
	offsets []int

	selScript  int
	selSection int
	width      int
	height     int
	status     string
}

func newModel(ctx context.Context, d Deps) model {
	theme := d.Theme
	if _, ok := api.ParseTheme(string(theme)); !ok {
		theme = api.ThemeDark
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	clip := d.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	defaults := d.Defaults
	if defaults.ScriptCount == 0 {
		defaults = api.DefaultForm()
	}
	d.Controller.Load()
	m := model{
		ctx:       ctx,
		ctrl:      d.Controller,
		gen:       d.Generator,
		log:       log,
		saveTheme: d.SaveTheme,
		clip:      clip,
		theme:     theme,
		st:        newStyles(theme),
		form:      newScriptForm(defaults),
		key:       newKeyModal(80, 24),
		loading:   newLoadingModal(),
		vp:        viewport.New(80, 10),
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) state() workflow.State { return m.ctrl.State() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.key.resizeForTerm(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		st := m.state()
		if st.GeneratingScripts || st.GeneratingBundle {
			return m, m.loading.update(msg)
		}
		return m, nil

	case scriptsResultMsg:
		m.ctrl.FinishScripts(msg.scripts, msg.err)
		st := m.state()
		if msg.err != nil {
			m.status = ""
			if st.CredentialGateOpen {
				m.key.reset()
			}
		} else {
			m.status = fmt.Sprintf("%d scripts in %s", len(st.Scripts), msg.dur.Round(time.Millisecond))
		}
		if st.ResultsFocused {
			m.focus = focusResults
			m.selScript = 0
			m.ctrl.SetView(workflow.ViewScripts)
			m.ctrl.ClearFocus()
		}
		m.refresh()
		m.vp.GotoTop()
		return m, nil

	case bundleResultMsg:
		m.ctrl.FinishBundle(msg.bundle, msg.err)
		if msg.err == nil {
			m.selSection = sectionReels
			m.status = fmt.Sprintf("bundle ready in %s", msg.dur.Round(time.Millisecond))
			m.vp.GotoTop()
		} else if m.state().CredentialGateOpen {
			m.key.reset()
		}
		m.refresh()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.what
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warn("save theme", zap.Error(msg.err))
			m.status = "theme not saved: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	st := m.state()
	if st.CredentialGateOpen {
		if msg.Type == tea.KeyEnter {
			if err := m.ctrl.SubmitCredential(m.key.value()); err == nil {
				m.key.reset()
				m.status = "API key saved"
			}
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.key, cmd = m.key.update(msg)
		return m, cmd
	}
	// the loading overlay swallows input until the call returns
	if st.GeneratingScripts || st.GeneratingBundle {
		return m, nil
	}
	if m.focus == focusForm {
		return m.handleFormKey(msg)
	}
	return m.handleResultsKey(msg, st)
}

func (m model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusResults
		m.refresh()
		return m, nil
	case "enter":
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	m.refresh()
	return m, cmd
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	form := m.form.values()
	if err := m.ctrl.BeginScripts(form); err != nil {
		var ve *api.ValidationError
		switch {
		case errors.As(err, &ve):
			m.form.err = ve.Message
		case errors.Is(err, workflow.ErrBusy):
			m.status = err.Error()
		default:
			m.form.err = err.Error()
		}
		m.refresh()
		return m, nil
	}
	m.form.err = ""
	m.status = ""
	m.refresh()
	return m, tea.Batch(m.loading.tick(), generateScriptsCmd(m.ctx, m.gen, form))
}

func (m model) handleResultsKey(msg tea.KeyMsg, st workflow.State) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "i", "/", "esc":
		m.focus = focusForm
		m.form.setFocus(fieldURL)
	case "tab":
		if st.ActiveView == workflow.ViewScripts {
			m.ctrl.SetView(workflow.ViewBundle)
		} else {
			m.ctrl.SetView(workflow.ViewScripts)
		}
		m.vp.GotoTop()
	case "1":
		m.ctrl.SetView(workflow.ViewScripts)
		m.vp.GotoTop()
	case "2":
		m.ctrl.SetView(workflow.ViewBundle)
		m.vp.GotoTop()
	case "up", "k":
		m.moveSelection(st, -1)
	case "down", "j":
		m.moveSelection(st, 1)
	case "enter", "b":
		if st.ActiveView != workflow.ViewScripts || len(st.Scripts) == 0 {
			return m, nil
		}
		script := st.Scripts[min(m.selScript, len(st.Scripts)-1)]
		if err := m.ctrl.BeginBundle(script); err != nil {
			m.status = err.Error()
			m.refresh()
			return m, nil
		}
		m.status = ""
		m.refresh()
		return m, tea.Batch(m.loading.tick(), processBundleCmd(m.ctx, m.gen, script))
	case "y":
		return m, m.copySelected(st)
	case "t":
		m.theme = m.theme.Toggle()
		m.st = newStyles(m.theme)
		m.refresh()
		return m, saveThemeCmd(m.saveTheme, m.theme)
	case "K":
		if err := m.ctrl.ResetCredential(); err != nil {
			m.log.Warn("reset credential", zap.Error(err))
		}
		m.key.reset()
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m *model) moveSelection(st workflow.State, delta int) {
	if st.ActiveView == workflow.ViewScripts {
		if len(st.Scripts) == 0 {
			return
		}
		m.selScript = min(max(0, m.selScript+delta), len(st.Scripts)-1)
		m.scrollTo(m.selScript)
		return
	}
	if st.Bundle == nil {
		return
	}
	m.selSection = min(max(0, m.selSection+delta), numSections-1)
	m.scrollTo(m.selSection)
}

func (m *model) scrollTo(idx int) {
	if idx >= 0 && idx < len(m.offsets) {
		m.vp.SetYOffset(m.offsets[idx])
	}
}

func (m model) copySelected(st workflow.State) tea.Cmd {
	if st.ActiveView == workflow.ViewBundle {
		if st.Bundle == nil {
			return nil
		}
		return copyCmd(m.clip, strings.ToLower(sectionNames[m.selSection]), bundleClipboardText(*st.Bundle, m.selSection))
	}
	if len(st.Scripts) == 0 {
		return nil
	}
	idx := min(m.selScript, len(st.Scripts)-1)
	return copyCmd(m.clip, fmt.Sprintf("script %d", idx+1), scriptClipboardText(st.Scripts[idx]))
}

func (m model) viewState(st workflow.State) viewState {
	return viewState{
		scripts:    st.Scripts,
		bundle:     st.Bundle,
		requested:  st.RequestedCount,
		selScript:  m.selScript,
		selSection: m.selSection,
	}
}

func (m model) header(st workflow.State) string {
	tab := func(v workflow.View, label string) string {
		if st.ActiveView == v {
			return m.st.tabSel.Render(label)
		}
		return m.st.tab.Render(label)
	}
	left := m.st.title.Render("✦ viralscript") + "  " + tab(workflow.ViewScripts, "1 Scripts") + tab(workflow.ViewBundle, "2 Social bundle")
	right := m.st.muted.Render(string(m.theme))
	space := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", space) + right
}

func (m model) footer(st workflow.State) string {
	var keys string
	switch {
	case m.focus == focusForm:
		keys = "tab/↑↓ field • ←/→ change • enter generate • esc results • ctrl+c quit"
	case st.ActiveView == workflow.ViewScripts:
		keys = "↑↓ select • enter bundle • y copy • tab view • i form • t theme • K key • q quit"
	default:
		keys = "↑↓ section • y copy • tab view • i form • t theme • K key • q quit"
	}
	right := m.status
	space := max(1, m.width-lipgloss.Width(keys)-lipgloss.Width(right))
	return m.st.footer.Render(keys + strings.Repeat(" ", space) + right)
}

func (m model) errorLine(st workflow.State) string {
	if st.LastError == "" {
		return ""
	}
	return m.st.errorBox.Render(st.LastError)
}

// refresh rebuilds the results content and sizes the viewport to what the
// header, form and footer leave over.
func (m *model) refresh() {
	st := m.state()
	vs := m.viewState(st)
	var content string
	if st.ActiveView == workflow.ViewBundle {
		content, m.offsets = m.st.bundleView(vs, m.width)
	} else {
		content, m.offsets = m.st.scriptsView(vs, m.width)
	}
	used := lipgloss.Height(m.header(st)) + lipgloss.Height(m.form.view(m.st, m.width, m.focus == focusForm)) + lipgloss.Height(m.footer(st))
	if e := m.errorLine(st); e != "" {
		used += lipgloss.Height(e)
	}
	m.vp.Width = m.width
	m.vp.Height = max(3, m.height-used)
	m.vp.SetContent(content)
}

func (m model) View() string {
	st := m.state()
	parts := []string{
		m.header(st),
		m.form.view(m.st, m.width, m.focus == focusForm),
	}
	if e := m.errorLine(st); e != "" {
		parts = append(parts, e)
	}
	parts = append(parts, m.vp.View(), m.footer(st))
	base := strings.Join(parts, "\n")

	switch {
	case st.CredentialGateOpen:
		fg := m.key.view(m.st, st.GateError)
		return m.renderOverlay(base, fg, lipgloss.Width(fg), lipgloss.Height(fg))
	case st.GeneratingBundle:
		fg := m.loading.view(m.st, loadingBundle, st.RequestedCount)
		return m.renderOverlay(base, fg, lipgloss.Width(fg), lipgloss.Height(fg))
	case st.GeneratingScripts:
		fg := m.loading.view(m.st, loadingScripts, st.RequestedCount)
		return m.renderOverlay(base, fg, lipgloss.Width(fg), lipgloss.Height(fg))
	}
	return base
}
