package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/viralscript/internal/workflow"
	"github.com/mithrel/viralscript/pkg/api"
)

// scriptsResultMsg carries a finished script generation back to Update.
type scriptsResultMsg struct {
	scripts []api.GeneratedScript
	err     error
	dur     time.Duration
}

// bundleResultMsg carries a finished bundle generation back to Update.
type bundleResultMsg struct {
	bundle *api.SocialMediaBundle
	err    error
	dur    time.Duration
}

// copyResultMsg reports a clipboard write.
type copyResultMsg struct {
	what string
	err  error
}

// themeSavedMsg reports a persisted theme change.
type themeSavedMsg struct {
	theme api.Theme
	err   error
}

func generateScriptsCmd(ctx context.Context, gen workflow.Generator, form api.ScriptFormValues) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		scripts, err := gen.GenerateScripts(ctx, form)
		return scriptsResultMsg{scripts: scripts, err: err, dur: time.Since(start)}
	}
}

func processBundleCmd(ctx context.Context, gen workflow.Generator, script api.GeneratedScript) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		bundle, err := gen.GenerateBundle(ctx, script)
		return bundleResultMsg{bundle: bundle, err: err, dur: time.Since(start)}
	}
}

func copyCmd(write func(string) error, what, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{what: what, err: write(text)}
	}
}

func saveThemeCmd(save func(api.Theme) error, theme api.Theme) tea.Cmd {
	return func() tea.Msg {
		if save == nil {
			return themeSavedMsg{theme: theme}
		}
		return themeSavedMsg{theme: theme, err: save(theme)}
	}
}
