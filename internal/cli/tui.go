package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/viralscript/internal/config"
	"github.com/mithrel/viralscript/internal/present/tui"
	"github.com/mithrel/viralscript/pkg/api"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("tui needs a terminal; use `viralscript generate` for scripted output")
			}
			app := getApp(cmd)
			ctx := cmd.Context()
			return tui.Run(ctx, tui.Deps{
				Controller: app.Controller(),
				Generator:  app.Generator,
				Defaults:   config.FormDefaults(app.Cfg),
				Theme:      app.Theme(ctx),
				SaveTheme:  func(t api.Theme) error { return app.SaveTheme(ctx, t) },
				Log:        app.Log.Named("tui"),
			})
		},
	}
}
