package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/viralscript/pkg/api"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(api.ThemeDark), string(api.ThemeLight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if len(args) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.Theme(cmd.Context()))
				return nil
			}
			t, ok := api.ParseTheme(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q (want dark or light)", args[0])
			}
			if err := app.SaveTheme(cmd.Context(), t); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", t)
			return nil
		},
	}
}
