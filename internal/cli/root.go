package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/viralscript/internal/config"
	"github.com/mithrel/viralscript/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// skipApp marks commands that run without building the app (no db, no logger).
const skipApp = "viralscript/skip-app"

// Execute builds the root command and runs it with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	var verbose bool
	var envFile string

	cmd := &cobra.Command{
		Use:           "viralscript",
		Short:         "Generate short-video scripts and social media bundles for a product link",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipApp] == "true" {
				return nil
			}
			// A missing .env is fine; a broken one is not.
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if verbose {
				v.Set("verbose", true)
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			app, err := wire.BuildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			closeAfterRun(cmd, app)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file consulted for API keys")

	cmd.AddCommand(newTUICmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newBundleCmd())
	cmd.AddCommand(newKeyCmd())
	cmd.AddCommand(newThemeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// closeAfterRun releases app once cmd's run function returns, error or not.
// Post-run hooks are skipped on error, so they cannot do this.
func closeAfterRun(cmd *cobra.Command, app *wire.App) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			defer func() { _ = app.Close() }()
			return run(c, args)
		}
		return
	}
	if run := cmd.Run; run != nil {
		cmd.Run = func(c *cobra.Command, args []string) {
			defer func() { _ = app.Close() }()
			run(c, args)
		}
	}
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}
