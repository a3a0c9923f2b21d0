package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/viralscript/internal/config"
	"github.com/mithrel/viralscript/internal/editor"
	"github.com/mithrel/viralscript/internal/generate"
	"github.com/mithrel/viralscript/internal/present/format"
	"github.com/mithrel/viralscript/pkg/api"
)

func newGenerateCmd() *cobra.Command {
	var style, length, hook, outputMode string
	var count int
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "generate <product-url>",
		Short: "Generate script variations for a product link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := outputOptions(app, cmd, outputMode, noHeaders)
			if err != nil {
				return err
			}
			form := config.FormDefaults(app.Cfg)
			form.ProductURL = args[0]
			if cmd.Flags().Changed("style") {
				if form.Style, err = api.ParseLanguageStyle(style); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("length") {
				if form.Length, err = api.ParseContentLength(length); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("hook") {
				if form.Hook, err = api.ParseHookType(hook); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("count") {
				form.ScriptCount = count
			}

			ctrl := app.Controller()
			ctrl.Load()
			scripts, err := ctrl.GenerateScripts(cmd.Context(), form)
			if err != nil {
				return withKeyHint(err)
			}
			return renderScripts(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), scripts, opts)
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "language style (fuzzy matched)")
	cmd.Flags().StringVar(&length, "length", "", "content length (fuzzy matched)")
	cmd.Flags().StringVar(&hook, "hook", "", "hook type (fuzzy matched)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, fmt.Sprintf("number of variations (%d-%d)", api.MinScriptCount, api.MaxScriptCount))
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", "output mode: plain|pretty|json|ndjson|yaml")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide the index header (plain)")
	registerFormCompletion(cmd)
	registerOutputCompletion(cmd)
	return cmd
}

func newBundleCmd() *cobra.Command {
	var from, outputMode string
	var index int
	var edit bool
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Turn a generated script into a social media bundle",
		Long: "Reads the JSON written by `generate -o json` (an array or a single script)\n" +
			"and builds reels, feed, carousel and threads content from one script.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := outputOptions(app, cmd, outputMode, false)
			if err != nil {
				return err
			}
			scripts, err := readScriptsFrom(cmd.InOrStdin(), from)
			if err != nil {
				return err
			}
			if index < 1 || index > len(scripts) {
				return fmt.Errorf("--index %d out of range (1-%d)", index, len(scripts))
			}

			script := scripts[index-1]
			if edit {
				if script, _, err = editor.EditScript(script); err != nil {
					return fmt.Errorf("edit script: %w", err)
				}
			}

			ctrl := app.Controller()
			ctrl.Load()
			bundle, err := ctrl.ProcessBundle(cmd.Context(), script)
			if err != nil {
				return withKeyHint(err)
			}
			return renderBundle(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), *bundle, opts)
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", "-", "file with generated scripts, or - for stdin")
	cmd.Flags().IntVarP(&index, "index", "i", 1, "1-based script to use")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "revise the script in $EDITOR before building the bundle")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", "output mode: plain|pretty|json|yaml")
	registerOutputCompletion(cmd)
	return cmd
}

func readScriptsFrom(stdin io.Reader, from string) ([]api.GeneratedScript, error) {
	if from == "" || from == "-" {
		return format.ReadScripts(stdin)
	}
	f, err := os.Open(from)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return format.ReadScripts(f)
}

// withKeyHint points the user at `key set` when the failure is about the key.
func withKeyHint(err error) error {
	if generate.IsKind(err, generate.KindCredential) {
		return fmt.Errorf("%w\nrun `viralscript key set` or export VIRALSCRIPT_API_KEY", err)
	}
	return err
}
