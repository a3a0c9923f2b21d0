package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/viralscript/internal/keys"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the API key",
	}
	cmd.AddCommand(newKeySetCmd())
	cmd.AddCommand(newKeyClearCmd())
	cmd.AddCommand(newKeyStatusCmd())
	return cmd
}

func newKeySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [value]",
		Short: "Store an API key (prompts when no value is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			value := ""
			if len(args) == 1 {
				value = args[0]
			} else {
				var err error
				value, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}
			if err := app.Creds.Save(value); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API key saved (%s backend).\n", app.Backend)
			return nil
		},
	}
}

// readSecret reads a hidden line from a terminal, or the first line of a pipe.
func readSecret(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(prompt, "API key: ")
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newKeyClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if err := confirmClear(yes); err != nil {
				return err
			}
			if err := app.Creds.Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stored API key removed.")
			if app.Creds.Has() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "An environment key is still set and will be used.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func confirmClear(yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Remove the stored API key?").
				Description("You will be asked for a key before the next generation.").
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("aborted")
	}
	return nil
}

func newKeyStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is available and where it comes from",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			out := cmd.OutOrStdout()
			key, origin, ok := app.Creds.Resolve()
			if !ok {
				_, _ = fmt.Fprintf(out, "No API key (backend: %s).\n", app.Backend)
				return nil
			}
			_, _ = fmt.Fprintf(out, "API key %s from %s (backend: %s).\n", maskKey(key), origin, app.Backend)
			if origin == keys.OriginEnv {
				_, _ = fmt.Fprintln(out, "A stored key would take precedence.")
			}
			return nil
		},
	}
}

func maskKey(k string) string {
	r := []rune(k)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-8) + string(r[len(r)-4:])
}
