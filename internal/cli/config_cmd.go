package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/viralscript/internal/config"
	"github.com/mithrel/viralscript/pkg/api"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigDefaultsCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the default config.toml location",
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
			return err
		},
	}
}

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite bool
	var update bool
	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Generate a default config.toml",
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = config.DefaultConfigPath()
			}
			if overwrite && update {
				return fmt.Errorf("choose either --overwrite or --update")
			}
			return writeConfigFile(cmd, out, overwrite, update)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing config (creates a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "merge defaults into existing config (creates a backup)")
	return cmd
}

func writeConfigFile(cmd *cobra.Command, out string, overwrite, update bool) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o700); err != nil {
		return err
	}

	exists := fileExists(out)
	if exists && !overwrite && !update {
		return fmt.Errorf("config already exists at %s; use --overwrite to replace (this will delete your current config) or --update to merge defaults", out)
	}

	content := ""
	if update && exists {
		data, err := os.ReadFile(out)
		if err != nil {
			return err
		}
		updated, changed := config.UpdateTOML(string(data))
		if !changed {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Config already up to date: %s\n", out)
			return nil
		}
		content = updated
	} else {
		content = config.RenderDefaultTOML()
	}

	var backupPath string
	if exists && (overwrite || update) {
		var err error
		backupPath, err = backupConfig(out)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(out, []byte(content), 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	if backupPath != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backup: %s\n", backupPath)
	}
	return nil
}

func backupConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if fileExists(backup) {
		backup = fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	}
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return "", err
	}
	return backup, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newConfigDefaultsCmd() *cobra.Command {
	var out, style, length, hook string
	var count int
	var reset bool
	cmd := &cobra.Command{
		Use:         "defaults",
		Short:       "Write form defaults into the [defaults] section of config.toml",
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = config.DefaultConfigPath()
			}
			existing := ""
			if fileExists(out) {
				data, err := os.ReadFile(out)
				if err != nil {
					return err
				}
				existing = string(data)
			}
			if reset {
				updated, changed := config.DeleteSection(existing, "defaults")
				if !changed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No [defaults] section in %s\n", out)
					return nil
				}
				return writeSection(cmd, out, updated)
			}

			values := map[string]any{}
			if cmd.Flags().Changed("style") {
				v, err := api.ParseLanguageStyle(style)
				if err != nil {
					return err
				}
				values["style"] = string(v)
			}
			if cmd.Flags().Changed("length") {
				v, err := api.ParseContentLength(length)
				if err != nil {
					return err
				}
				values["length"] = string(v)
			}
			if cmd.Flags().Changed("hook") {
				v, err := api.ParseHookType(hook)
				if err != nil {
					return err
				}
				values["hook"] = string(v)
			}
			if cmd.Flags().Changed("count") {
				if count < api.MinScriptCount || count > api.MaxScriptCount {
					return fmt.Errorf("--count must be between %d and %d", api.MinScriptCount, api.MaxScriptCount)
				}
				values["script_count"] = count
			}
			if len(values) == 0 {
				return fmt.Errorf("nothing to set; pass --style, --length, --hook or --count (or --reset)")
			}
			// keep entries of the section that were not overridden
			prev := viper.New()
			prev.SetConfigType("toml")
			if err := prev.ReadConfig(strings.NewReader(existing)); err != nil {
				return fmt.Errorf("parse %s: %w", out, err)
			}
			for k, v := range prev.GetStringMap("defaults") {
				if _, ok := values[k]; !ok {
					values[k] = v
				}
			}
			return writeSection(cmd, out, config.UpsertSection(existing, "defaults", values))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "config.toml to edit")
	cmd.Flags().StringVar(&style, "style", "", "default language style")
	cmd.Flags().StringVar(&length, "length", "", "default content length")
	cmd.Flags().StringVar(&hook, "hook", "", "default hook type")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "default number of variations")
	cmd.Flags().BoolVar(&reset, "reset", false, "remove the [defaults] section")
	registerFormCompletion(cmd)
	return cmd
}

func writeSection(cmd *cobra.Command, out, content string) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o700); err != nil {
		return err
	}
	if fileExists(out) {
		backup, err := backupConfig(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backup: %s\n", backup)
	}
	if err := os.WriteFile(out, []byte(content), 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
