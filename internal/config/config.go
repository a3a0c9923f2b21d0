package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "viralscript"

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	_ = v.ReadInConfig()

	// VIRALSCRIPT_* env vars win over the file
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	if v.GetString("log.file") == "" {
		v.Set("log.file", filepath.Join(expandHome(v.GetString("data_dir")), appName+".log"))
	}

	// comma-separated env override for credential.env_vars
	if s, ok := v.Get("credential.env_vars").(string); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
		v.Set("credential.env_vars", out)
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/viralscript or ~/.local/share/viralscript.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for defaults and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/viralscript.db"},
		{Key: "provider", Default: "gemini", Comment: "Generation backend: gemini | openai"},
		{Key: "output", Default: "plain", Comment: "Default CLI output: plain | pretty | json | ndjson | yaml"},
		{Key: "theme", Default: "dark", Comment: "Initial theme when none has been saved: dark | light"},

		{Key: "gemini.model", Default: "gemini-3-flash-preview", Comment: "Gemini model id"},
		{Key: "gemini.base_url", Default: "https://generativelanguage.googleapis.com", Comment: "Gemini REST endpoint"},
		{Key: "openai.model", Default: "gpt-4o-mini", Comment: "Model for OpenAI-compatible endpoints"},
		{Key: "openai.base_url", Default: "https://api.openai.com/v1", Comment: "OpenAI-compatible endpoint"},

		{Key: "credential.backend", Default: "auto", Comment: "Where a saved API key lives: auto | keyring | db"},
		{Key: "credential.env_vars", Default: []string{"VIRALSCRIPT_API_KEY", "GEMINI_API_KEY", "API_KEY"}, Comment: "Environment variables consulted, in order, when no key is saved"},

		{Key: "defaults.style", Default: "Persuasif", Comment: "Form default language style"},
		{Key: "defaults.length", Default: "Sedang (30 - 60 Detik)", Comment: "Form default content length"},
		{Key: "defaults.hook", Default: "Masalah & Solusi", Comment: "Form default hook type"},
		{Key: "defaults.script_count", Default: 6, Comment: "Form default number of variations (1-21)"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug | info | warn | error"},
		{Key: "log.file", Default: "", Comment: "Log file; empty means data_dir/viralscript.log"},
	}
}

// ResolveDBPath returns the sqlite DB file path under data_dir.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	return filepath.Join(expandHome(dir), appName+".db")
}

// expandHome expands a leading ~ for convenience.
func expandHome(dir string) string {
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	return dir
}
