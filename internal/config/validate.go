package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/viralscript/pkg/api"
)

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		bad("data_dir is required")
	}
	switch p := v.GetString("provider"); p {
	case "gemini", "openai":
	default:
		bad("provider must be gemini or openai, got %q", p)
	}
	for _, key := range []string{"gemini.base_url", "openai.base_url"} {
		if s := v.GetString(key); s != "" {
			if u, err := url.Parse(s); err != nil || u.Scheme == "" || u.Host == "" {
				bad("%s is not a valid url", key)
			}
		}
	}
	switch b := v.GetString("credential.backend"); b {
	case "auto", "keyring", "db":
	default:
		bad("credential.backend must be auto, keyring or db, got %q", b)
	}
	switch o := v.GetString("output"); o {
	case "plain", "pretty", "json", "ndjson", "yaml":
	default:
		bad("output %q is not supported", o)
	}
	if _, ok := api.ParseTheme(v.GetString("theme")); !ok {
		bad("theme must be dark or light")
	}
	if _, err := api.ParseLanguageStyle(v.GetString("defaults.style")); err != nil {
		bad("defaults.style: %v", err)
	}
	if _, err := api.ParseContentLength(v.GetString("defaults.length")); err != nil {
		bad("defaults.length: %v", err)
	}
	if _, err := api.ParseHookType(v.GetString("defaults.hook")); err != nil {
		bad("defaults.hook: %v", err)
	}
	if n := v.GetInt("defaults.script_count"); n < api.MinScriptCount || n > api.MaxScriptCount {
		bad("defaults.script_count must be between %d and %d", api.MinScriptCount, api.MaxScriptCount)
	}
	if _, err := zapcore.ParseLevel(v.GetString("log.level")); err != nil {
		bad("log.level: %v", err)
	}
	return errors.Join(errs...)
}

// FormDefaults builds the initial form values from the defaults section.
// Unparseable entries fall back to the built-in defaults.
func FormDefaults(v *viper.Viper) api.ScriptFormValues {
	f := api.DefaultForm()
	if s, err := api.ParseLanguageStyle(v.GetString("defaults.style")); err == nil {
		f.Style = s
	}
	if l, err := api.ParseContentLength(v.GetString("defaults.length")); err == nil {
		f.Length = l
	}
	if h, err := api.ParseHookType(v.GetString("defaults.hook")); err == nil {
		f.Hook = h
	}
	if n := v.GetInt("defaults.script_count"); n >= api.MinScriptCount && n <= api.MaxScriptCount {
		f.ScriptCount = n
	}
	return f
}
