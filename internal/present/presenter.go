package present

import (
	"fmt"
	"io"

	"github.com/mithrel/viralscript/internal/present/format"
	"github.com/mithrel/viralscript/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeYAML
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Theme      api.Theme
}

// ParseMode parses "plain", "pretty", "json", "ndjson" or "yaml".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "yaml":
		return ModeYAML, true
	default:
		return ModePlain, false
	}
}

// RenderScripts renders a batch of scripts according to options.
func RenderScripts(w io.Writer, scripts []api.GeneratedScript, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONScripts(w, scripts, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONScripts(w, scripts)
	case ModeYAML:
		return format.WriteYAMLScripts(w, scripts)
	case ModePretty:
		return format.WritePrettyScripts(w, scripts, opts.Theme)
	default:
		return format.WritePlainScripts(w, scripts, opts.Headers)
	}
}

// RenderBundle renders a social media bundle according to options.
func RenderBundle(w io.Writer, b api.SocialMediaBundle, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONBundle(w, b, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteJSONBundle(w, b, false)
	case ModeYAML:
		return format.WriteYAMLBundle(w, b)
	case ModePretty:
		return format.WritePrettyBundle(w, b, opts.Theme)
	case ModePlain:
		return format.WritePlainBundle(w, b)
	default:
		return fmt.Errorf("unsupported output mode %d", opts.Mode)
	}
}
