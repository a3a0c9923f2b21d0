package api

import "strings"

const (
	MinScriptCount = 1
	MaxScriptCount = 21
)

// ScriptFormValues is the immutable snapshot submitted by the form.
type ScriptFormValues struct {
	ProductURL  string        `json:"productUrl" yaml:"productUrl"`
	Style       LanguageStyle `json:"style" yaml:"style"`
	Length      ContentLength `json:"length" yaml:"length"`
	Hook        HookType      `json:"hook" yaml:"hook"`
	ScriptCount int           `json:"scriptCount" yaml:"scriptCount"`
}

// DefaultForm mirrors the form's initial selections.
func DefaultForm() ScriptFormValues {
	return ScriptFormValues{
		Style:       StylePersuasive,
		Length:      LengthMedium,
		Hook:        HookSolutions,
		ScriptCount: 6,
	}
}

// Validate reports the first offending field.
func (f ScriptFormValues) Validate() error {
	if strings.TrimSpace(f.ProductURL) == "" {
		return NewValidationError("productUrl", "product link is required")
	}
	if !f.Style.Valid() {
		return NewValidationError("style", "unknown style %q", f.Style)
	}
	if !f.Length.Valid() {
		return NewValidationError("length", "unknown length %q", f.Length)
	}
	if !f.Hook.Valid() {
		return NewValidationError("hook", "unknown hook %q", f.Hook)
	}
	if f.ScriptCount < MinScriptCount || f.ScriptCount > MaxScriptCount {
		return NewValidationError("scriptCount", "must be between %d and %d, got %d", MinScriptCount, MaxScriptCount, f.ScriptCount)
	}
	return nil
}
