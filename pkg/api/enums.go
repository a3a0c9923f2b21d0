package api

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// LanguageStyle is the copywriting voice requested from the model.
type LanguageStyle string

const (
	StylePersuasive   LanguageStyle = "Persuasif"
	StyleStorytelling LanguageStyle = "Storytelling"
	StyleProfessional LanguageStyle = "Profesional"
	StyleEducative    LanguageStyle = "Edukatif"
	StyleCasual       LanguageStyle = "Santai"
	StyleFun          LanguageStyle = "Fun/Menghibur"
)

// ContentLength is the target video duration bucket.
type ContentLength string

const (
	LengthShort  ContentLength = "Pendek (< 30 Detik)"
	LengthMedium ContentLength = "Sedang (30 - 60 Detik)"
	LengthLong   ContentLength = "Panjang (> 60 Detik)"
)

// HookType is the opening-line technique.
type HookType string

const (
	HookNone          HookType = "Tidak Ada"
	HookControversial HookType = "Kontroversial"
	HookRhetorical    HookType = "Pertanyaan Retoris"
	HookQuotes        HookType = "Kutipan Releatable"
	HookFacts         HookType = "Fakta Mengejutkan"
	HookSolutions     HookType = "Masalah & Solusi"
	HookBeforeAfter   HookType = "Before & After"
	HookComparison    HookType = "X dibanding Y"
	HookTestimonial   HookType = "Testimoni/Review"
	HookUnboxing      HookType = "First Impression/Unboxing"
)

type option struct {
	name  string
	label string
}

var styleOptions = []option{
	{"persuasive", string(StylePersuasive)},
	{"storytelling", string(StyleStorytelling)},
	{"professional", string(StyleProfessional)},
	{"educative", string(StyleEducative)},
	{"casual", string(StyleCasual)},
	{"fun", string(StyleFun)},
}

var lengthOptions = []option{
	{"short", string(LengthShort)},
	{"medium", string(LengthMedium)},
	{"long", string(LengthLong)},
}

var hookOptions = []option{
	{"none", string(HookNone)},
	{"controversial", string(HookControversial)},
	{"rhetorical", string(HookRhetorical)},
	{"quotes", string(HookQuotes)},
	{"facts", string(HookFacts)},
	{"solutions", string(HookSolutions)},
	{"before-after", string(HookBeforeAfter)},
	{"comparison", string(HookComparison)},
	{"testimonial", string(HookTestimonial)},
	{"unboxing", string(HookUnboxing)},
}

// LanguageStyles lists every style in form order.
func LanguageStyles() []LanguageStyle {
	out := make([]LanguageStyle, 0, len(styleOptions))
	for _, o := range styleOptions {
		out = append(out, LanguageStyle(o.label))
	}
	return out
}

// ContentLengths lists every length in form order.
func ContentLengths() []ContentLength {
	out := make([]ContentLength, 0, len(lengthOptions))
	for _, o := range lengthOptions {
		out = append(out, ContentLength(o.label))
	}
	return out
}

// HookTypes lists every hook in form order.
func HookTypes() []HookType {
	out := make([]HookType, 0, len(hookOptions))
	for _, o := range hookOptions {
		out = append(out, HookType(o.label))
	}
	return out
}

// ParseLanguageStyle resolves a label, a short name or a fuzzy abbreviation.
func ParseLanguageStyle(s string) (LanguageStyle, error) {
	v, err := resolveOption("style", s, styleOptions)
	return LanguageStyle(v), err
}

// ParseContentLength resolves a label, a short name or a fuzzy abbreviation.
func ParseContentLength(s string) (ContentLength, error) {
	v, err := resolveOption("length", s, lengthOptions)
	return ContentLength(v), err
}

// ParseHookType resolves a label, a short name or a fuzzy abbreviation.
func ParseHookType(s string) (HookType, error) {
	v, err := resolveOption("hook", s, hookOptions)
	return HookType(v), err
}

func (s LanguageStyle) Valid() bool { return isOption(string(s), styleOptions) }
func (l ContentLength) Valid() bool { return isOption(string(l), lengthOptions) }
func (h HookType) Valid() bool      { return isOption(string(h), hookOptions) }

func isOption(s string, opts []option) bool {
	for _, o := range opts {
		if o.label == s {
			return true
		}
	}
	return false
}

// resolveOption matches exact labels and names first, then falls back to the
// best fuzzy match over "name label" candidates.
func resolveOption(field, s string, opts []option) (string, error) {
	q := strings.TrimSpace(s)
	if q == "" {
		return "", NewValidationError(field, "value is required")
	}
	for _, o := range opts {
		if o.label == q || strings.EqualFold(o.name, q) || strings.EqualFold(o.label, q) {
			return o.label, nil
		}
	}
	candidates := make([]string, 0, len(opts))
	for _, o := range opts {
		candidates = append(candidates, strings.ToLower(o.name+" "+o.label))
	}
	matches := fuzzy.Find(strings.ToLower(q), candidates)
	if len(matches) == 0 {
		return "", NewValidationError(field, "unknown value %q", s)
	}
	if len(matches) > 1 && matches[0].Score == matches[1].Score {
		return "", NewValidationError(field, "ambiguous value %q (%s or %s)", s,
			opts[matches[0].Index].label, opts[matches[1].Index].label)
	}
	return opts[matches[0].Index].label, nil
}
