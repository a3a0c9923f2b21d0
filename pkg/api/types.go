package api

// Source is a grounding citation returned when web search backed the output.
type Source struct {
	Title string `json:"title" yaml:"title"`
	URI   string `json:"uri" yaml:"uri"`
}

// GeneratedScript is one short-video script variant. Content is Markdown-lite.
type GeneratedScript struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Hashtags []string `json:"hashtags" yaml:"hashtags"`
	Sources  []Source `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// DisplayHashtags returns the hashtags with a leading '#' on every tag.
func (s GeneratedScript) DisplayHashtags() []string {
	out := make([]string, 0, len(s.Hashtags))
	for _, t := range s.Hashtags {
		if len(t) > 0 && t[0] == '#' {
			out = append(out, t)
			continue
		}
		out = append(out, "#"+t)
	}
	return out
}

// FeedPost is a single-image feed post.
type FeedPost struct {
	Title   string `json:"title" yaml:"title"`
	Visual  string `json:"visual" yaml:"visual"`
	Caption string `json:"caption" yaml:"caption"`
}

// Slide is one carousel slide.
type Slide struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Carousel is a multi-slide outline.
type Carousel struct {
	Slides []Slide `json:"slides" yaml:"slides"`
}

// SocialMediaBundle is the four-artifact package derived from one script.
type SocialMediaBundle struct {
	Reels    string   `json:"reels" yaml:"reels"`
	Feed     FeedPost `json:"feed" yaml:"feed"`
	Carousel Carousel `json:"carousel" yaml:"carousel"`
	Threads  []string `json:"threads" yaml:"threads"`
}

// Theme is the persisted display preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), true
	default:
		return "", false
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
