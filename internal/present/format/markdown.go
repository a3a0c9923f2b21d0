package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/viralscript/pkg/api"
)

func glamourStyle(theme api.Theme) string {
	if theme == api.ThemeLight {
		return "light"
	}
	return "dracula"
}

func renderMarkdown(w io.Writer, md string, theme api.Theme) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle(theme)),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// ScriptsMarkdown assembles the scripts into one markdown document.
func ScriptsMarkdown(scripts []api.GeneratedScript) string {
	var b strings.Builder
	for i, s := range scripts {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "# %d. %s\n\n", i+1, s.Title)
		b.WriteString(strings.TrimSpace(s.Content))
		b.WriteString("\n\n")
		if tags := s.DisplayHashtags(); len(tags) > 0 {
			fmt.Fprintf(&b, "`%s`\n", strings.Join(tags, " "))
		}
	}
	if len(scripts) > 0 && len(scripts[0].Sources) > 0 {
		b.WriteString("\n---\n\n## Sources\n\n")
		for _, src := range scripts[0].Sources {
			fmt.Fprintf(&b, "- [%s](%s)\n", src.Title, src.URI)
		}
	}
	return b.String()
}

// BundleMarkdown assembles the four bundle sections.
func BundleMarkdown(bd api.SocialMediaBundle) string {
	var b strings.Builder
	b.WriteString("# 🎙️ Voice-over\n\n")
	b.WriteString(strings.TrimSpace(bd.Reels))
	b.WriteString("\n\n# 🖼️ Feed\n\n")
	fmt.Fprintf(&b, "## %s\n\n> **Visual**: %s\n\n", bd.Feed.Title, bd.Feed.Visual)
	b.WriteString(strings.TrimSpace(bd.Feed.Caption))
	b.WriteString("\n\n# 📚 Carousel\n\n")
	for i, sl := range bd.Carousel.Slides {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, sl.Title, sl.Content)
	}
	b.WriteString("\n# 🧵 Threads\n\n")
	for i, post := range bd.Threads {
		fmt.Fprintf(&b, "**%d/%d** %s\n\n", i+1, len(bd.Threads), post)
	}
	return b.String()
}

func WritePrettyScripts(w io.Writer, scripts []api.GeneratedScript, theme api.Theme) error {
	return renderMarkdown(w, ScriptsMarkdown(scripts), theme)
}

func WritePrettyBundle(w io.Writer, bd api.SocialMediaBundle, theme api.Theme) error {
	return renderMarkdown(w, BundleMarkdown(bd), theme)
}
