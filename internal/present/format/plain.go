package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/viralscript/internal/render"
	"github.com/mithrel/viralscript/pkg/api"
)

// TSV columns: index, id, title, hashtags
var headerLine = "#\tid\ttitle\thashtags\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// WriteScriptIndex writes one tab-aligned row per script.
func WriteScriptIndex(w io.Writer, scripts []api.GeneratedScript, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for i, s := range scripts {
		line := fmt.Sprintf("%d\t%s\t%s\t%s\n",
			i+1, esc(s.ID), esc(s.Title), esc(strings.Join(s.DisplayHashtags(), " ")))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainScripts writes every script with its content stripped of markers.
func WritePlainScripts(w io.Writer, scripts []api.GeneratedScript, headers bool) error {
	if err := WriteScriptIndex(w, scripts, headers); err != nil {
		return err
	}
	for i, s := range scripts {
		fmt.Fprintf(w, "\n[%d] %s\n\n", i+1, s.Title)
		io.WriteString(w, render.PlainText(render.Render(s.Content)))
		fmt.Fprintf(w, "\n\n%s\n", strings.Join(s.DisplayHashtags(), " "))
	}
	writeSources(w, scripts)
	return nil
}

func writeSources(w io.Writer, scripts []api.GeneratedScript) {
	// sources are batch-level; the first script carries the full set
	if len(scripts) == 0 || len(scripts[0].Sources) == 0 {
		return
	}
	io.WriteString(w, "\nSources:\n")
	for _, src := range scripts[0].Sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		fmt.Fprintf(w, "  - %s <%s>\n", title, src.URI)
	}
}

// WritePlainBundle writes the four bundle sections.
func WritePlainBundle(w io.Writer, b api.SocialMediaBundle) error {
	var sb strings.Builder
	sb.WriteString("== Voice-over ==\n\n")
	sb.WriteString(render.PlainText(render.Render(b.Reels)))
	sb.WriteString("\n\n== Feed ==\n\n")
	fmt.Fprintf(&sb, "Title:  %s\nVisual: %s\n\n", b.Feed.Title, b.Feed.Visual)
	sb.WriteString(render.PlainText(render.Render(b.Feed.Caption)))
	sb.WriteString("\n\n== Carousel ==\n\n")
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for i, sl := range b.Carousel.Slides {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, esc(sl.Title), esc(sl.Content))
	}
	_ = tw.Flush()
	sb.WriteString("\n== Threads ==\n\n")
	for i, post := range b.Threads {
		fmt.Fprintf(&sb, "%d/%d  %s\n", i+1, len(b.Threads), post)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
