package tui

import (
	"strings"

	"github.com/mithrel/viralscript/pkg/api"
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}

// cycle returns the element after (or before, when delta < 0) cur in opts.
func cycle[T comparable](opts []T, cur T, delta int) T {
	if len(opts) == 0 {
		return cur
	}
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	idx = (idx + delta) % len(opts)
	if idx < 0 {
		idx += len(opts)
	}
	return opts[idx]
}

// scriptClipboardText is what "copy" puts on the clipboard for a script.
func scriptClipboardText(s api.GeneratedScript) string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(s.Content))
	if tags := s.DisplayHashtags(); len(tags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(joinTags(tags))
	}
	return b.String()
}
