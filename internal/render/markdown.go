package render

import (
	"regexp"
	"strings"
)

// BlockKind identifies the display block produced for one line.
type BlockKind int

const (
	BlockSpacer BlockKind = iota
	BlockHeading
	BlockQuote
	BlockParagraph
)

func (k BlockKind) String() string {
	switch k {
	case BlockSpacer:
		return "spacer"
	case BlockHeading:
		return "heading"
	case BlockQuote:
		return "quote"
	case BlockParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Accent colors a heading.
type Accent int

const (
	AccentAmber Accent = iota
	AccentBlue
	AccentGreen
)

// Span is a run of paragraph text.
type Span struct {
	Text string
	Bold bool
}

// Block is one rendered line.
type Block struct {
	Kind   BlockKind
	Text   string // heading label or quote text; paragraph text without markers
	Accent Accent // headings only
	Spans  []Span // paragraphs only
}

var boldRe = regexp.MustCompile(`\*\*.*?\*\*`)

// Render converts Markdown-lite text into display blocks, one per line.
// It never fails; unknown markers are kept as plain text.
func Render(text string) []Block {
	lines := strings.Split(text, "\n")
	out := make([]Block, 0, len(lines))
	for _, line := range lines {
		out = append(out, renderLine(line))
	}
	return out
}

func renderLine(line string) Block {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Block{Kind: BlockSpacer}
	case strings.HasPrefix(trimmed, "###"):
		label := strings.TrimSpace(strings.Replace(trimmed, "###", "", 1))
		return Block{Kind: BlockHeading, Text: label, Accent: headingAccent(label)}
	case strings.HasPrefix(trimmed, ">"):
		// Bold markers are dropped inside quotes rather than emphasized.
		body := strings.TrimSpace(strings.Replace(trimmed, ">", "", 1))
		return Block{Kind: BlockQuote, Text: strings.ReplaceAll(body, "**", "")}
	default:
		spans := paragraphSpans(trimmed)
		return Block{Kind: BlockParagraph, Text: spansText(spans), Spans: spans}
	}
}

func headingAccent(label string) Accent {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "dialog"), strings.Contains(l, "script"):
		return AccentBlue
	case strings.Contains(l, "cta"):
		return AccentGreen
	default:
		return AccentAmber
	}
}

func paragraphSpans(line string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldRe.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: line[last:loc[0]]})
		}
		spans = append(spans, Span{Text: line[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

func spansText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// PlainText flattens blocks back to marker-free text, one line per block.
func PlainText(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, b.Text)
	}
	return strings.Join(lines, "\n")
}
