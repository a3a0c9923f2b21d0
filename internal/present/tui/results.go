package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/viralscript/internal/render"
	"github.com/mithrel/viralscript/pkg/api"
)

const (
	sectionReels = iota
	sectionFeed
	sectionCarousel
	sectionThreads
	numSections
)

var sectionNames = [numSections]string{"Voice-over", "Feed", "Carousel", "Threads"}

// scriptCard renders one result card.
func (s styles) scriptCard(i int, sc api.GeneratedScript, width int, selected bool) string {
	inner := max(20, width-4)
	var b strings.Builder
	b.WriteString(s.muted.Render(fmt.Sprintf("Variation %d", i+1)))
	b.WriteString("\n")
	b.WriteString(s.title.Render(sc.Title))
	b.WriteString("\n\n")
	b.WriteString(s.renderContent(sc.Content, inner))
	b.WriteString("\n\n")
	b.WriteString(s.hashtag.Width(inner).Render(joinTags(sc.DisplayHashtags())))
	if selected {
		b.WriteString("\n\n")
		b.WriteString(s.footer.Render("enter=process bundle • y=copy"))
	}
	card := s.card
	if selected {
		card = s.cardSel
	}
	return card.Width(max(24, width-2)).Render(b.String())
}

// scriptsView renders every card and returns the line offset of each.
func (s styles) scriptsView(st viewState, width int) (string, []int) {
	if len(st.scripts) == 0 {
		return s.muted.Render("No scripts yet. Fill in the form and press enter."), nil
	}
	parts := make([]string, 0, len(st.scripts)+1)
	offsets := make([]int, 0, len(st.scripts))
	line := 0
	header := s.muted.Render(fmt.Sprintf("%d scripts (requested %d)", len(st.scripts), st.requested))
	parts = append(parts, header)
	line += lipgloss.Height(header)
	for i, sc := range st.scripts {
		offsets = append(offsets, line)
		card := s.scriptCard(i, sc, width, i == st.selScript)
		parts = append(parts, card)
		line += lipgloss.Height(card)
	}
	if srcs := st.scripts[0].Sources; len(srcs) > 0 {
		var b strings.Builder
		b.WriteString(s.title.Render("Sources"))
		for _, src := range srcs {
			title := src.Title
			if title == "" {
				title = src.URI
			}
			fmt.Fprintf(&b, "\n• %s %s", title, s.muted.Render(src.URI))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n"), offsets
}

func (s styles) bundleSection(idx int, bd api.SocialMediaBundle, width int) string {
	inner := max(20, width-4)
	var b strings.Builder
	switch idx {
	case sectionReels:
		b.WriteString(s.title.Render("🎙️ Voice-over script"))
		b.WriteString("\n\n")
		b.WriteString(s.renderContent(bd.Reels, inner))
	case sectionFeed:
		b.WriteString(s.title.Render("🖼️ Feed post"))
		b.WriteString("\n\n")
		b.WriteString(s.accent(render.AccentAmber).Render(bd.Feed.Title))
		b.WriteString("\n\n")
		b.WriteString(s.quote.Width(inner - 2).Render("👁️ " + bd.Feed.Visual))
		b.WriteString("\n\n")
		b.WriteString(s.renderContent(bd.Feed.Caption, inner))
	case sectionCarousel:
		b.WriteString(s.title.Render(fmt.Sprintf("📚 Carousel (%d slides)", len(bd.Carousel.Slides))))
		for i, sl := range bd.Carousel.Slides {
			b.WriteString("\n\n")
			b.WriteString(s.labelSel.Render(fmt.Sprintf("Slide %d: %s", i+1, sl.Title)))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(inner).Render(sl.Content))
		}
	case sectionThreads:
		b.WriteString(s.title.Render(fmt.Sprintf("🧵 Threads (%d posts)", len(bd.Threads))))
		for i, post := range bd.Threads {
			b.WriteString("\n\n")
			b.WriteString(s.muted.Render(fmt.Sprintf("%d/%d", i+1, len(bd.Threads))))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(inner).Render(post))
		}
	}
	return b.String()
}

func (s styles) bundleView(st viewState, width int) (string, []int) {
	if st.bundle == nil {
		return s.muted.Render("No bundle yet. Select a script and press enter to build one."), nil
	}
	parts := make([]string, 0, numSections)
	offsets := make([]int, 0, numSections)
	line := 0
	for i := 0; i < numSections; i++ {
		offsets = append(offsets, line)
		card := s.card
		if i == st.selSection {
			card = s.cardSel
		}
		r := card.Width(max(24, width-2)).Render(s.bundleSection(i, *st.bundle, width))
		parts = append(parts, r)
		line += lipgloss.Height(r)
	}
	return strings.Join(parts, "\n"), offsets
}

// bundleClipboardText is the copy payload for one bundle section.
func bundleClipboardText(bd api.SocialMediaBundle, idx int) string {
	switch idx {
	case sectionFeed:
		return bd.Feed.Title + "\n\n" + bd.Feed.Caption
	case sectionCarousel:
		var b strings.Builder
		for i, sl := range bd.Carousel.Slides {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "Slide %d: %s\n%s", i+1, sl.Title, sl.Content)
		}
		return b.String()
	case sectionThreads:
		return strings.Join(bd.Threads, "\n\n")
	default:
		return bd.Reels
	}
}
