package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mithrel/viralscript/pkg/api"
)

func sampleScripts() []api.GeneratedScript {
	src := []api.Source{{Title: "Shop", URI: "https://shop.example"}}
	return []api.GeneratedScript{
		{ID: "a", Title: "First", Content: "### 🪝 HOOK\nMau **kulit** glowing?\n\n> 👁️ **VISUAL**: close up", Hashtags: []string{"glow", "#skincare"}, Sources: src},
		{ID: "b", Title: "Second\tTabbed", Content: "plain", Hashtags: nil, Sources: src},
	}
}

func TestWriteScriptIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScriptIndex(&buf, sampleScripts(), true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "#glow #skincare")
	assert.Contains(t, lines[2], `Second\tTabbed`)
}

func TestWritePlainScriptsStripsMarkers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainScripts(&buf, sampleScripts(), false))
	out := buf.String()
	assert.Contains(t, out, "Mau kulit glowing?")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "###")
	assert.Contains(t, out, "Sources:")
	assert.Equal(t, 1, strings.Count(out, "https://shop.example"))
}

func TestWritePlainBundle(t *testing.T) {
	b := api.SocialMediaBundle{
		Reels:    "**Halo**",
		Feed:     api.FeedPost{Title: "T", Visual: "V", Caption: "C"},
		Carousel: api.Carousel{Slides: []api.Slide{{Title: "s1", Content: "c1"}, {Title: "s2", Content: "c2"}}},
		Threads:  []string{"one", "two"},
	}
	var buf bytes.Buffer
	require.NoError(t, WritePlainBundle(&buf, b))
	out := buf.String()
	for _, want := range []string{"== Voice-over ==", "== Feed ==", "== Carousel ==", "== Threads ==", "Halo", "1/2  one", "2/2  two"} {
		assert.Contains(t, out, want)
	}
}

func TestJSONRoundTripThroughReadScripts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONScripts(&buf, sampleScripts(), true))
	got, err := ReadScripts(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleScripts(), got)

	one, err := json.Marshal(sampleScripts()[0])
	require.NoError(t, err)
	got, err = ReadScripts(bytes.NewReader(one))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "First", got[0].Title)

	_, err = ReadScripts(strings.NewReader("nope"))
	assert.Error(t, err)
}

func TestWriteJSONNilScripts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONScripts(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAMLBundle(t *testing.T) {
	b := api.SocialMediaBundle{Reels: "r", Threads: []string{"x"}}
	var buf bytes.Buffer
	require.NoError(t, WriteYAMLBundle(&buf, b))
	var back api.SocialMediaBundle
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, b.Reels, back.Reels)
	assert.Equal(t, b.Threads, back.Threads)
}

func TestScriptsMarkdown(t *testing.T) {
	md := ScriptsMarkdown(sampleScripts())
	assert.Contains(t, md, "# 1. First")
	assert.Contains(t, md, "# 2. Second")
	assert.Contains(t, md, "- [Shop](https://shop.example)")
	assert.Equal(t, 1, strings.Count(md, "## Sources"))
}

func TestWritePrettyBundle(t *testing.T) {
	var buf bytes.Buffer
	b := api.SocialMediaBundle{Reels: "r", Feed: api.FeedPost{Title: "Judul"}, Threads: []string{"t"}}
	require.NoError(t, WritePrettyBundle(&buf, b, api.ThemeLight))
	assert.Contains(t, buf.String(), "Judul")
}
