package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/viralscript/pkg/api"
)

func TestComposeThenParseKeepsScript(t *testing.T) {
	s := api.GeneratedScript{
		ID:       "abc",
		Title:    "Hook pertama",
		Content:  "**Visual:** produk\n# bukan komentar\n> Narasi",
		Hashtags: []string{"promo", "#viral"},
		Sources:  []api.Source{{Title: "Shop", URI: "https://shop.example"}},
	}
	got := ParseEditedScript(s, ComposeScript(s))
	assert.Equal(t, s, got)
}

func TestParseEditedScript(t *testing.T) {
	input := `# comment line
Title: Judul baru
Hashtags: alpha, beta ,  gamma
---
Baris 1
Baris 2
`
	got := ParseEditedScript(api.GeneratedScript{ID: "x", Title: "lama"}, input)
	assert.Equal(t, "x", got.ID)
	assert.Equal(t, "Judul baru", got.Title)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got.Hashtags)
	assert.Equal(t, "Baris 1\nBaris 2", got.Content)
}

func TestParseEditedScriptEmptyHashtags(t *testing.T) {
	got := ParseEditedScript(api.GeneratedScript{Hashtags: []string{"old"}}, "Title: t\nHashtags:\n---\nbody")
	assert.Equal(t, []string{}, got.Hashtags)
	assert.Equal(t, "body", got.Content)
}

func TestPathForScript(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	path, err := PathForScript("id with/slash")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "viralscript", "id-with-slash.viralscript.md"), path)
}

func TestEditScriptWithScriptedEditor(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	editorScript := filepath.Join(dir, "ed.sh")
	require.NoError(t, os.WriteFile(editorScript, []byte("#!/bin/sh\nsed -i 's/^Title: .*/Title: Diedit/' \"$1\"\n"), 0o700))
	t.Setenv("VISUAL", editorScript)

	s := api.GeneratedScript{ID: "s1", Title: "Asli", Content: "isi", Hashtags: []string{"a"}}
	got, changed, err := EditScript(s)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Diedit", got.Title)
	assert.Equal(t, "isi", got.Content)

	_, statErr := os.Stat(filepath.Join(dir, "viralscript", "s1.viralscript.md"))
	assert.True(t, os.IsNotExist(statErr))
}
