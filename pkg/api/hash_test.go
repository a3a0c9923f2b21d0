package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedScript_Digest(t *testing.T) {
	base := GeneratedScript{
		ID:       "s1",
		Title:    "Hook kuat",
		Content:  "### 🪝 HOOK\nKamu pasti pernah begini...",
		Hashtags: []string{"a", "b"},
	}

	t.Run("identical content produces identical digests", func(t *testing.T) {
		s1 := base
		s2 := base
		s2.ID = "other"
		s2.Title = "other"
		assert.Equal(t, s1.Digest(), s2.Digest())
	})

	t.Run("whitespace is significant", func(t *testing.T) {
		s2 := base
		s2.Content = base.Content + "\n"
		assert.NotEqual(t, base.Digest(), s2.Digest())
	})

	t.Run("digest is hex blake3-256", func(t *testing.T) {
		assert.Len(t, base.Digest(), 64)
		assert.Equal(t, ContentDigest(base.Content), base.Digest())
	})
}

func TestDisplayHashtags(t *testing.T) {
	s := GeneratedScript{Hashtags: []string{"#racun", "shopee", "", "fyp"}}
	assert.Equal(t, []string{"#racun", "#shopee", "#", "#fyp"}, s.DisplayHashtags())
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
