package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func takenSet(slugs ...string) func(string) bool {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	return func(candidate string) bool {
		return set[candidate]
	}
}

func TestNextAvailableSlug(t *testing.T) {
	t.Run("base is free", func(t *testing.T) {
		got := NextAvailableSlug("hello-world", takenSet())
		assert.Equal(t, "hello-world", got)
	})

	t.Run("base is taken", func(t *testing.T) {
		got := NextAvailableSlug("hello-world", takenSet("hello-world"))
		assert.Equal(t, "hello-world-1", got)
	})

	t.Run("skips past taken suffixes", func(t *testing.T) {
		got := NextAvailableSlug("hello-world", takenSet(
			"hello-world", "hello-world-1", "hello-world-2",
		))
		assert.Equal(t, "hello-world-3", got)
	})

	t.Run("numeric tail gets another suffix", func(t *testing.T) {
		// "post-1" taken means the next candidate is "post-1-1", not "post-2".
		got := NextAvailableSlug("post-1", takenSet("post-1"))
		assert.Equal(t, "post-1-1", got)
	})

	t.Run("holes are filled in order", func(t *testing.T) {
		got := NextAvailableSlug("hello", takenSet("hello", "hello-2"))
		assert.Equal(t, "hello-1", got)
	})
}

func TestPostSlugBase(t *testing.T) {
	t.Run("short titles pass through", func(t *testing.T) {
		assert.Equal(t, "hello-world", postSlugBase("Hello World"))
	})

	t.Run("long titles leave suffix headroom", func(t *testing.T) {
		title := strings.Repeat("word ", 60)
		base := postSlugBase(title)
		assert.LessOrEqual(t, len(base), 192)
		assert.False(t, strings.HasSuffix(base, "-"))

		// Even a large collision suffix stays within the column size
		assert.LessOrEqual(t, len(base)+len("-1000000"), 200)
	})

	t.Run("truncation does not leave a dangling hyphen", func(t *testing.T) {
		// 191 chars of "a" plus a hyphen boundary right at the cut point
		title := strings.Repeat("a", 191) + " " + strings.Repeat("b", 40)
		base := postSlugBase(title)
		assert.False(t, strings.HasSuffix(base, "-"))
	})
}
