package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPostContent(t *testing.T) {
	html, err := RenderPostContent("# Hello\n\nSome **bold** text.")
	assert.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderPostContentStripsScripts(t *testing.T) {
	html, err := RenderPostContent("Hello <script>alert('x')</script> world")
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, "Hello")
}

func TestSanitizeCommentContent(t *testing.T) {
	assert.Equal(t, "plain text", SanitizeCommentContent("  plain text  "))
	assert.Equal(t, "hello", SanitizeCommentContent("<b>hello</b>"))
	assert.NotContains(t, SanitizeCommentContent("<script>alert('x')</script>hi"), "script")
}
