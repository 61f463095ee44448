package services

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))
	contentPolicy  = bluemonday.UGCPolicy()
	commentPolicy  = bluemonday.StrictPolicy()
)

// RenderPostContent converts a post's markdown content to sanitized HTML.
func RenderPostContent(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return contentPolicy.Sanitize(buf.String()), nil
}

// SanitizeCommentContent strips all markup from user submitted comments.
func SanitizeCommentContent(content string) string {
	return commentPolicy.Sanitize(strings.TrimSpace(content))
}
