package fields

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// textPolicy strips every tag; used for plain-text fields.
	textPolicy = bluemonday.StrictPolicy()

	// richPolicy keeps user-generated-content safe markup; used for
	// wysiwyg values and rendered markdown.
	richPolicy = bluemonday.UGCPolicy()
)

// plainText strips all markup from s and returns the unescaped text
// content. Idempotent: sanitizing already-sanitized text is a no-op.
// Stripping and unescaping repeat until the value is stable, so
// entity-encoded markup ("&lt;b&gt;") is decoded and stripped too
// instead of surviving one pass as live tags.
func plainText(s string) string {
	for i := 0; i < 8; i++ {
		out := html.UnescapeString(textPolicy.Sanitize(s))
		if out == s {
			return out
		}
		s = out
	}
	return textPolicy.Sanitize(s)
}

// sanitizeLine produces a single-line plain-text value: tags stripped,
// newlines and runs of whitespace collapsed to single spaces.
func sanitizeLine(s string) string {
	return strings.Join(strings.Fields(plainText(s)), " ")
}

// sanitizeMultiline produces a plain-text value preserving line breaks.
// Line endings are normalized to \n.
func sanitizeMultiline(s string) string {
	s = plainText(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// sanitizeRich keeps safe user-generated markup and drops everything
// dangerous (scripts, event handlers, bad protocols).
func sanitizeRich(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}
