// Package htmlsanitize strips dangerous markup from rich-text fields
// (work content, issue content, client memos) before storage, so stored
// HTML is always safe to echo back to browsers.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows user-generated content plus the table markup and inline
// styling the portal's editor emits.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements(
		"table", "thead", "tbody", "tr", "th", "td",
		"p", "span", "div", "ul", "ol", "li")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs("style").OnElements("table", "tr", "th", "td")
	return p
}

// Sanitize removes disallowed tags and attributes, returning markup safe
// for display. Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// IsPlainText reports whether s contains no HTML tags. Lone < or >
// characters (e.g. "5 < 10") do not count as markup.
func IsPlainText(s string) bool {
	lt := strings.Index(s, "<")
	if lt < 0 {
		return true
	}
	return strings.Index(s[lt:], ">") < 0
}

// PlainTextToHTML escapes plain text and wraps it in a paragraph,
// converting newlines to <br>. Empty input stays empty.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}
