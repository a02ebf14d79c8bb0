// Package normalize canonicalizes user-supplied strings before they are
// stored or compared. Keeping the rules in one place prevents, e.g., the
// same email registering twice with different casing.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status or priority value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Solution lowercases and trims a solution slug so /Alpha/clients and
// /alpha/clients address the same records.
func Solution(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
