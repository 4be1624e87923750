// Package genre provides book-genre normalization and the default seed data
// for the genre bridge table.
package genre

import "strings"

// Normalize canonicalizes a caller-supplied book genre label.
// Bridge table rows store book genre names in this form.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
