// file: internal/store/normalize.go
// version: 1.0.0
// guid: 9e2d4c6b-1a3f-4e8d-b5c7-6f0a9b8c7d6e

package store

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold produces the case-folded shadow form of a text field: NFKC
// normalized, lowercased, inner whitespace collapsed. Shadow fields are
// used only for containment pre-filtering and are never rendered.
func Fold(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
