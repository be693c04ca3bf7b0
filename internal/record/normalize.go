package record

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a name for case-insensitive comparison.
//
// The name is trimmed, NFC normalized, then case folded, so "ALICE",
// "alice" and "Alice " (and composed/decomposed accents) share one key.
func Normalize(name string) string {
	s := norm.NFC.String(strings.TrimSpace(name))
	return cases.Fold().String(s)
}
