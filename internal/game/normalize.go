package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// NormalizeMoveInput folds raw move text to its lookup key: full-width forms
// are narrowed, emoji variation selectors dropped, surrounding spaces and
// punctuation trimmed, and case folded.
func NormalizeMoveInput(raw string) string {
	folder := transform.Chain(width.Fold, runes.Remove(runes.In(unicode.Variation_Selector)))
	s, _, err := transform.String(folder, raw)
	if err != nil {
		s = raw
	}
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return cases.Fold().String(s)
}
