// Package textnorm normalizes Polish free text for taxonomy matching: lowercase,
// diacritics stripped, punctuation collapsed to single spaces.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold lowercases s and strips diacritics ("Zdrowie i uroda" and "zdrowie i
// uroda" fold to the same string, "wrzesień" folds to "wrzesien").
func Fold(s string) string {
	out, _, err := transform.String(stripper, strings.ToLower(s))
	if err != nil {
		// NFD on valid UTF-8 does not fail; fall back to the lowercased input.
		return strings.ToLower(s)
	}
	// ł is not a combining form, NFD leaves it alone.
	return strings.Map(func(r rune) rune {
		if r == 'ł' {
			return 'l'
		}
		return r
	}, out)
}

// Clean folds s and collapses every non-letter, non-digit run into a single
// space so substring matching is stable against punctuation.
func Clean(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		} else {
			space = true
		}
	}
	return b.String()
}
