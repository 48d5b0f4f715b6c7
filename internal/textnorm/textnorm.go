// Package textnorm prepares chat text for matching: lowercase, no
// diacritics, single-spaced word tokens.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFD decomposition followed by combining-mark removal turns "promoção"
// into "promocao".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text, strips diacritics, replaces every run of
// non-alphanumeric characters with a single space and trims. It never
// fails: if the transform chain errors the lowered input is used as-is.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
