package split

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BandLabels are the three fixed alphabetical bands, in order.
var BandLabels = []string{"a-f", "g-n", "o-z"}

// foldCase strips combining marks so accented names band by their base
// letter ("Éowyn" bands as "e").
var foldCase = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Band returns the fixed alphabetical band label for a record name, keyed
// by the first rune of the folded, lowercased name. Runes sorting below 'a'
// (digits, punctuation) fall into the first band and runes above 'z' into
// the last, so every name lands in exactly one band.
func Band(name string) string {
	folded, _, err := transform.String(foldCase, name)
	if err != nil {
		folded = name
	}
	folded = strings.TrimSpace(strings.ToLower(folded))

	first := 'a'
	for _, r := range folded {
		first = r
		break
	}
	switch {
	case first <= 'f':
		return BandLabels[0]
	case first <= 'n':
		return BandLabels[1]
	default:
		return BandLabels[2]
	}
}
