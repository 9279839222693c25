// Package tokens estimates language-model token counts for serialized text.
package tokens

import "unicode"

// Estimate returns a deterministic token-count estimate for s.
//
// The scheme is fixed and reproducible, not an exact model tokenization:
// each run of letters or digits costs one token per four runes (rounded up),
// and every other non-space rune costs one token. Whitespace is free.
func Estimate(s string) int {
	total := 0
	run := 0
	flush := func() {
		if run > 0 {
			total += (run + 3) / 4
			run = 0
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			run++
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			total++
		}
	}
	flush()
	return total
}
