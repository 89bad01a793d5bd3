package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// letterVariants folds Arabic letter variants to one canonical letter.
var letterVariants = map[rune]rune{
	'إ': 'ا',
	'أ': 'ا',
	'آ': 'ا',
	'ى': 'ي',
	'ة': 'ه',
	'ؤ': 'و',
	'ئ': 'ي',
}

// Normalize canonicalizes free text for comparison.
//
// It case-folds Latin letters, folds Arabic letter variants, replaces
// punctuation and any rune outside the Arabic block, ASCII letters and
// digits with a space, then collapses whitespace runs and trims. Normalize is total and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded := cases.Fold().String(text)
	mapped := strings.Map(mapRune, folded)
	return strings.Join(strings.Fields(mapped), " ")
}

func mapRune(r rune) rune {
	if v, ok := letterVariants[r]; ok {
		return v
	}
	switch {
	case r >= 0x0600 && r <= 0x06FF:
		// Arabic punctuation (، ؛ ؟ ٪) shares the block with the letters.
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return r
	default:
		return ' '
	}
}
