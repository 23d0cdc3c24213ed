package linkage

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes and drops combining marks, turning "Ingeniería" into
// "Ingenieria".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases, strips diacritics, collapses non-alphanumeric runs into
// single hyphens and trims hyphens from the ends. Returns "" for input with no
// usable characters.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// randomSuffix backs slug collision avoidance when the natural title is empty.
// Not stable across runs; identifiers are only unique within one artifact.
func randomSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
