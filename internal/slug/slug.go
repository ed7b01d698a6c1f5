// Package slug builds URL-safe identifiers for event pages.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "Výročí" -> "Vyroci").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Make converts an event name into a URL slug: lowercase ASCII with
// hyphen-separated words (e.g., "Novákovic svatba 2026" -> "novakovic-svatba-2026").
func Make(name string) string {
	name = RemoveDiacritics(name)
	name = strings.ToLower(name)

	var b strings.Builder
	lastHyphen := true // trim leading hyphens
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
