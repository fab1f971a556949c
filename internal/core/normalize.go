package core

import (
	"regexp"
	"strings"
)

var schemePrefix = regexp.MustCompile(`^https?://`)

// NormalizeDomain canonicalizes domain input so semantically identical
// requests map to the same cache slot: trims whitespace, lowercases,
// strips the scheme, a leading www., and any path.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = schemePrefix.ReplaceAllString(d, "")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	return d
}
