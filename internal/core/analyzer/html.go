package analyzer

import (
	"regexp"
	"strings"
)

// Regexp-based signal extraction. Good enough for headline SEO signals;
// a full HTML parse is deliberately avoided to keep the analyzers cheap
// on arbitrary pages.
var (
	titleRe     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	descRe      = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']*)["']`)
	h1Re        = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	imgRe       = regexp.MustCompile(`(?i)<img[^>]*>`)
	canonicalRe = regexp.MustCompile(`(?i)<link[^>]*rel=["']canonical["'][^>]*href=["']([^"']*)["']`)
	robotsRe    = regexp.MustCompile(`(?i)<meta[^>]*name=["']robots["']`)
	ogRe        = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:`)
	tagRe       = regexp.MustCompile(`<[^>]+>`)
)

// pageSignals holds the raw SEO signals parsed from a fetched page.
type pageSignals struct {
	Title            string
	MetaDescription  string
	H1Count          int
	H1Text           string
	TotalImages      int
	ImagesMissingAlt int
	HasCanonical     bool
	HasRobotsMeta    bool
	HasOpenGraph     bool
	HasSchemaMarkup  bool
	WordCount        int
}

func parseSignals(html string) pageSignals {
	var sig pageSignals

	if m := titleRe.FindStringSubmatch(html); m != nil {
		sig.Title = strings.TrimSpace(m[1])
	}
	if m := descRe.FindStringSubmatch(html); m != nil {
		sig.MetaDescription = strings.TrimSpace(m[1])
	}

	h1s := h1Re.FindAllStringSubmatch(html, -1)
	sig.H1Count = len(h1s)
	if len(h1s) > 0 {
		sig.H1Text = strings.TrimSpace(tagRe.ReplaceAllString(h1s[0][1], ""))
	}

	imgs := imgRe.FindAllString(html, -1)
	sig.TotalImages = len(imgs)
	for _, img := range imgs {
		if !strings.Contains(strings.ToLower(img), "alt=") {
			sig.ImagesMissingAlt++
		}
	}

	sig.HasCanonical = canonicalRe.MatchString(html)
	sig.HasRobotsMeta = robotsRe.MatchString(html)
	sig.HasOpenGraph = ogRe.MatchString(html)
	sig.HasSchemaMarkup = strings.Contains(strings.ToLower(html), "application/ld+json")
	sig.WordCount = len(strings.Fields(tagRe.ReplaceAllString(html, " ")))

	return sig
}
