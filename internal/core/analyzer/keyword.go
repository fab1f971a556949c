package analyzer

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/rankgate/rankgate/internal/core"
)

// Keyword intelligence is simulated from deterministic hashes of the
// keyword. A production deployment would plug a DataForSEO/Semrush-style
// provider in behind the same collaborator interface.

var (
	relatedPrefixes = []string{"best", "top", "how to"}
	relatedSuffixes = []string{"tool", "software", "service"}
)

// KeywordResearch produces keyword metrics and related-keyword ideas.
func (s *Service) KeywordResearch(ctx context.Context, keyword, country string) *core.KeywordReport {
	if country == "" {
		country = "us"
	}

	baseVolume := int(seed(keyword)%50000) + 1000
	difficulty := int(seed(keyword+"diff")%60) + 20
	cpc := round2(float64(seed(keyword+"cpc")%500)/100 + 0.5)

	related := make([]core.RelatedKeyword, 0, len(relatedPrefixes)+len(relatedSuffixes))
	for _, p := range relatedPrefixes {
		related = append(related, core.RelatedKeyword{
			Keyword:    p + " " + keyword,
			Volume:     baseVolume * 3 / 10,
			Difficulty: max(10, difficulty-15),
			CPC:        round2(cpc * 0.8),
		})
	}
	for _, suffix := range relatedSuffixes {
		related = append(related, core.RelatedKeyword{
			Keyword:    keyword + " " + suffix,
			Volume:     baseVolume * 2 / 10,
			Difficulty: max(10, difficulty-10),
			CPC:        round2(cpc * 0.9),
		})
	}

	lower := strings.ToLower(keyword)
	features := []string{}
	if strings.Contains(lower, "how") {
		features = append(features, "Featured Snippet")
	}
	if strings.Contains(lower, "best") {
		features = append(features, "Top Stories")
	}
	if strings.Contains(lower, "near") {
		features = append(features, "Local Pack")
	}
	features = append(features, "People Also Ask", "Related Searches")
	if len(features) > 3 {
		features = features[:3]
	}

	competition := "Low"
	switch {
	case difficulty > 60:
		competition = "High"
	case difficulty > 35:
		competition = "Medium"
	}

	return &core.KeywordReport{
		Keyword:          keyword,
		Country:          country,
		MonthlyVolume:    baseVolume,
		Difficulty:       difficulty,
		CPCUSD:           cpc,
		Competition:      competition,
		Trend:            "Stable",
		SERPFeatures:     features,
		RelatedKeywords:  related,
		OpportunityScore: max(0, 100-difficulty+baseVolume/1000),
		AnalyzedAt:       s.timestamp(),
	}
}

// seed derives a stable pseudo-metric from a keyword.
func seed(input string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(input))))
	return h.Sum64()
}
