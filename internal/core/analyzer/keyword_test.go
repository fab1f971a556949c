package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rankgate/rankgate/internal/config"
)

func TestKeywordResearchDeterministic(t *testing.T) {
	svc := New(config.AnalyzerConfig{})

	a := svc.KeywordResearch(context.Background(), "project management", "us")
	b := svc.KeywordResearch(context.Background(), "Project Management", "us")

	// Metrics derive from the lowercased keyword; the report keeps the
	// caller's exact casing.
	require.Equal(t, a.MonthlyVolume, b.MonthlyVolume)
	require.Equal(t, a.Difficulty, b.Difficulty)
	require.Equal(t, a.CPCUSD, b.CPCUSD)
	require.NotEqual(t, a.Keyword, b.Keyword)
}

func TestKeywordResearchRanges(t *testing.T) {
	svc := New(config.AnalyzerConfig{})

	for _, kw := range []string{"crm", "best running shoes", "how to bake bread", "plumber near me"} {
		report := svc.KeywordResearch(context.Background(), kw, "")
		require.Equal(t, "us", report.Country)
		require.GreaterOrEqual(t, report.MonthlyVolume, 1000)
		require.Less(t, report.MonthlyVolume, 51000)
		require.GreaterOrEqual(t, report.Difficulty, 20)
		require.Less(t, report.Difficulty, 80)
		require.GreaterOrEqual(t, report.CPCUSD, 0.5)
		require.Len(t, report.RelatedKeywords, 6)
		require.LessOrEqual(t, len(report.SERPFeatures), 3)
		require.Contains(t, []string{"Low", "Medium", "High"}, report.Competition)
	}
}

func TestKeywordResearchSERPFeatures(t *testing.T) {
	svc := New(config.AnalyzerConfig{})

	report := svc.KeywordResearch(context.Background(), "how to fix a sink", "us")
	require.Equal(t, "Featured Snippet", report.SERPFeatures[0])

	report = svc.KeywordResearch(context.Background(), "plumber near me", "us")
	require.Contains(t, report.SERPFeatures, "Local Pack")
}

func TestKeywordResearchRelatedKeywords(t *testing.T) {
	svc := New(config.AnalyzerConfig{})

	report := svc.KeywordResearch(context.Background(), "crm", "us")
	require.Equal(t, "best crm", report.RelatedKeywords[0].Keyword)
	require.Equal(t, "crm tool", report.RelatedKeywords[3].Keyword)

	for _, related := range report.RelatedKeywords {
		require.GreaterOrEqual(t, related.Difficulty, 10)
		require.Greater(t, related.Volume, 0)
	}
}
