package engine

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rankgate/rankgate/internal/core"
	"github.com/rankgate/rankgate/internal/metrics"
)

// HistoryStore is the append-only report log the gateway writes to.
type HistoryStore interface {
	AppendReport(ctx context.Context, apiKey string, record *core.HistoryRecord) error
	RecentReports(ctx context.Context, apiKey string, n int) ([]core.HistoryRecord, error)
}

// Analyzer is the external analysis collaborator. Implementations never
// fail for ordinary network errors; they fold failures into a degraded,
// zero-scored report.
type Analyzer interface {
	DomainOverview(ctx context.Context, domain string) *core.DomainReport
	KeywordResearch(ctx context.Context, keyword, country string) *core.KeywordReport
	SiteAudit(ctx context.Context, url string) *core.AuditReport
}

// Gateway composes authentication, quota accounting, rate limiting, and
// result caching into one admission pipeline per billable request.
type Gateway struct {
	Accounts AccountStore
	History  HistoryStore
	Quota    *Accountant
	Limiter  *LimiterRegistry
	Cache    *ReportCache
	Analyzer Analyzer

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// New wires a gateway over the given collaborators with fresh limiter and
// cache state.
func New(accounts AccountStore, history HistoryStore, analyzer Analyzer, cacheTTL time.Duration) *Gateway {
	return &Gateway{
		Accounts: accounts,
		History:  history,
		Quota:    NewAccountant(accounts),
		Limiter:  NewLimiterRegistry(),
		Cache:    NewReportCache(cacheTTL),
		Analyzer: analyzer,
	}
}

// Authenticate resolves the subscriber for a credential, failing closed
// for missing or unknown keys.
func (g *Gateway) Authenticate(ctx context.Context, apiKey string) (*core.Subscriber, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, core.ErrUnauthenticated
	}
	sub, err := g.Accounts.GetSubscriber(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, core.ErrUnauthenticated
	}
	return sub, nil
}

// admit runs the pre-work gates in order: quota reservation first, then
// the rate check. Denials happen before any analysis work; a rate denial
// releases the quota reservation it just took.
func (g *Gateway) admit(ctx context.Context, sub *core.Subscriber) error {
	if err := g.Quota.Reserve(ctx, sub); err != nil {
		return err
	}
	if !g.Limiter.Allow(sub.APIKey, core.PlanFor(sub.Plan)) {
		g.Quota.Release(sub)
		return core.ErrRateLimited
	}
	return nil
}

// DomainOverview serves a domain analysis through the full pipeline. The
// report is cacheable: a fresh hit is returned annotated as cache-derived
// without charging usage or appending history.
func (g *Gateway) DomainOverview(ctx context.Context, apiKey, domain string) (*core.DomainReport, error) {
	sub, err := g.Authenticate(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if err := g.admit(ctx, sub); err != nil {
		metrics.RecordAdmission(core.ReportTypeDomain, false)
		return nil, err
	}

	fp := Fingerprint(core.ReportTypeDomain, core.NormalizeDomain(domain))
	if cached, ok := g.Cache.Get(fp); ok {
		g.Quota.Release(sub)
		metrics.RecordCacheLookup(true)
		metrics.RecordAdmission(core.ReportTypeDomain, true)
		cached.FromCache = true
		return &cached, nil
	}
	metrics.RecordCacheLookup(false)

	report := g.Analyzer.DomainOverview(ctx, domain)
	// Charge before caching so a failed charge cannot leave an uncharged
	// result behind for the retry to hit.
	if err := g.Quota.Commit(ctx, sub); err != nil {
		return nil, err
	}
	g.Cache.Put(fp, *report)
	err = g.History.AppendReport(ctx, sub.APIKey, &core.HistoryRecord{
		Type:      core.ReportTypeDomain,
		Query:     domain,
		Score:     report.SEOScore,
		CreatedAt: g.now(),
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordAdmission(core.ReportTypeDomain, true)
	return report, nil
}

// KeywordResearch serves keyword research. Keyword reports are considered
// time-sensitive and are not cached.
func (g *Gateway) KeywordResearch(ctx context.Context, apiKey, keyword, country string) (*core.KeywordReport, error) {
	sub, err := g.Authenticate(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if err := g.admit(ctx, sub); err != nil {
		metrics.RecordAdmission(core.ReportTypeKeyword, false)
		return nil, err
	}

	report := g.Analyzer.KeywordResearch(ctx, keyword, country)
	if err := g.Quota.Commit(ctx, sub); err != nil {
		return nil, err
	}
	err = g.History.AppendReport(ctx, sub.APIKey, &core.HistoryRecord{
		Type:      core.ReportTypeKeyword,
		Query:     keyword,
		Score:     report.MonthlyVolume,
		CreatedAt: g.now(),
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordAdmission(core.ReportTypeKeyword, true)
	return report, nil
}

// SiteAudit serves a site audit. Audit results are low-reuse and are not
// cached.
func (g *Gateway) SiteAudit(ctx context.Context, apiKey, url string) (*core.AuditReport, error) {
	sub, err := g.Authenticate(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if err := g.admit(ctx, sub); err != nil {
		metrics.RecordAdmission(core.ReportTypeAudit, false)
		return nil, err
	}

	report := g.Analyzer.SiteAudit(ctx, url)
	if err := g.Quota.Commit(ctx, sub); err != nil {
		return nil, err
	}
	err = g.History.AppendReport(ctx, sub.APIKey, &core.HistoryRecord{
		Type:      core.ReportTypeAudit,
		Query:     url,
		Score:     report.HealthScore,
		CreatedAt: g.now(),
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordAdmission(core.ReportTypeAudit, true)
	return report, nil
}

// HistoryPage is the per-subscriber history listing with current quota.
type HistoryPage struct {
	Reports    []core.HistoryRecord `json:"reports"`
	QuotaUsed  int                  `json:"quota_used"`
	QuotaLimit int                  `json:"quota_limit"`
}

// RecentHistory returns the subscriber's most recent n reports plus
// current usage against the plan ceiling.
func (g *Gateway) RecentHistory(ctx context.Context, apiKey string, n int) (*HistoryPage, error) {
	sub, err := g.Authenticate(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	reports, err := g.History.RecentReports(ctx, sub.APIKey, n)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []core.HistoryRecord{}
	}

	return &HistoryPage{
		Reports:    reports,
		QuotaUsed:  sub.ReportsThisPeriod,
		QuotaLimit: core.PlanFor(sub.Plan).ReportsPerMonth,
	}, nil
}

// Provision turns a billing event into a new subscriber with a freshly
// generated credential and zero usage.
func (g *Gateway) Provision(ctx context.Context, event core.BillingEvent) (*core.Subscriber, error) {
	plan := event.Plan
	if !core.ValidTier(plan) {
		plan = core.PlanStarter
	}

	key, err := newAPIKey()
	if err != nil {
		return nil, err
	}

	sub := &core.Subscriber{
		APIKey:    key,
		Email:     event.Email,
		Plan:      plan,
		CreatedAt: g.now(),
	}
	if err := g.Accounts.CreateSubscriber(ctx, sub); err != nil {
		return nil, err
	}

	metrics.RecordSubscriberProvisioned(plan)
	return sub, nil
}

// Snapshot is the operational metrics view of the gateway.
type Snapshot struct {
	CacheHits         int64     `json:"cache_hits"`
	CacheMisses       int64     `json:"cache_misses"`
	CacheHitRate      float64   `json:"cache_hit_rate"`
	CachedEntries     int       `json:"cached_entries"`
	ActiveSubscribers int       `json:"active_users"`
	RateLimiters      int       `json:"rate_limiters"`
	Timestamp         time.Time `json:"timestamp"`
}

// CurrentSnapshot aggregates live process-wide counters. Read-only.
func (g *Gateway) CurrentSnapshot(ctx context.Context) (*Snapshot, error) {
	subscribers, err := g.Accounts.CountSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	hits := g.Cache.Hits()
	misses := g.Cache.Misses()
	total := hits + misses
	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total) * 100
	}

	return &Snapshot{
		CacheHits:         hits,
		CacheMisses:       misses,
		CacheHitRate:      rate,
		CachedEntries:     g.Cache.Len(),
		ActiveSubscribers: subscribers,
		RateLimiters:      g.Limiter.Len(),
		Timestamp:         g.now(),
	}, nil
}

func (g *Gateway) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now().UTC()
}

// newAPIKey generates an opaque subscriber credential.
func newAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return "seo_" + base64.RawURLEncoding.EncodeToString(buf), nil
}
