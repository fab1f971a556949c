package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rankgate/rankgate/internal/core"
)

// DefaultCacheTTL bounds how long a cached report is served.
const DefaultCacheTTL = 24 * time.Hour

// Fingerprint derives the cache key for a report request from its
// normalized input.
func Fingerprint(kind core.ReportType, input string) string {
	sum := sha256.Sum256([]byte(string(kind) + ":" + input))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	report   core.DomainReport
	cachedAt time.Time
}

// ReportCache memoizes domain reports by fingerprint for a bounded TTL.
// Expired entries behave as misses and stay in place until overwritten;
// there is no eviction beyond TTL staleness. Every lookup updates the
// process-wide hit/miss counters.
type ReportCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	hits    atomic.Int64
	misses  atomic.Int64

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// NewReportCache creates an empty cache. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ReportCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns a copy of the cached report when the entry exists and is
// younger than the TTL. Anything else is a miss.
func (c *ReportCache) Get(fingerprint string) (core.DomainReport, bool) {
	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.cachedAt) < c.ttl {
		c.hits.Add(1)
		return entry.report, true
	}
	c.misses.Add(1)
	return core.DomainReport{}, false
}

// Put stores the report under the fingerprint, overwriting any previous
// entry and restarting its TTL window.
func (c *ReportCache) Put(fingerprint string, report core.DomainReport) {
	c.mu.Lock()
	c.entries[fingerprint] = cacheEntry{report: report, cachedAt: c.now()}
	c.mu.Unlock()
}

// Hits returns the process-wide hit counter.
func (c *ReportCache) Hits() int64 { return c.hits.Load() }

// Misses returns the process-wide miss counter.
func (c *ReportCache) Misses() int64 { return c.misses.Load() }

// Len returns the number of physically present entries, expired included.
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ReportCache) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now().UTC()
}
