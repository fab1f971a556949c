package engine

import (
	"sync"
	"time"

	"github.com/rankgate/rankgate/internal/core"
)

// Bucket is a per-subscriber token bucket. Tokens accumulate at the plan
// refill rate up to the plan burst capacity and one token is consumed per
// granted request. Refill and consume happen as one atomic step under the
// bucket mutex.
type Bucket struct {
	mu         sync.Mutex
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	clock      func() time.Time
}

// NewBucket creates a full bucket bound to the given plan parameters.
func NewBucket(plan core.Plan, clock func() time.Time) *Bucket {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Bucket{
		rate:       plan.Rate,
		capacity:   float64(plan.Burst),
		tokens:     float64(plan.Burst),
		lastRefill: clock(),
		clock:      clock,
	}
}

// Allow refills the bucket for the elapsed time and consumes one token if
// available. A denial is immediate; the limiter never queues or waits.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock()
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Tokens returns the current token level without consuming.
func (b *Bucket) Tokens() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokens
}

// LimiterRegistry holds one bucket per subscriber, created lazily on the
// first rate-gated request. Plan parameters are bound at creation time; a
// later plan upgrade does not resize an existing bucket.
type LimiterRegistry struct {
	mu      sync.Mutex
	buckets map[string]*Bucket

	// Clock overrides time.Now for buckets created by this registry.
	Clock func() time.Time
}

// NewLimiterRegistry creates an empty registry.
func NewLimiterRegistry() *LimiterRegistry {
	return &LimiterRegistry{buckets: make(map[string]*Bucket)}
}

// Bucket returns the subscriber's bucket, creating it from the plan on
// first use. The registry mutex makes check-then-insert resolve to exactly
// one bucket per subscriber under concurrent first requests.
func (r *LimiterRegistry) Bucket(apiKey string, plan core.Plan) *Bucket {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.buckets[apiKey]; ok {
		return b
	}
	b := NewBucket(plan, r.Clock)
	r.buckets[apiKey] = b
	return b
}

// Allow is the admission contract: one token from the subscriber's bucket.
func (r *LimiterRegistry) Allow(apiKey string, plan core.Plan) bool {
	return r.Bucket(apiKey, plan).Allow()
}

// Len returns the number of live buckets, for the metrics snapshot.
func (r *LimiterRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}
