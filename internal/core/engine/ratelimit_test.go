package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rankgate/rankgate/internal/core"
)

func TestBucketStartsFull(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := NewBucket(core.PlanFor(core.PlanStarter), func() time.Time { return now })

	require.Equal(t, 3.0, b.Tokens())
}

func TestBucketBurstThenDeny(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := NewBucket(core.PlanFor(core.PlanStarter), func() time.Time { return now })

	// Burst capacity is 3; the fourth immediate request is denied.
	require.True(t, b.Allow())
	require.True(t, b.Allow())
	require.True(t, b.Allow())
	require.False(t, b.Allow())
}

func TestBucketRefillRate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := NewBucket(core.PlanFor(core.PlanStarter), func() time.Time { return now })

	for i := 0; i < 3; i++ {
		require.True(t, b.Allow())
	}
	require.False(t, b.Allow())

	// Starter refills at 0.05 tokens/s: 10s is not enough for a whole
	// token, 20s is exactly one.
	now = now.Add(10 * time.Second)
	require.False(t, b.Allow())

	now = now.Add(10 * time.Second)
	require.True(t, b.Allow())
	require.False(t, b.Allow())
}

func TestBucketCapsAtCapacity(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := NewBucket(core.PlanFor(core.PlanProfessional), func() time.Time { return now })

	// A long idle period must not accumulate past the burst capacity.
	now = now.Add(24 * time.Hour)
	for i := 0; i < 10; i++ {
		require.True(t, b.Allow())
	}
	require.False(t, b.Allow())
}

func TestBucketClockSkew(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := NewBucket(core.PlanFor(core.PlanStarter), func() time.Time { return now })

	require.True(t, b.Allow())
	tokens := b.Tokens()

	// A backwards clock step never drains or refills the bucket.
	now = now.Add(-time.Hour)
	require.True(t, b.Allow())
	require.Equal(t, tokens-1, b.Tokens())
}

func TestRegistryOneBucketPerSubscriber(t *testing.T) {
	r := NewLimiterRegistry()
	plan := core.PlanFor(core.PlanStarter)

	a := r.Bucket("key-a", plan)
	require.Same(t, a, r.Bucket("key-a", plan))
	require.NotSame(t, a, r.Bucket("key-b", plan))
	require.Equal(t, 2, r.Len())
}

func TestRegistryIndependentBuckets(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := NewLimiterRegistry()
	r.Clock = func() time.Time { return now }
	plan := core.PlanFor(core.PlanStarter)

	for i := 0; i < 3; i++ {
		require.True(t, r.Allow("key-a", plan))
	}
	require.False(t, r.Allow("key-a", plan))

	// Exhausting one subscriber's bucket leaves the other untouched.
	require.True(t, r.Allow("key-b", plan))
}

func TestRegistryKeepsOriginalPlan(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := NewLimiterRegistry()
	r.Clock = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		require.True(t, r.Allow("key-a", core.PlanFor(core.PlanStarter)))
	}

	// Plan parameters bind at bucket creation; passing a bigger plan
	// later does not resize the bucket.
	require.False(t, r.Allow("key-a", core.PlanFor(core.PlanAgency)))
}
