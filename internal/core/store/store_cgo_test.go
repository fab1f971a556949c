//go:build cgo

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rankgate/rankgate/internal/config"
	"github.com/rankgate/rankgate/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenMemoryStore(t *testing.T) {
	store := openTestStore(t)
	require.Equal(t, "libsql", store.Driver())
}

func TestSubscriberRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sub := &core.Subscriber{
		APIKey:    "seo_testkey",
		Email:     "test@example.com",
		Plan:      core.PlanProfessional,
		CreatedAt: created,
	}
	require.NoError(t, store.CreateSubscriber(ctx, sub))

	got, err := store.GetSubscriber(ctx, "seo_testkey")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "test@example.com", got.Email)
	require.Equal(t, core.PlanProfessional, got.Plan)
	require.Zero(t, got.ReportsThisPeriod)
	require.Equal(t, created, got.CreatedAt)

	count, err := store.CountSubscribers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestGetSubscriberUnknownKey(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	got, err := store.GetSubscriber(ctx, "seo_missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCreateSubscriberDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	sub := &core.Subscriber{APIKey: "seo_dup", Email: "a@example.com", Plan: core.PlanStarter, CreatedAt: time.Now()}
	require.NoError(t, store.CreateSubscriber(ctx, sub))
	require.Error(t, store.CreateSubscriber(ctx, sub))
}

func TestAddUsage(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	sub := &core.Subscriber{APIKey: "seo_usage", Email: "u@example.com", Plan: core.PlanStarter, CreatedAt: time.Now()}
	require.NoError(t, store.CreateSubscriber(ctx, sub))

	require.NoError(t, store.AddUsage(ctx, "seo_usage", 1))
	require.NoError(t, store.AddUsage(ctx, "seo_usage", 1))

	got, err := store.GetSubscriber(ctx, "seo_usage")
	require.NoError(t, err)
	require.Equal(t, 2, got.ReportsThisPeriod)
}

func TestAddUsageUnknownKey(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.Error(t, store.AddUsage(ctx, "seo_missing", 1))
}

func TestReportHistory(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	sub := &core.Subscriber{APIKey: "seo_hist", Email: "h@example.com", Plan: core.PlanStarter, CreatedAt: time.Now()}
	require.NoError(t, store.CreateSubscriber(ctx, sub))

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, q := range []string{"one.com", "two.com", "three.com"} {
		require.NoError(t, store.AppendReport(ctx, "seo_hist", &core.HistoryRecord{
			Type:      core.ReportTypeDomain,
			Query:     q,
			Score:     70 + i,
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	// Capped at the two most recent, append order preserved.
	records, err := store.RecentReports(ctx, "seo_hist", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "two.com", records[0].Query)
	require.Equal(t, "three.com", records[1].Query)
	require.Equal(t, 72, records[1].Score)

	all, err := store.RecentReports(ctx, "seo_hist", 20)
	require.NoError(t, err)
	require.Len(t, all, 3)

	none, err := store.RecentReports(ctx, "seo_other", 20)
	require.NoError(t, err)
	require.Empty(t, none)
}
