package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rankgate/rankgate/internal/core"
)

// memoryStore is an in-memory AccountStore + HistoryStore for tests.
type memoryStore struct {
	mu          sync.Mutex
	subscribers map[string]*core.Subscriber
	history     map[string][]core.HistoryRecord
}

func newMemoryStore(subs ...*core.Subscriber) *memoryStore {
	m := &memoryStore{
		subscribers: make(map[string]*core.Subscriber),
		history:     make(map[string][]core.HistoryRecord),
	}
	for _, s := range subs {
		copied := *s
		m.subscribers[s.APIKey] = &copied
	}
	return m
}

func (m *memoryStore) GetSubscriber(ctx context.Context, apiKey string) (*core.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscribers[apiKey]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (m *memoryStore) CreateSubscriber(ctx context.Context, sub *core.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subscribers[sub.APIKey]; ok {
		return fmt.Errorf("subscriber exists: %s", sub.APIKey)
	}
	copied := *sub
	m.subscribers[sub.APIKey] = &copied
	return nil
}

func (m *memoryStore) AddUsage(ctx context.Context, apiKey string, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscribers[apiKey]
	if !ok {
		return fmt.Errorf("no subscriber: %s", apiKey)
	}
	sub.ReportsThisPeriod += n
	return nil
}

func (m *memoryStore) CountSubscribers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers), nil
}

func (m *memoryStore) AppendReport(ctx context.Context, apiKey string, record *core.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[apiKey] = append(m.history[apiKey], *record)
	return nil
}

func (m *memoryStore) RecentReports(ctx context.Context, apiKey string, n int) ([]core.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := m.history[apiKey]
	if len(records) > n {
		records = records[len(records)-n:]
	}
	out := make([]core.HistoryRecord, len(records))
	copy(out, records)
	return out, nil
}

func (m *memoryStore) usage(apiKey string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.subscribers[apiKey]; ok {
		return sub.ReportsThisPeriod
	}
	return 0
}

func TestAccountantCheckUnderCeiling(t *testing.T) {
	a := NewAccountant(newMemoryStore())
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter, ReportsThisPeriod: 9}

	require.NoError(t, a.Check(sub))
}

func TestAccountantCheckAtCeiling(t *testing.T) {
	a := NewAccountant(newMemoryStore())
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter, ReportsThisPeriod: 10}

	err := a.Check(sub)
	var quotaErr *core.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	require.Equal(t, 10, quotaErr.Used)
	require.Equal(t, 10, quotaErr.Limit)
}

func TestAccountantUnlimitedPlan(t *testing.T) {
	a := NewAccountant(newMemoryStore())
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanAgency, ReportsThisPeriod: 100000}

	require.NoError(t, a.Check(sub))
	require.NoError(t, a.Reserve(context.Background(), sub))
}

func TestAccountantReserveCommit(t *testing.T) {
	store := newMemoryStore(&core.Subscriber{APIKey: "k", Plan: core.PlanStarter})
	a := NewAccountant(store)
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter}

	require.NoError(t, a.Reserve(context.Background(), sub))
	require.NoError(t, a.Commit(context.Background(), sub))
	require.Equal(t, 1, store.usage("k"))
}

func TestAccountantReleaseDoesNotCharge(t *testing.T) {
	store := newMemoryStore(&core.Subscriber{APIKey: "k", Plan: core.PlanStarter})
	a := NewAccountant(store)
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter}

	require.NoError(t, a.Reserve(context.Background(), sub))
	a.Release(sub)
	require.Equal(t, 0, store.usage("k"))

	// The released slot is available again.
	require.NoError(t, a.Reserve(context.Background(), sub))
}

func TestAccountantLastSlotSingleWinner(t *testing.T) {
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter, ReportsThisPeriod: 9}
	a := NewAccountant(newMemoryStore(sub))

	// One slot left: exactly one of two concurrent reservations wins.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = a.Reserve(context.Background(), sub)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
		} else {
			var quotaErr *core.QuotaExceededError
			require.ErrorAs(t, err, &quotaErr)
		}
	}
	require.Equal(t, 1, granted)
}

func TestAccountantReservationsCountAgainstCeiling(t *testing.T) {
	sub := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter, ReportsThisPeriod: 8}
	a := NewAccountant(newMemoryStore(sub))

	require.NoError(t, a.Reserve(context.Background(), sub))
	require.NoError(t, a.Reserve(context.Background(), sub))

	err := a.Reserve(context.Background(), sub)
	var quotaErr *core.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
}

func TestAccountantReserveSeesFreshUsage(t *testing.T) {
	// The caller's snapshot predates a charge that filled the last slot.
	store := newMemoryStore(&core.Subscriber{APIKey: "k", Plan: core.PlanStarter, ReportsThisPeriod: 10})
	a := NewAccountant(store)
	stale := &core.Subscriber{APIKey: "k", Plan: core.PlanStarter, ReportsThisPeriod: 9}

	err := a.Reserve(context.Background(), stale)
	var quotaErr *core.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	require.Equal(t, 10, quotaErr.Used)
}
