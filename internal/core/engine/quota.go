package engine

import (
	"context"
	"sync"

	"github.com/rankgate/rankgate/internal/core"
)

// AccountStore is the subscriber persistence the accountant and gateway
// depend on.
type AccountStore interface {
	GetSubscriber(ctx context.Context, apiKey string) (*core.Subscriber, error)
	CreateSubscriber(ctx context.Context, sub *core.Subscriber) error
	AddUsage(ctx context.Context, apiKey string, n int) error
	CountSubscribers(ctx context.Context) (int, error)
}

// Accountant enforces the monthly plan ceiling on billable operations.
//
// Usage is charged only after a billable operation actually completes, so
// the accountant tracks in-flight reservations per subscriber: Reserve
// counts persisted usage plus reservations against the ceiling, Commit
// converts one reservation into persisted usage, and Release drops a
// reservation without charging (rate-limit denial or cache hit). Reserve
// re-reads usage from the store under the accountant lock, and Commit
// holds its reservation until the charge is persisted, so two concurrent
// requests cannot both claim a single remaining quota slot no matter how
// stale their authentication-time snapshots are.
type Accountant struct {
	store AccountStore

	mu       sync.Mutex
	inflight map[string]int
}

// NewAccountant creates an accountant over the given account store.
func NewAccountant(store AccountStore) *Accountant {
	return &Accountant{
		store:    store,
		inflight: make(map[string]int),
	}
}

// Check reports whether the subscriber is under the plan ceiling,
// disregarding in-flight reservations. Unlimited plans always pass.
func (a *Accountant) Check(sub *core.Subscriber) error {
	plan := core.PlanFor(sub.Plan)
	if plan.Unlimited() {
		return nil
	}
	if sub.ReportsThisPeriod >= plan.ReportsPerMonth {
		return &core.QuotaExceededError{Used: sub.ReportsThisPeriod, Limit: plan.ReportsPerMonth}
	}
	return nil
}

// Reserve claims one quota slot for the subscriber. Persisted usage plus
// reservations must stay under the ceiling. The subscriber snapshot may
// be stale by the time Reserve runs, so usage is re-read from the store
// under the lock; a commit that landed after the caller authenticated
// still counts.
func (a *Accountant) Reserve(ctx context.Context, sub *core.Subscriber) error {
	plan := core.PlanFor(sub.Plan)
	if plan.Unlimited() {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	used := sub.ReportsThisPeriod
	fresh, err := a.store.GetSubscriber(ctx, sub.APIKey)
	if err != nil {
		return err
	}
	if fresh != nil {
		used = fresh.ReportsThisPeriod
	}

	if used+a.inflight[sub.APIKey] >= plan.ReportsPerMonth {
		return &core.QuotaExceededError{Used: used, Limit: plan.ReportsPerMonth}
	}
	a.inflight[sub.APIKey]++
	return nil
}

// Commit charges one unit of usage for a completed billable operation.
// The reservation is held until the charge is persisted so a concurrent
// Reserve cannot slip into the slot mid-write; a failed write frees the
// slot without charging.
func (a *Accountant) Commit(ctx context.Context, sub *core.Subscriber) error {
	err := a.store.AddUsage(ctx, sub.APIKey, 1)
	a.release(sub)
	return err
}

// Release drops a reservation without charging. Called when the pipeline
// stops after the quota check without performing new computation.
func (a *Accountant) Release(sub *core.Subscriber) {
	a.release(sub)
}

func (a *Accountant) release(sub *core.Subscriber) {
	if core.PlanFor(sub.Plan).Unlimited() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if n := a.inflight[sub.APIKey]; n > 1 {
		a.inflight[sub.APIKey] = n - 1
	} else {
		delete(a.inflight, sub.APIKey)
	}
}
