package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rankgate/rankgate/internal/core"
)

// GetSubscriber returns the subscriber owning the API key, or nil when
// the credential is unknown.
func (s *Store) GetSubscriber(ctx context.Context, apiKey string) (*core.Subscriber, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, nil
	}

	var (
		email     string
		plan      string
		reports   int
		createdAt int64
	)

	row := s.DB.QueryRowContext(ctx, `
		SELECT email, plan, reports_this_period, created_at
		FROM subscribers
		WHERE api_key = ?
	`, apiKey)

	if err := row.Scan(&email, &plan, &reports, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch subscriber: %w", err)
	}

	return &core.Subscriber{
		APIKey:            apiKey,
		Email:             email,
		Plan:              core.PlanTier(plan),
		ReportsThisPeriod: reports,
		CreatedAt:         time.Unix(createdAt, 0).UTC(),
	}, nil
}

// CreateSubscriber inserts a freshly provisioned subscriber. The API key
// must be previously unseen.
func (s *Store) CreateSubscriber(ctx context.Context, sub *core.Subscriber) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if sub == nil || strings.TrimSpace(sub.APIKey) == "" {
		return errors.New("subscriber api key is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO subscribers (api_key, email, plan, reports_this_period, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, sub.APIKey, sub.Email, string(sub.Plan), sub.ReportsThisPeriod, sub.CreatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}

	return nil
}

// AddUsage increments the subscriber's current-period usage counter.
func (s *Store) AddUsage(ctx context.Context, apiKey string, n int) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	result, err := s.DB.ExecContext(ctx, `
		UPDATE subscribers
		SET reports_this_period = reports_this_period + ?
		WHERE api_key = ?
	`, n, strings.TrimSpace(apiKey))
	if err != nil {
		return fmt.Errorf("update subscriber usage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subscriber usage: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update subscriber usage: unknown api key")
	}

	return nil
}

// CountSubscribers returns the number of known subscribers.
func (s *Store) CountSubscribers(ctx context.Context) (int, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}

	return count, nil
}
