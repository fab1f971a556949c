package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rankgate/rankgate/internal/core"
)

// AppendReport appends one record to the subscriber's report log.
func (s *Store) AppendReport(ctx context.Context, apiKey string, record *core.HistoryRecord) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if record == nil {
		return errors.New("history record is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("subscriber api key is required")
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO reports (api_key, report_type, query, score, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, apiKey, string(record.Type), record.Query, record.Score, createdAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("append report: %w", err)
	}

	return nil
}

// RecentReports returns the subscriber's most recent n records, newest
// last to preserve the log's append order.
func (s *Store) RecentReports(ctx context.Context, apiKey string, n int) ([]core.HistoryRecord, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if n <= 0 {
		return []core.HistoryRecord{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT report_type, query, score, created_at
		FROM (
			SELECT id, report_type, query, score, created_at
			FROM reports
			WHERE api_key = ?
			ORDER BY id DESC
			LIMIT ?
		)
		ORDER BY id ASC
	`, strings.TrimSpace(apiKey), n)
	if err != nil {
		return nil, fmt.Errorf("fetch reports: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	records := make([]core.HistoryRecord, 0, n)
	for rows.Next() {
		var (
			reportType string
			query      string
			score      int
			createdAt  int64
		)
		if err := rows.Scan(&reportType, &query, &score, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, core.HistoryRecord{
			Type:      core.ReportType(reportType),
			Query:     query,
			Score:     score,
			CreatedAt: time.Unix(createdAt, 0).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch reports: %w", err)
	}

	return records, nil
}
