package core

import (
	"errors"
	"fmt"
)

// Gateway-level admission errors. These reject a request before any
// analysis work happens; collaborator failures never surface here.
var (
	// ErrUnauthenticated means the credential is missing or unknown.
	ErrUnauthenticated = errors.New("invalid or missing API key")

	// ErrRateLimited means no token was available in the subscriber's
	// bucket. Transient; the caller is expected to retry later.
	ErrRateLimited = errors.New("rate limit exceeded, slow down or upgrade your plan")

	// ErrBillingNotConfigured means the billing integration is not set up.
	ErrBillingNotConfigured = errors.New("billing integration is not configured")
)

// QuotaExceededError means the subscriber's usage reached the plan
// ceiling. Recoverable only by upgrading or waiting for the period reset.
type QuotaExceededError struct {
	Used  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly quota exceeded (%d/%d), upgrade your plan", e.Used, e.Limit)
}
