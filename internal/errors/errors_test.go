package errors

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rankgate/rankgate/internal/core"
)

func TestFromAdmissionMapping(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"unauthenticated", core.ErrUnauthenticated, "UNAUTHORIZED", http.StatusUnauthorized},
		{"quota", &core.QuotaExceededError{Used: 10, Limit: 10}, "QUOTA_EXCEEDED", http.StatusTooManyRequests},
		{"rate", core.ErrRateLimited, "RATE_LIMITED", http.StatusTooManyRequests},
		{"billing", core.ErrBillingNotConfigured, "CONFIG_INVALID", http.StatusInternalServerError},
		{"store", context.DeadlineExceeded, "DATABASE_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			envelope := FromAdmission(ctx, tc.err)
			require.Equal(t, tc.wantCode, envelope.Code)
			require.Equal(t, tc.wantStatus, HTTPStatusFromEnvelope(envelope))
			require.NotEmpty(t, envelope.CorrelationID)
		})
	}
}

func TestHTTPStatusFromCodeDefaultsToInternal(t *testing.T) {
	require.Equal(t, http.StatusInternalServerError, HTTPStatusFromCode("SOMETHING_NEW"))
}

func TestEnsureEnvelopePassthrough(t *testing.T) {
	original := NewInvalidInputError("bad domain")
	require.Same(t, original, EnsureEnvelope(original))

	wrapped := EnsureEnvelope(context.Canceled)
	require.Equal(t, "INTERNAL_ERROR", wrapped.Code)
}
