package handlers

import (
	"net/http"

	apperrors "github.com/rankgate/rankgate/internal/errors"
)

// MetricsHandler serves GET /metrics: the live JSON snapshot of the
// gateway's operational counters. The Prometheus exporter runs on its
// own port; this endpoint stays dashboard-friendly JSON.
func (a *API) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.Gateway.CurrentSnapshot(r.Context())
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAdmission(r.Context(), err))
		return
	}

	respondJSON(w, snapshot)
}
