package handlers

import (
	"net/http"

	apperrors "github.com/rankgate/rankgate/internal/errors"
)

// historyPageSize caps the history listing at the HTTP surface.
const historyPageSize = 20

// HistoryHandler serves GET /history: the caller's most recent reports
// plus current usage against the plan ceiling.
func (a *API) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	page, err := a.Gateway.RecentHistory(r.Context(), r.Header.Get(APIKeyHeader), historyPageSize)
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAdmission(r.Context(), err))
		return
	}

	respondJSON(w, page)
}
