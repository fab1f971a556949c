package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/rankgate/rankgate/internal/errors"
)

// APIKeyHeader carries the subscriber credential.
const APIKeyHeader = "X-API-Key"

// DomainRequest asks for a domain overview.
type DomainRequest struct {
	Domain string `json:"domain"`
}

// KeywordRequest asks for keyword research.
type KeywordRequest struct {
	Keyword string `json:"keyword"`
	Country string `json:"country"`
}

// AuditRequest asks for a site audit.
type AuditRequest struct {
	URL string `json:"url"`
}

// DomainOverviewHandler serves POST /domain.
func (a *API) DomainOverviewHandler(w http.ResponseWriter, r *http.Request) {
	var req DomainRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Domain) == "" {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInvalidInputError("domain is required"))
		return
	}

	report, err := a.Gateway.DomainOverview(r.Context(), r.Header.Get(APIKeyHeader), req.Domain)
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAdmission(r.Context(), err))
		return
	}

	respondJSON(w, report)
}

// KeywordResearchHandler serves POST /keywords.
func (a *API) KeywordResearchHandler(w http.ResponseWriter, r *http.Request) {
	var req KeywordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInvalidInputError("keyword is required"))
		return
	}

	report, err := a.Gateway.KeywordResearch(r.Context(), r.Header.Get(APIKeyHeader), req.Keyword, req.Country)
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAdmission(r.Context(), err))
		return
	}

	respondJSON(w, report)
}

// SiteAuditHandler serves POST /audit.
func (a *API) SiteAuditHandler(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInvalidInputError("url is required"))
		return
	}

	report, err := a.Gateway.SiteAudit(r.Context(), r.Header.Get(APIKeyHeader), req.URL)
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAdmission(r.Context(), err))
		return
	}

	respondJSON(w, report)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInvalidInputError("request body must be valid JSON"))
		return false
	}
	return true
}
