package handlers

import (
	"crypto/hmac"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rankgate/rankgate/internal/core"
	apperrors "github.com/rankgate/rankgate/internal/errors"
	"github.com/rankgate/rankgate/internal/observability"
)

// BillingSignatureHeader carries the shared-secret signature on billing
// events.
const BillingSignatureHeader = "X-Billing-Signature"

// BillingEventResponse acknowledges a processed provisioning event.
type BillingEventResponse struct {
	Received bool `json:"received"`
}

// BillingEventHandler serves POST /billing/events: turns a checkout
// completion into a new subscriber with a fresh credential and zero
// usage. Requires the billing webhook secret to be configured.
func (a *API) BillingEventHandler(w http.ResponseWriter, r *http.Request) {
	if a.WebhookSecret == "" {
		apperrors.RespondWithEnvelope(w, r,
			apperrors.FromAdmission(r.Context(), core.ErrBillingNotConfigured))
		return
	}

	signature := r.Header.Get(BillingSignatureHeader)
	if !hmac.Equal([]byte(signature), []byte(a.WebhookSecret)) {
		apperrors.RespondWithEnvelope(w, r,
			apperrors.NewUnauthorizedError("invalid billing event signature"))
		return
	}

	var event core.BillingEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		apperrors.RespondWithEnvelope(w, r,
			apperrors.NewInvalidInputError("billing event body must be valid JSON"))
		return
	}
	if strings.TrimSpace(event.Email) == "" {
		apperrors.RespondWithEnvelope(w, r,
			apperrors.NewInvalidInputError("billing event email is required"))
		return
	}

	sub, err := a.Gateway.Provision(r.Context(), event)
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAdmission(r.Context(), err))
		return
	}

	if observability.ServerLogger != nil {
		observability.ServerLogger.Info("New subscriber provisioned",
			zap.String("email", sub.Email),
			zap.String("plan", string(sub.Plan)))
	}

	respondJSON(w, BillingEventResponse{Received: true})
}
