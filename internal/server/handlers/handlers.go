// Package handlers implements the HTTP surface of the admission gateway.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rankgate/rankgate/internal/core/engine"
)

// API bundles the dependencies shared by the request handlers.
type API struct {
	Gateway       *engine.Gateway
	WebhookSecret string
	Version       string
}

// New creates the handler set over a gateway.
func New(gateway *engine.Gateway, webhookSecret, version string) *API {
	return &API{
		Gateway:       gateway,
		WebhookSecret: webhookSecret,
		Version:       version,
	}
}

// respondJSON writes a 200 JSON response.
func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
