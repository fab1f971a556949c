package handlers

import (
	"net/http"

	"github.com/rankgate/rankgate/internal/core"
)

// PlansResponse is the static plans listing.
type PlansResponse struct {
	Plans []core.Plan `json:"plans"`
}

// PlansHandler serves GET /plans.
func (a *API) PlansHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, PlansResponse{Plans: core.Plans()})
}
