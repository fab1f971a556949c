package handlers

import (
	"net/http"
	"runtime"
	"time"
)

// VersionResponse reports build metadata.
type VersionResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Timestamp string `json:"timestamp"`
}

// VersionHandler serves GET /version.
func (a *API) VersionHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, VersionResponse{
		Service:   "rankgate",
		Version:   a.Version,
		GoVersion: runtime.Version(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
