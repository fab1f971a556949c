// Package analyzer implements the analysis collaborators behind the
// admission gateway: domain overview, keyword research, and site audit.
//
// Collaborator contract: ordinary network failures are never returned as
// errors. They fold into a zero-scored, degraded report with a
// descriptive note, so the caller is still charged for the attempt.
package analyzer

import (
	"net/http"
	"time"

	"github.com/openrdap/rdap"

	"github.com/rankgate/rankgate/internal/config"
)

const userAgent = "Mozilla/5.0 (compatible; RankGateBot/1.0)"

// Service performs the real analyses over the public web.
type Service struct {
	fetchClient *http.Client
	auditClient *http.Client
	rdapClient  *rdap.Client
	rdapEnabled bool

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// New creates a service with clients bounded by the analyzer config.
func New(cfg config.AnalyzerConfig) *Service {
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	auditTimeout := cfg.AuditTimeout
	if auditTimeout <= 0 {
		auditTimeout = 15 * time.Second
	}

	return &Service{
		fetchClient: &http.Client{Timeout: fetchTimeout},
		auditClient: &http.Client{Timeout: auditTimeout},
		rdapClient:  &rdap.Client{},
		rdapEnabled: cfg.RDAPEnabled,
	}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

func (s *Service) timestamp() string {
	return s.now().Format(time.RFC3339)
}
