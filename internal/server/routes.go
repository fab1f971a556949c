package server

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes() {
	// Billable analysis operations, gated by the admission pipeline
	s.router.Post("/domain", s.api.DomainOverviewHandler)
	s.router.Post("/keywords", s.api.KeywordResearchHandler)
	s.router.Post("/audit", s.api.SiteAuditHandler)

	// Subscriber administrative surface
	s.router.Get("/history", s.api.HistoryHandler)
	s.router.Get("/plans", s.api.PlansHandler)

	// Billing provisioning intake
	s.router.Post("/billing/events", s.api.BillingEventHandler)

	// Operational surface
	s.router.Get("/metrics", s.api.MetricsHandler)
	s.router.Get("/health", s.health.HealthHandler)
	s.router.Get("/health/live", s.health.LivenessHandler)
	s.router.Get("/health/ready", s.health.ReadinessHandler)
	s.router.Get("/version", s.api.VersionHandler)
}
