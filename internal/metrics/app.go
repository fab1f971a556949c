package metrics

import (
	"github.com/rankgate/rankgate/internal/core"
	"github.com/rankgate/rankgate/internal/observability"
)

// Application metric names following Prometheus conventions.
const (
	AdmissionsTotal        = "gateway_admissions_total"
	CacheLookupsTotal      = "gateway_cache_lookups_total"
	SubscribersProvisioned = "gateway_subscribers_provisioned_total"
)

// RecordAdmission records a pipeline decision for a report type.
func RecordAdmission(report core.ReportType, allowed bool) {
	status := "allowed"
	if !allowed {
		status = "denied"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			AdmissionsTotal,
			1,
			map[string]string{
				"report": string(report),
				"status": status,
			},
		)
	}
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	outcome := "hit"
	if !hit {
		outcome = "miss"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			CacheLookupsTotal,
			1,
			map[string]string{"outcome": outcome},
		)
	}
}

// RecordSubscriberProvisioned records a billing-driven account creation.
func RecordSubscriberProvisioned(plan core.PlanTier) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			SubscribersProvisioned,
			1,
			map[string]string{"plan": string(plan)},
		)
	}
}
