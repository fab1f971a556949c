package core

// UnlimitedReports is the plan ceiling sentinel for unlimited monthly usage.
const UnlimitedReports = -1

// Plan is the static configuration for a subscription tier.
type Plan struct {
	Tier            PlanTier `json:"tier"`
	Name            string   `json:"name"`
	PriceUSD        int      `json:"price"`
	ReportsPerMonth int      `json:"reports_per_month"`
	Rate            float64  `json:"rate_per_second"`
	Burst           int      `json:"burst"`
	Features        []string `json:"features"`
}

// Unlimited reports true when the plan has no monthly ceiling.
func (p Plan) Unlimited() bool {
	return p.ReportsPerMonth == UnlimitedReports
}

var plans = map[PlanTier]Plan{
	PlanStarter: {
		Tier:            PlanStarter,
		Name:            "Starter",
		PriceUSD:        49,
		ReportsPerMonth: 10,
		Rate:            0.05,
		Burst:           3,
		Features:        []string{"10 reports/month", "Domain overview", "Keyword research", "PDF export", "Email support"},
	},
	PlanProfessional: {
		Tier:            PlanProfessional,
		Name:            "Professional",
		PriceUSD:        149,
		ReportsPerMonth: 50,
		Rate:            0.2,
		Burst:           10,
		Features:        []string{"50 reports/month", "Site audit", "Competitor analysis", "API access", "Priority support"},
	},
	PlanAgency: {
		Tier:            PlanAgency,
		Name:            "Agency",
		PriceUSD:        499,
		ReportsPerMonth: UnlimitedReports,
		Rate:            1.0,
		Burst:           30,
		Features:        []string{"Unlimited reports", "White-label", "Team seats (10)", "Custom branding", "Dedicated support"},
	},
}

// planOrder fixes the listing order for the plans surface.
var planOrder = []PlanTier{PlanStarter, PlanProfessional, PlanAgency}

// PlanFor returns the plan for a tier, falling back to starter for
// unknown tiers so a malformed account never escapes rate limiting.
func PlanFor(tier PlanTier) Plan {
	if p, ok := plans[tier]; ok {
		return p
	}
	return plans[PlanStarter]
}

// ValidTier reports whether the tier names a defined plan.
func ValidTier(tier PlanTier) bool {
	_, ok := plans[tier]
	return ok
}

// Plans returns all plans in display order.
func Plans() []Plan {
	out := make([]Plan, 0, len(planOrder))
	for _, tier := range planOrder {
		out = append(out, plans[tier])
	}
	return out
}
