package core

import "time"

// ReportType identifies the type of analysis report.
type ReportType string

const (
	ReportTypeDomain  ReportType = "domain"
	ReportTypeKeyword ReportType = "keyword"
	ReportTypeAudit   ReportType = "audit"
)

// PlanTier is a named subscription level.
type PlanTier string

const (
	PlanStarter      PlanTier = "starter"
	PlanProfessional PlanTier = "professional"
	PlanAgency       PlanTier = "agency"
)

// Subscriber is an authenticated tenant of the service.
type Subscriber struct {
	APIKey            string    `json:"api_key"`
	Email             string    `json:"email"`
	Plan              PlanTier  `json:"plan"`
	ReportsThisPeriod int       `json:"reports_this_month"`
	CreatedAt         time.Time `json:"created_at"`
}

// BillingEvent is the provisioning event consumed from the billing
// integration. A completed checkout turns into one of these.
type BillingEvent struct {
	Email string   `json:"email"`
	Plan  PlanTier `json:"plan"`
}

// HistoryRecord is one entry in a subscriber's append-only report log.
// Score carries the headline metric of the report: SEO score for domain
// overviews, monthly volume for keyword research, health score for audits.
type HistoryRecord struct {
	Type      ReportType `json:"type"`
	Query     string     `json:"query"`
	Score     int        `json:"score"`
	CreatedAt time.Time  `json:"at"`
}

// DomainReport is the result of a domain overview analysis.
type DomainReport struct {
	Domain            string   `json:"domain"`
	SEOScore          int      `json:"seo_score"`
	StatusCode        int      `json:"status_code"`
	LoadTimeSeconds   float64  `json:"load_time_seconds"`
	HasSSL            bool     `json:"has_ssl"`
	Title             string   `json:"title"`
	TitleLength       int      `json:"title_length"`
	MetaDescription   string   `json:"meta_description"`
	DescriptionLength int      `json:"description_length"`
	H1Count           int      `json:"h1_count"`
	H1Text            string   `json:"h1_text"`
	HasCanonical      bool     `json:"has_canonical"`
	HasOpenGraph      bool     `json:"has_open_graph"`
	HasSchemaMarkup   bool     `json:"has_schema_markup"`
	HasRobotsMeta     bool     `json:"has_robots_meta"`
	WordCount         int      `json:"word_count"`
	TotalImages       int      `json:"total_images"`
	ImagesMissingAlt  int      `json:"images_missing_alt"`
	Registrar         string   `json:"registrar,omitempty"`
	RegisteredAt      string   `json:"registered_at,omitempty"`
	Issues            []string `json:"issues"`
	Recommendations   []string `json:"recommendations"`
	AnalyzedAt        string   `json:"analyzed_at"`
	FromCache         bool     `json:"from_cache,omitempty"`
}

// RelatedKeyword is one related-keyword suggestion in a keyword report.
type RelatedKeyword struct {
	Keyword    string  `json:"keyword"`
	Volume     int     `json:"volume"`
	Difficulty int     `json:"difficulty"`
	CPC        float64 `json:"cpc"`
}

// KeywordReport is the result of keyword research.
type KeywordReport struct {
	Keyword          string           `json:"keyword"`
	Country          string           `json:"country"`
	MonthlyVolume    int              `json:"monthly_volume"`
	Difficulty       int              `json:"keyword_difficulty"`
	CPCUSD           float64          `json:"cpc_usd"`
	Competition      string           `json:"competition"`
	Trend            string           `json:"trend"`
	SERPFeatures     []string         `json:"serp_features"`
	RelatedKeywords  []RelatedKeyword `json:"related_keywords"`
	OpportunityScore int              `json:"opportunity_score"`
	AnalyzedAt       string           `json:"analyzed_at"`
}

// AuditCheck is a single named check within a site audit.
type AuditCheck struct {
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// AuditChecks groups audit checks by outcome.
type AuditChecks struct {
	Passed   []AuditCheck `json:"passed"`
	Warnings []AuditCheck `json:"warnings"`
	Issues   []AuditCheck `json:"issues"`
}

// AuditReport is the result of a site audit.
type AuditReport struct {
	URL         string      `json:"url"`
	HealthScore int         `json:"health_score"`
	TotalChecks int         `json:"total_checks"`
	Passed      int         `json:"passed"`
	Warnings    int         `json:"warnings"`
	IssuesCount int         `json:"issues_count"`
	Checks      AuditChecks `json:"checks"`
	AuditedAt   string      `json:"audited_at"`
}
