package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rankgate/rankgate/internal/core"
)

// SiteAudit runs the named checks against a URL and scores site health
// as the passed share of all checks. A connectivity failure produces a
// zero-score report with the failure recorded as an issue.
func (s *Service) SiteAudit(ctx context.Context, rawURL string) *core.AuditReport {
	url := strings.TrimSpace(rawURL)
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	report := &core.AuditReport{
		URL:       url,
		AuditedAt: s.timestamp(),
	}

	var passed, warnings, issues []core.AuditCheck

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return s.failedAudit(report, err)
	}
	req.Header.Set("User-Agent", userAgent)

	redirects := 0
	client := *s.auditClient
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		redirects = len(via)
		if len(via) >= 10 {
			return http.ErrUseLastResponse
		}
		return nil
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return s.failedAudit(report, err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	loadTime := time.Since(start)
	if err != nil {
		return s.failedAudit(report, err)
	}
	html := string(body)

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if redirects > 0 {
		warnings = append(warnings, core.AuditCheck{Check: "Redirects", Detail: fmt.Sprintf("%d redirect(s) detected", redirects)})
	} else {
		passed = append(passed, core.AuditCheck{Check: "No Redirects", Detail: "Direct URL access"})
	}

	if strings.HasPrefix(finalURL, "https") {
		passed = append(passed, core.AuditCheck{Check: "HTTPS", Detail: "SSL certificate active"})
	} else {
		issues = append(issues, core.AuditCheck{Check: "HTTPS", Detail: "Site not using HTTPS, critical security issue"})
	}

	switch {
	case loadTime < 2*time.Second:
		passed = append(passed, core.AuditCheck{Check: "Page Speed", Detail: fmt.Sprintf("%.2fs - Excellent", loadTime.Seconds())})
	case loadTime < 4*time.Second:
		warnings = append(warnings, core.AuditCheck{Check: "Page Speed", Detail: fmt.Sprintf("%.2fs - Needs improvement", loadTime.Seconds())})
	default:
		issues = append(issues, core.AuditCheck{Check: "Page Speed", Detail: fmt.Sprintf("%.2fs - Too slow (target: <2s)", loadTime.Seconds())})
	}

	sig := parseSignals(html)

	if sig.Title != "" {
		if len(sig.Title) >= 10 && len(sig.Title) <= 70 {
			title := sig.Title
			if len(title) > 50 {
				title = title[:50] + "..."
			}
			passed = append(passed, core.AuditCheck{Check: "Title Tag", Detail: fmt.Sprintf("'%s' (%d chars)", title, len(sig.Title))})
		} else {
			warnings = append(warnings, core.AuditCheck{Check: "Title Tag", Detail: fmt.Sprintf("Length %d chars (optimal: 10-70)", len(sig.Title))})
		}
	} else {
		issues = append(issues, core.AuditCheck{Check: "Title Tag", Detail: "Missing title tag"})
	}

	if sig.MetaDescription != "" {
		if len(sig.MetaDescription) >= 50 && len(sig.MetaDescription) <= 170 {
			passed = append(passed, core.AuditCheck{Check: "Meta Description", Detail: fmt.Sprintf("%d chars - Good length", len(sig.MetaDescription))})
		} else {
			warnings = append(warnings, core.AuditCheck{Check: "Meta Description", Detail: fmt.Sprintf("%d chars (optimal: 50-170)", len(sig.MetaDescription))})
		}
	} else {
		issues = append(issues, core.AuditCheck{Check: "Meta Description", Detail: "Missing meta description"})
	}

	switch {
	case sig.H1Count == 1:
		passed = append(passed, core.AuditCheck{Check: "H1 Tag", Detail: "One H1 tag found"})
	case sig.H1Count == 0:
		issues = append(issues, core.AuditCheck{Check: "H1 Tag", Detail: "No H1 tag found"})
	default:
		warnings = append(warnings, core.AuditCheck{Check: "H1 Tag", Detail: fmt.Sprintf("%d H1 tags (use only one)", sig.H1Count)})
	}

	if sig.ImagesMissingAlt == 0 {
		passed = append(passed, core.AuditCheck{Check: "Image Alt Text", Detail: fmt.Sprintf("All %d images have alt text", sig.TotalImages)})
	} else {
		warnings = append(warnings, core.AuditCheck{Check: "Image Alt Text", Detail: fmt.Sprintf("%d/%d images missing alt text", sig.ImagesMissingAlt, sig.TotalImages)})
	}

	if sig.HasSchemaMarkup {
		passed = append(passed, core.AuditCheck{Check: "Structured Data", Detail: "Schema.org markup found"})
	} else {
		warnings = append(warnings, core.AuditCheck{Check: "Structured Data", Detail: "No Schema.org markup detected"})
	}

	if strings.Contains(strings.ToLower(html), "viewport") {
		passed = append(passed, core.AuditCheck{Check: "Mobile Viewport", Detail: "Viewport meta tag present"})
	} else {
		issues = append(issues, core.AuditCheck{Check: "Mobile Viewport", Detail: "Missing viewport meta tag"})
	}

	total := len(passed) + len(warnings) + len(issues)
	report.HealthScore = len(passed) * 100 / max(total, 1)
	report.TotalChecks = total
	report.Passed = len(passed)
	report.Warnings = len(warnings)
	report.IssuesCount = len(issues)
	report.Checks = core.AuditChecks{
		Passed:   orEmpty(passed),
		Warnings: orEmpty(warnings),
		Issues:   orEmpty(issues),
	}

	return report
}

// failedAudit records a connectivity failure as the only check result.
func (s *Service) failedAudit(report *core.AuditReport, err error) *core.AuditReport {
	issues := []core.AuditCheck{{
		Check:  "Connectivity",
		Detail: fmt.Sprintf("Could not reach URL: %v", err),
	}}

	report.HealthScore = 0
	report.TotalChecks = 1
	report.IssuesCount = 1
	report.Checks = core.AuditChecks{
		Passed:   []core.AuditCheck{},
		Warnings: []core.AuditCheck{},
		Issues:   issues,
	}
	return report
}

func orEmpty(checks []core.AuditCheck) []core.AuditCheck {
	if checks == nil {
		return []core.AuditCheck{}
	}
	return checks
}
