package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openrdap/rdap"

	"github.com/rankgate/rankgate/internal/core"
)

// DomainOverview fetches the domain's homepage and scores its headline
// SEO signals. An unreachable site yields a zero-scored report with the
// failure noted, never an error.
func (s *Service) DomainOverview(ctx context.Context, domain string) *core.DomainReport {
	clean := core.NormalizeDomain(domain)

	report := &core.DomainReport{
		Domain:     clean,
		AnalyzedAt: s.timestamp(),
	}

	html, status, loadTime, hasSSL, fetchErr := s.fetchHomepage(ctx, clean)
	report.StatusCode = status
	report.LoadTimeSeconds = round2(loadTime.Seconds())
	report.HasSSL = hasSSL

	sig := parseSignals(html)
	report.Title = sig.Title
	report.TitleLength = len(sig.Title)
	report.MetaDescription = sig.MetaDescription
	report.DescriptionLength = len(sig.MetaDescription)
	report.H1Count = sig.H1Count
	report.H1Text = sig.H1Text
	report.HasCanonical = sig.HasCanonical
	report.HasRobotsMeta = sig.HasRobotsMeta
	report.HasOpenGraph = sig.HasOpenGraph
	report.HasSchemaMarkup = sig.HasSchemaMarkup
	report.WordCount = sig.WordCount
	report.TotalImages = sig.TotalImages
	report.ImagesMissingAlt = sig.ImagesMissingAlt

	s.scoreDomain(report, sig, loadTime, fetchErr == nil)

	if fetchErr != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("Could not reach site: %v", fetchErr))
	}

	if s.rdapEnabled {
		s.enrichRegistration(report, clean)
	}

	return report
}

// fetchHomepage loads https://<domain> and reports body, status, elapsed
// time, and whether the final URL stayed on HTTPS.
func (s *Service) fetchHomepage(ctx context.Context, domain string) (html string, status int, loadTime time.Duration, hasSSL bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain, nil)
	if err != nil {
		return "", 0, 0, false, err
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := s.fetchClient.Do(req)
	if err != nil {
		return "", 0, 0, false, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	loadTime = time.Since(start)
	if err != nil {
		return "", resp.StatusCode, loadTime, false, err
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return string(body), resp.StatusCode, loadTime, finalURL.Scheme == "https", nil
}

// scoreDomain applies the additive scoring model, capped at 100. An
// unreachable page keeps its issues and recommendations but scores zero;
// empty signals must not collect residual credit.
func (s *Service) scoreDomain(report *core.DomainReport, sig pageSignals, loadTime time.Duration, reachable bool) {
	score := 0
	issues := []string{}
	recommendations := []string{}

	if sig.Title != "" {
		score += 15
	} else {
		issues = append(issues, "Missing title tag")
		recommendations = append(recommendations, "Add a descriptive title tag (50-60 chars)")
	}

	if sig.MetaDescription != "" {
		score += 10
	} else {
		issues = append(issues, "Missing meta description")
		recommendations = append(recommendations, "Add a meta description (150-160 chars)")
	}

	switch {
	case sig.H1Count == 1:
		score += 10
	case sig.H1Count == 0:
		issues = append(issues, "No H1 tag found")
		recommendations = append(recommendations, "Add exactly one H1 tag")
	default:
		issues = append(issues, fmt.Sprintf("Multiple H1 tags (%d)", sig.H1Count))
		recommendations = append(recommendations, "Use only one H1 tag per page")
	}

	if report.HasSSL {
		score += 15
	} else {
		issues = append(issues, "No HTTPS")
		recommendations = append(recommendations, "Enable SSL/HTTPS immediately")
	}

	if sig.HasCanonical {
		score += 5
	} else {
		recommendations = append(recommendations, "Add canonical URL tag")
	}

	if sig.HasOpenGraph {
		score += 5
	} else {
		recommendations = append(recommendations, "Add Open Graph meta tags for social sharing")
	}

	if sig.HasSchemaMarkup {
		score += 10
	} else {
		recommendations = append(recommendations, "Add Schema.org structured data")
	}

	switch {
	case loadTime > 0 && loadTime < 2*time.Second:
		score += 15
	case loadTime < 4*time.Second:
		score += 8
		recommendations = append(recommendations, "Improve page load speed (currently slow)")
	default:
		issues = append(issues, fmt.Sprintf("Slow load time (%.1fs)", loadTime.Seconds()))
		recommendations = append(recommendations, "Optimize images and reduce server response time")
	}

	if sig.ImagesMissingAlt == 0 {
		score += 5
	} else {
		issues = append(issues, fmt.Sprintf("%d images missing alt text", sig.ImagesMissingAlt))
		recommendations = append(recommendations, "Add alt text to all images")
	}

	if sig.WordCount > 300 {
		score += 10
	} else {
		recommendations = append(recommendations, "Add more content (aim for 300+ words)")
	}

	if !reachable {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if len(recommendations) > 8 {
		recommendations = recommendations[:8]
	}

	report.SEOScore = score
	report.Issues = issues
	report.Recommendations = recommendations
}

// enrichRegistration adds registrar and registration date from RDAP.
// Best effort: lookup failures leave the fields empty.
func (s *Service) enrichRegistration(report *core.DomainReport, domain string) {
	d, err := s.rdapClient.QueryDomain(domain)
	if err != nil || d == nil {
		return
	}

	report.Registrar = findRegistrar(d)
	report.RegisteredAt = findEventDate(d.Events, "registration")
}

func findRegistrar(domain *rdap.Domain) string {
	for _, entity := range domain.Entities {
		for _, role := range entity.Roles {
			if role == "registrar" && entity.VCard != nil {
				return entity.VCard.Name()
			}
		}
	}
	return ""
}

func findEventDate(events []rdap.Event, action string) string {
	for _, event := range events {
		if event.Action == action {
			return event.Date
		}
	}
	return ""
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
