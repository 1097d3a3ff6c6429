// Package compliance produces the static security/compliance checklist for a
// project. Items are hardcoded advisory text selected by phase tier, not
// derived from inspecting real infrastructure.
package compliance

import (
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Check struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
}

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Generate returns the checklist for a project. The tier is the higher of
// the two phases: a startup targeting enterprise already needs the
// enterprise items on its radar.
func Generate(p *projects.Project) []Check {
	tier := p.CurrentPhase.Rank()
	if t := p.TargetPhase.Rank(); t > tier {
		tier = t
	}

	checks := baseChecks()
	if tier >= projects.PhaseScale.Rank() {
		checks = append(checks, scaleChecks()...)
	}
	if tier >= projects.PhaseEnterprise.Rank() {
		checks = append(checks, enterpriseChecks()...)
	}
	return checks
}

func baseChecks() []Check {
	return []Check{
		{
			Title:       "Enforce HTTPS everywhere",
			Description: "Redirect all HTTP traffic to HTTPS and enable HSTS. Terminate TLS at the load balancer with certificates that renew automatically.",
			Category:    "transport",
			Severity:    SeverityCritical,
			Status:      "pending",
		},
		{
			Title:       "Move secrets out of source control",
			Description: "Store credentials in a secrets manager or environment configuration, never in the repository. Rotate anything that has ever been committed.",
			Category:    "secrets",
			Severity:    SeverityCritical,
			Status:      "pending",
		},
		{
			Title:       "Scan dependencies for known vulnerabilities",
			Description: "Run a dependency audit in CI and fail the build on critical advisories.",
			Category:    "supply-chain",
			Severity:    SeverityHigh,
			Status:      "pending",
		},
		{
			Title:       "Automate database backups",
			Description: "Schedule daily backups with at least 30-day retention, and restore one into a scratch environment monthly to prove they work.",
			Category:    "data",
			Severity:    SeverityHigh,
			Status:      "pending",
		},
	}
}

func scaleChecks() []Check {
	return []Check{
		{
			Title:       "Rate-limit public endpoints",
			Description: "Apply per-client rate limits on authentication and write endpoints to blunt brute-force and scraping traffic.",
			Category:    "abuse",
			Severity:    SeverityHigh,
			Status:      "pending",
		},
		{
			Title:       "Put DDoS protection in front of the edge",
			Description: "Serve public traffic through a CDN or cloud DDoS protection layer rather than exposing origin servers directly.",
			Category:    "network",
			Severity:    SeverityMedium,
			Status:      "pending",
		},
		{
			Title:       "Write an incident response runbook",
			Description: "Document who is paged, how a severity level is declared, and where status updates are posted. Rehearse it once a quarter.",
			Category:    "operations",
			Severity:    SeverityMedium,
			Status:      "pending",
		},
	}
}

func enterpriseChecks() []Check {
	return []Check{
		{
			Title:       "Start SOC 2 readiness",
			Description: "Map existing controls against the SOC 2 trust criteria and engage an auditor for a Type I report before pursuing Type II.",
			Category:    "certification",
			Severity:    SeverityHigh,
			Status:      "pending",
		},
		{
			Title:       "Document GDPR data handling",
			Description: "Maintain a record of processing activities, honor deletion requests end to end, and verify subprocessor agreements.",
			Category:    "privacy",
			Severity:    SeverityHigh,
			Status:      "pending",
		},
		{
			Title:       "Enable audit logging on admin actions",
			Description: "Record who changed what and when for every privileged operation, shipped to append-only storage.",
			Category:    "audit",
			Severity:    SeverityMedium,
			Status:      "pending",
		},
		{
			Title:       "Offer SSO to enterprise tenants",
			Description: "Support SAML or OIDC single sign-on with SCIM deprovisioning so customer security teams control access centrally.",
			Category:    "identity",
			Severity:    SeverityMedium,
			Status:      "pending",
		},
	}
}
