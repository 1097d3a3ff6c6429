// Package recommend turns a project's current scaling phase and tech stack
// into a fixed set of advisory recommendations. The mapping is a total
// function over the closed enums; no external state is consulted.
package recommend

import (
	"fmt"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Order       int    `json:"order"`
}

const (
	CategoryContainerization = "containerization"
	CategoryAutomation       = "automation"
	CategoryCaching          = "caching"
	CategoryDatabase         = "database"
	CategoryOrchestration    = "orchestration"
	CategoryMonitoring       = "monitoring"
	CategorySecurity         = "security"
	CategoryCost             = "cost"
)

// Generate builds the recommendation list for a project. Phase content is
// gated on CurrentPhase only; TargetPhase drives the roadmap instead.
func Generate(p *projects.Project) []Recommendation {
	recs := phaseRecommendations(p.CurrentPhase)
	recs = append(recs, stackRecommendations(p.TechStack)...)
	for i := range recs {
		recs[i].Order = i + 1
	}
	return recs
}

func phaseRecommendations(phase projects.Phase) []Recommendation {
	switch phase {
	case projects.PhaseStartup:
		return []Recommendation{
			{
				Title:       "Containerize your application",
				Description: "Package the app as a Docker image so development, staging and production run the same bits. Start from the generated Dockerfile and keep the image under 500MB.",
				Category:    CategoryContainerization,
				Priority:    "high",
			},
			{
				Title:       "Set up a CI/CD pipeline",
				Description: "Automate test and deploy on every push. A pipeline that runs in under ten minutes keeps small teams shipping daily.",
				Category:    CategoryAutomation,
				Priority:    "high",
			},
			{
				Title:       "Add basic uptime monitoring",
				Description: "An external health-check ping and error alerting catch most early-stage outages. Full observability can wait.",
				Category:    CategoryMonitoring,
				Priority:    "medium",
			},
		}
	case projects.PhaseGrowth:
		return []Recommendation{
			{
				Title:       "Introduce a caching layer",
				Description: "Put Redis in front of the hottest read paths. Cache-aside with short TTLs removes the most common growth-phase database bottleneck.",
				Category:    CategoryCaching,
				Priority:    "high",
			},
			{
				Title:       "Automate infrastructure provisioning",
				Description: "Move server setup into Terraform so environments are reproducible. Hand-built servers become unmanageable past a handful of instances.",
				Category:    CategoryAutomation,
				Priority:    "high",
			},
			{
				Title:       "Add application performance monitoring",
				Description: "Wire request latency, error rate and saturation dashboards before traffic doubles again. You cannot tune what you cannot see.",
				Category:    CategoryMonitoring,
				Priority:    "medium",
			},
		}
	case projects.PhaseScale:
		return []Recommendation{
			{
				Title:       "Add database read replicas",
				Description: "Split read traffic onto replicas and keep the primary for writes. Most scale-phase databases are read-bound long before they are write-bound.",
				Category:    CategoryDatabase,
				Priority:    "high",
			},
			{
				Title:       "Adopt container orchestration",
				Description: "Move workloads onto Kubernetes for scheduling, rolling deploys and horizontal autoscaling. The generated manifests are a starting point.",
				Category:    CategoryOrchestration,
				Priority:    "high",
			},
			{
				Title:       "Shard or partition hot tables",
				Description: "Identify the largest tables and plan a partitioning key now; retrofitting sharding under load is an order of magnitude harder.",
				Category:    CategoryDatabase,
				Priority:    "medium",
			},
		}
	case projects.PhaseEnterprise:
		return []Recommendation{
			{
				Title:       "Run multi-region failover",
				Description: "Serve traffic from at least two regions with automated failover. Single-region architectures cap availability below enterprise SLAs.",
				Category:    CategoryOrchestration,
				Priority:    "high",
			},
			{
				Title:       "Formalize security reviews",
				Description: "Quarterly penetration tests, a vulnerability disclosure program and signed artifacts are table stakes for enterprise customers.",
				Category:    CategorySecurity,
				Priority:    "high",
			},
			{
				Title:       "Establish cost governance",
				Description: "Tag every resource, set budgets per team and review spend monthly. At enterprise scale, untracked infrastructure spend compounds fast.",
				Category:    CategoryCost,
				Priority:    "medium",
			},
		}
	}
	return nil
}

func stackRecommendations(stack projects.TechStack) []Recommendation {
	switch stack {
	case projects.StackMERN, projects.StackMEAN:
		return []Recommendation{{
			Title:       "Run Node in cluster mode",
			Description: "Use the cluster module or PM2 to run one Node process per core, and move session state out of process memory so workers stay interchangeable.",
			Category:    CategoryAutomation,
			Priority:    "medium",
		}}
	case projects.StackNextJS:
		return []Recommendation{{
			Title:       "Push static assets to a CDN",
			Description: "Serve the Next.js static output and image optimizer through a CDN, and prefer static or incremental rendering over per-request SSR where possible.",
			Category:    CategoryCaching,
			Priority:    "medium",
		}}
	case projects.StackDjango, projects.StackFlask:
		return []Recommendation{{
			Title:       "Tune your WSGI workers",
			Description: fmt.Sprintf("Run gunicorn with (2 x cores) + 1 workers behind a reverse proxy. Default single-worker %s deployments waste the whole machine.", stack),
			Category:    CategoryAutomation,
			Priority:    "medium",
		}}
	case projects.StackRails:
		return []Recommendation{{
			Title:       "Tune Puma and connection pools",
			Description: "Match the Puma thread count to the database pool size and keep web concurrency explicit. Mismatched pools are the classic Rails scaling trap.",
			Category:    CategoryDatabase,
			Priority:    "medium",
		}}
	case projects.StackLaravel:
		return []Recommendation{{
			Title:       "Move work onto queued jobs",
			Description: "Push mail, exports and webhooks through Laravel queues backed by Redis so web workers only serve requests.",
			Category:    CategoryAutomation,
			Priority:    "medium",
		}}
	case projects.StackGolang:
		return []Recommendation{{
			Title:       "Right-size connection pools",
			Description: "Go services scale vertically well; set explicit database pool limits and GOMAXPROCS-aware worker counts before adding machines.",
			Category:    CategoryDatabase,
			Priority:    "medium",
		}}
	}
	return nil
}
