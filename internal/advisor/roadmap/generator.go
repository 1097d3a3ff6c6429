// Package roadmap lays out the ordered steps from a project's current phase
// to its target phase. TargetPhase gates what appears; CurrentPhase only
// picks the starting rung.
package roadmap

import (
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Step struct {
	Phase       string `json:"phase"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Effort      string `json:"effort"`
	Order       int    `json:"order"`
	Status      string `json:"status"`
}

// Generate walks the phase ladder from just above CurrentPhase up to and
// including TargetPhase. When the target does not exceed the current phase,
// it returns consolidation steps for the phase the project is already in.
func Generate(p *projects.Project) []Step {
	from := p.CurrentPhase.Rank()
	to := p.TargetPhase.Rank()

	var steps []Step
	if to <= from {
		steps = consolidationSteps(p.CurrentPhase)
	} else {
		for rank := from + 1; rank <= to; rank++ {
			steps = append(steps, phaseSteps(phaseForRank(rank))...)
		}
	}

	for i := range steps {
		steps[i].Order = i + 1
		steps[i].Status = "pending"
	}
	return steps
}

func phaseForRank(rank int) projects.Phase {
	switch rank {
	case 1:
		return projects.PhaseStartup
	case 2:
		return projects.PhaseGrowth
	case 3:
		return projects.PhaseScale
	case 4:
		return projects.PhaseEnterprise
	}
	return projects.PhaseStartup
}

func phaseSteps(phase projects.Phase) []Step {
	switch phase {
	case projects.PhaseGrowth:
		return []Step{
			{
				Phase:       string(phase),
				Title:       "Split web and worker tiers",
				Description: "Move background work out of request handlers onto a dedicated worker pool fed by a queue, so web capacity scales independently.",
				Timeline:    "0-2 months",
				Effort:      "medium",
			},
			{
				Phase:       string(phase),
				Title:       "Add a managed load balancer",
				Description: "Terminate TLS at a managed load balancer and run at least two app instances behind it for zero-downtime deploys.",
				Timeline:    "1-2 months",
				Effort:      "low",
			},
			{
				Phase:       string(phase),
				Title:       "Introduce Redis caching",
				Description: "Cache rendered fragments and hot queries with short TTLs, measuring hit rate before and after.",
				Timeline:    "2-3 months",
				Effort:      "medium",
			},
		}
	case projects.PhaseScale:
		return []Step{
			{
				Phase:       string(phase),
				Title:       "Migrate onto Kubernetes",
				Description: "Deploy the containerized app to a managed Kubernetes cluster with horizontal pod autoscaling and rolling updates.",
				Timeline:    "3-6 months",
				Effort:      "high",
			},
			{
				Phase:       string(phase),
				Title:       "Add database read replicas",
				Description: "Route read-only queries to replicas and add a connection pooler in front of the primary.",
				Timeline:    "4-6 months",
				Effort:      "medium",
			},
			{
				Phase:       string(phase),
				Title:       "Adopt infrastructure as code everywhere",
				Description: "Bring every remaining hand-managed resource under Terraform so environments can be rebuilt from scratch.",
				Timeline:    "5-7 months",
				Effort:      "medium",
			},
		}
	case projects.PhaseEnterprise:
		return []Step{
			{
				Phase:       string(phase),
				Title:       "Go multi-region",
				Description: "Replicate data and serve traffic from a second region with automated failover and regular game-day drills.",
				Timeline:    "6-12 months",
				Effort:      "high",
			},
			{
				Phase:       string(phase),
				Title:       "Stand up a platform team",
				Description: "Centralize deploy tooling, golden paths and on-call rotation so product teams ship without owning infrastructure.",
				Timeline:    "6-12 months",
				Effort:      "high",
			},
			{
				Phase:       string(phase),
				Title:       "Complete compliance certification",
				Description: "Close the generated compliance checklist and engage an auditor for SOC 2 Type II.",
				Timeline:    "9-12 months",
				Effort:      "high",
			},
		}
	default:
		// startup is never a destination rung; reaching here means the
		// project is still pre-growth.
		return []Step{{
			Phase:       string(projects.PhaseStartup),
			Title:       "Containerize and automate deploys",
			Description: "Get the app into Docker with a CI pipeline before planning any further scaling work.",
			Timeline:    "0-1 months",
			Effort:      "low",
		}}
	}
}

func consolidationSteps(phase projects.Phase) []Step {
	return []Step{
		{
			Phase:       string(phase),
			Title:       "Consolidate the current phase",
			Description: "The target phase does not exceed the current one; focus on reliability, cost and operational cleanup before planning the next jump.",
			Timeline:    "0-3 months",
			Effort:      "low",
		},
		{
			Phase:       string(phase),
			Title:       "Review capacity headroom",
			Description: "Load-test to confirm at least 2x headroom at peak traffic and document the first bottleneck you expect to hit.",
			Timeline:    "1-3 months",
			Effort:      "medium",
		},
	}
}
