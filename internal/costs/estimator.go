// Package costs projects a monthly infrastructure cost from a project's
// phases, tech stack and goal count. The core is a pure function over fixed
// base-rate and multiplier tables; live cloud pricing only nudges the
// compute share when available.
package costs

import (
	"math"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Input struct {
	TechStack    projects.TechStack `json:"tech_stack"`
	CurrentPhase projects.Phase     `json:"current_phase"`
	TargetPhase  projects.Phase     `json:"target_phase"`
	GoalCount    int                `json:"goal_count"`
}

type ProviderEstimate struct {
	Provider string `json:"provider"`
	Compute  int    `json:"compute"`
	Storage  int    `json:"storage"`
	Network  int    `json:"network"`
	Extras   int    `json:"extras"`
	Total    int    `json:"total"`
}

type Estimate struct {
	Providers []ProviderEstimate `json:"providers"`
	Currency  string             `json:"currency"`
}

// MinMonthly is the floor for any provider total, in USD.
const MinMonthly = 20

// Providers in output order.
var providerOrder = []string{"aws", "gcp", "azure"}

type baseRate struct {
	compute, storage, network, extras float64
}

var baseRates = map[string]baseRate{
	"aws":   {compute: 48, storage: 14, network: 10, extras: 13},
	"gcp":   {compute: 45, storage: 13, network: 9, extras: 13},
	"azure": {compute: 50, storage: 15, network: 11, extras: 14},
}

func phaseMultiplier(p projects.Phase) float64 {
	switch p {
	case projects.PhaseStartup:
		return 1
	case projects.PhaseGrowth:
		return 2
	case projects.PhaseScale:
		return 4
	case projects.PhaseEnterprise:
		return 8
	}
	return 1
}

func stackFactor(s projects.TechStack) float64 {
	switch s {
	case projects.StackGolang:
		return 0.8
	case projects.StackFlask:
		return 0.9
	case projects.StackDjango, projects.StackNextJS, projects.StackLaravel:
		return 1.0
	case projects.StackMERN, projects.StackMEAN:
		return 1.1
	case projects.StackRails:
		return 1.2
	}
	return 1.0
}

// Calculate is the pure estimator. Deterministic; every output is a
// non-negative integer and each provider total is at least MinMonthly.
func Calculate(in Input) Estimate {
	// Both phases feed the multiplier so raising either strictly raises
	// the estimate.
	blend := (phaseMultiplier(in.CurrentPhase) + phaseMultiplier(in.TargetPhase)) / 2

	goals := in.GoalCount
	if goals < 0 {
		goals = 0
	}
	if goals > projects.MaxGoals {
		goals = projects.MaxGoals
	}
	goalFactor := 1 + 0.1*float64(goals)

	factor := blend * stackFactor(in.TechStack) * goalFactor

	out := Estimate{Currency: "USD", Providers: make([]ProviderEstimate, 0, len(providerOrder))}
	for _, provider := range providerOrder {
		base := baseRates[provider]
		pe := ProviderEstimate{
			Provider: provider,
			Compute:  dollars(base.compute * factor),
			Storage:  dollars(base.storage * factor),
			Network:  dollars(base.network * factor),
			Extras:   dollars(base.extras * factor),
		}
		pe.Total = pe.Compute + pe.Storage + pe.Network + pe.Extras
		if pe.Total < MinMonthly {
			pe.Total = MinMonthly
		}
		out.Providers = append(out.Providers, pe)
	}
	return out
}

// dollars rounds to whole dollars, guarding against NaN/Inf and negatives.
func dollars(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}
