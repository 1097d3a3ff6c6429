// Package advisor persists and serves the generated advisory artifacts:
// recommendations, roadmap steps, configurations and compliance checks.
// Recommendations, roadmap steps and compliance checks are fully replaced on
// every generate call; configurations are upserted per (project, type).
package advisor

import (
	"time"

	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/compliance"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/configgen"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/recommend"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/roadmap"
)

type StoredRecommendation struct {
	ID string `json:"id"`
	recommend.Recommendation
	CreatedAt time.Time `json:"created_at"`
}

type StoredStep struct {
	ID string `json:"id"`
	roadmap.Step
	CreatedAt time.Time `json:"created_at"`
}

type StoredConfiguration struct {
	ID        string         `json:"id"`
	Type      configgen.Type `json:"type"`
	Name      string         `json:"name"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type StoredCheck struct {
	ID string `json:"id"`
	compliance.Check
	CreatedAt time.Time `json:"created_at"`
}
