package projects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type TechStack string

const (
	StackMERN    TechStack = "mern"
	StackMEAN    TechStack = "mean"
	StackNextJS  TechStack = "nextjs"
	StackDjango  TechStack = "django"
	StackFlask   TechStack = "flask"
	StackRails   TechStack = "rails"
	StackLaravel TechStack = "laravel"
	StackGolang  TechStack = "golang"
)

type Phase string

const (
	PhaseStartup    Phase = "startup"
	PhaseGrowth     Phase = "growth"
	PhaseScale      Phase = "scale"
	PhaseEnterprise Phase = "enterprise"
)

// Rank orders phases for roadmap traversal and cost multipliers.
func (p Phase) Rank() int {
	switch p {
	case PhaseStartup:
		return 1
	case PhaseGrowth:
		return 2
	case PhaseScale:
		return 3
	case PhaseEnterprise:
		return 4
	}
	return 0
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

type Project struct {
	PublicID     string    `json:"public_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	TechStack    TechStack `json:"tech_stack"`
	CurrentPhase Phase     `json:"current_phase"`
	TargetPhase  Phase     `json:"target_phase"`
	CurrentInfra string    `json:"current_infra,omitempty"`
	ScalingGoals []string  `json:"scaling_goals"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	MaxNameLen = 100
	MaxGoals   = 10
)

var validate = validator.New()

// Draft carries the validated fields of a create request.
type Draft struct {
	Name         string   `validate:"required,max=100"`
	Description  string   `validate:"max=2000"`
	TechStack    string   `validate:"required,oneof=mern mean nextjs django flask rails laravel golang"`
	CurrentPhase string   `validate:"required,oneof=startup growth scale enterprise"`
	TargetPhase  string   `validate:"required,oneof=startup growth scale enterprise"`
	CurrentInfra string   `validate:"max=5000"`
	ScalingGoals []string `validate:"-"`
}

func (d *Draft) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if err := validate.Struct(d); err != nil {
		return validationError(err)
	}
	d.ScalingGoals = NormalizeGoals(d.ScalingGoals)
	return nil
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		f := ve[0]
		switch f.Tag() {
		case "required":
			return fmt.Errorf("Validation error: %s is required", strings.ToLower(f.Field()))
		case "max":
			return fmt.Errorf("Validation error: %s exceeds maximum length of %s", strings.ToLower(f.Field()), f.Param())
		case "oneof":
			return fmt.Errorf("Validation error: %s must be one of [%s]", strings.ToLower(f.Field()), f.Param())
		}
	}
	return fmt.Errorf("Validation error: %v", err)
}

// NormalizeGoals trims entries, drops blanks, removes duplicates while
// preserving order, and caps the list at MaxGoals.
func NormalizeGoals(goals []string) []string {
	out := make([]string, 0, len(goals))
	seen := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
		if len(out) == MaxGoals {
			break
		}
	}
	return out
}
