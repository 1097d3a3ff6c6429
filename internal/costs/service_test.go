package costs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type fakeRates struct {
	rates map[string]float64
}

func (f *fakeRates) Rate(_ context.Context, provider string) (float64, bool) {
	r, ok := f.rates[provider]
	return r, ok
}

func testInput() Input {
	return Input{
		TechStack:    projects.StackNextJS,
		CurrentPhase: projects.PhaseGrowth,
		TargetPhase:  projects.PhaseScale,
		GoalCount:    2,
	}
}

func TestServiceEstimate(t *testing.T) {
	t.Run("nil rate source returns the pure calculation", func(t *testing.T) {
		svc := NewService(nil, zap.NewNop())
		assert.Equal(t, Calculate(testInput()), svc.Estimate(context.Background(), testInput()))
	})

	t.Run("missing rates leave providers untouched", func(t *testing.T) {
		svc := NewService(&fakeRates{rates: map[string]float64{}}, zap.NewNop())
		assert.Equal(t, Calculate(testInput()), svc.Estimate(context.Background(), testInput()))
	})

	t.Run("live rate above reference raises compute", func(t *testing.T) {
		// 1.5x the aws reference rate
		svc := NewService(&fakeRates{rates: map[string]float64{"aws": 0.0464 * 1.5}}, zap.NewNop())
		pure := Calculate(testInput())
		adjusted := svc.Estimate(context.Background(), testInput())

		require.Equal(t, "aws", adjusted.Providers[0].Provider)
		assert.Greater(t, adjusted.Providers[0].Compute, pure.Providers[0].Compute)
		assert.Equal(t, pure.Providers[0].Storage, adjusted.Providers[0].Storage)
		assert.Equal(t, pure.Providers[1], adjusted.Providers[1], "gcp has no live rate")
	})

	t.Run("scaling clamps at 2x even for absurd rates", func(t *testing.T) {
		svc := NewService(&fakeRates{rates: map[string]float64{"aws": 100}}, zap.NewNop())
		pure := Calculate(testInput())
		adjusted := svc.Estimate(context.Background(), testInput())
		assert.Equal(t, pure.Providers[0].Compute*2, adjusted.Providers[0].Compute)
	})

	t.Run("scaling clamps at half even for near-zero rates", func(t *testing.T) {
		svc := NewService(&fakeRates{rates: map[string]float64{"aws": 0.0001}}, zap.NewNop())
		pure := Calculate(testInput())
		adjusted := svc.Estimate(context.Background(), testInput())
		assert.Equal(t, dollars(float64(pure.Providers[0].Compute)*0.5), adjusted.Providers[0].Compute)
	})

	t.Run("negative or zero live rates are ignored", func(t *testing.T) {
		svc := NewService(&fakeRates{rates: map[string]float64{"aws": -3, "gcp": 0}}, zap.NewNop())
		assert.Equal(t, Calculate(testInput()), svc.Estimate(context.Background(), testInput()))
	})

	t.Run("totals are recomputed and still floored", func(t *testing.T) {
		svc := NewService(&fakeRates{rates: map[string]float64{"aws": 0.0001, "gcp": 0.0001, "azure": 0.0001}}, zap.NewNop())
		adjusted := svc.Estimate(context.Background(), testInput())
		for _, pe := range adjusted.Providers {
			assert.Equal(t, maxInt(pe.Compute+pe.Storage+pe.Network+pe.Extras, MinMonthly), pe.Total)
		}
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
