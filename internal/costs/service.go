package costs

import (
	"context"

	"go.uber.org/zap"
)

// RateSource supplies a live median on-demand compute rate ($/hr) per
// provider, when one has been imported.
type RateSource interface {
	Rate(ctx context.Context, provider string) (float64, bool)
}

// referenceRates are the $/hr rates the fixed compute base assumes
// (a 2 vCPU / 4GB class instance per provider).
var referenceRates = map[string]float64{
	"aws":   0.0464,
	"gcp":   0.0388,
	"azure": 0.0416,
}

type Service struct {
	rates RateSource
	log   *zap.Logger
}

func NewService(rates RateSource, log *zap.Logger) *Service {
	return &Service{rates: rates, log: log}
}

// Estimate runs the pure calculator and, when live pricing is available,
// scales each provider's compute share by live/reference, clamped to
// [0.5, 2.0] so a bad import cannot distort the projection.
func (s *Service) Estimate(ctx context.Context, in Input) Estimate {
	est := Calculate(in)
	if s.rates == nil {
		return est
	}

	for i := range est.Providers {
		pe := &est.Providers[i]
		live, ok := s.rates.Rate(ctx, pe.Provider)
		if !ok || live <= 0 {
			continue
		}
		ref := referenceRates[pe.Provider]
		if ref <= 0 {
			continue
		}

		scale := live / ref
		if scale < 0.5 {
			scale = 0.5
		}
		if scale > 2.0 {
			scale = 2.0
		}

		adjusted := dollars(float64(pe.Compute) * scale)
		s.log.Debug("live rate adjustment",
			zap.String("provider", pe.Provider),
			zap.Float64("live", live),
			zap.Int("compute_before", pe.Compute),
			zap.Int("compute_after", adjusted),
		)
		pe.Compute = adjusted
		pe.Total = pe.Compute + pe.Storage + pe.Network + pe.Extras
		if pe.Total < MinMonthly {
			pe.Total = MinMonthly
		}
	}
	return est
}
