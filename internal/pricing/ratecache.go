package pricing

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	rateKeyPrefix = "pricing:rate:" // pricing:rate:{provider} -> $/hr
	rateTTL       = time.Hour
)

// RateCache serves median on-demand rates, caching them in Redis so the
// estimator does not hit postgres on every request. Implements
// costs.RateSource.
type RateCache struct {
	rdb  *redis.Client
	repo *RatesRepo
	log  *zap.Logger
}

func NewRateCache(rdb *redis.Client, repo *RatesRepo, log *zap.Logger) *RateCache {
	return &RateCache{rdb: rdb, repo: repo, log: log}
}

func (c *RateCache) Rate(ctx context.Context, provider string) (float64, bool) {
	key := rateKeyPrefix + provider

	if c.rdb != nil {
		val, err := c.rdb.Get(ctx, key).Result()
		if err == nil {
			rate, perr := strconv.ParseFloat(val, 64)
			if perr == nil && rate > 0 {
				return rate, true
			}
		} else if !errors.Is(err, redis.Nil) {
			c.log.Warn("rate cache read failed", zap.String("provider", provider), zap.Error(err))
		}
	}

	if c.repo == nil {
		return 0, false
	}

	rate, err := c.repo.MedianOnDemandRate(ctx, provider)
	if err != nil {
		if !errors.Is(err, ErrNoRates) {
			c.log.Warn("median rate lookup failed", zap.String("provider", provider), zap.Error(err))
		}
		return 0, false
	}

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), rateTTL).Err(); err != nil {
			c.log.Warn("rate cache write failed", zap.String("provider", provider), zap.Error(err))
		}
	}
	return rate, true
}
