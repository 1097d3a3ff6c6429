package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoRates = errors.New("no price rows for provider")

type RatesRepo struct {
	db *pgxpool.Pool
}

func NewRatesRepo(db *pgxpool.Pool) *RatesRepo {
	return &RatesRepo{db: db}
}

// InsertBatch replaces any existing rows for the same (provider, sku) and
// keeps the freshest fetch.
func (r *RatesRepo) InsertBatch(ctx context.Context, rows []ComputePrice) error {
	if len(rows) == 0 {
		return nil
	}

	const q = `
insert into cloud_compute_prices
  (provider, sku_id, region, instance_type, vcpu, memory_gb, price_per_hour, currency, purchase_option, fetched_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
on conflict (provider, sku_id) do update
set region = excluded.region,
    instance_type = excluded.instance_type,
    vcpu = excluded.vcpu,
    memory_gb = excluded.memory_gb,
    price_per_hour = excluded.price_per_hour,
    currency = excluded.currency,
    purchase_option = excluded.purchase_option,
    fetched_at = excluded.fetched_at;`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(q, row.Provider, row.SKUID, row.Region, row.InstanceType, row.VCPU,
			row.MemoryGB, row.PricePerHour, row.Currency, row.PurchaseOption, row.FetchedAt)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert price row: %w", err)
		}
	}
	return nil
}

// MedianOnDemandRate returns the median $/hr across a provider's on-demand
// rows in the 2-vCPU class the estimator's reference rates assume.
func (r *RatesRepo) MedianOnDemandRate(ctx context.Context, provider string) (float64, error) {
	const q = `
select percentile_cont(0.5) within group (order by price_per_hour)
from cloud_compute_prices
where provider = $1
  and purchase_option = 'on_demand'
  and vcpu = 2
  and price_per_hour > 0;`

	var median *float64
	if err := r.db.QueryRow(ctx, q, provider).Scan(&median); err != nil {
		return 0, err
	}
	if median == nil {
		return 0, ErrNoRates
	}
	return *median, nil
}
