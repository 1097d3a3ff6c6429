// Package pricing maintains the cloud_compute_prices table: rows fetched
// from provider price APIs, imported in batches, and summarized into a
// median on-demand rate the cost estimator can consult.
package pricing

import "time"

type ComputePrice struct {
	Provider       string    `json:"provider"`
	SKUID          string    `json:"sku_id"`
	Region         string    `json:"region"`
	InstanceType   string    `json:"instance_type"`
	VCPU           int       `json:"vcpu"`
	MemoryGB       float64   `json:"memory_gb"`
	PricePerHour   float64   `json:"price_per_hour"`
	Currency       string    `json:"currency"`
	PurchaseOption string    `json:"purchase_option"`
	FetchedAt      time.Time `json:"fetched_at"`
}
