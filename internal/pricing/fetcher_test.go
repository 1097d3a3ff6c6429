package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePriceDoc = `{
  "product": {
    "sku": "ABC123",
    "attributes": {
      "instanceType": "t3.medium",
      "vcpu": "2",
      "memory": "4 GiB",
      "regionCode": "us-east-1"
    }
  },
  "terms": {
    "OnDemand": {
      "ABC123.JRTCKXETXF": {
        "priceDimensions": {
          "ABC123.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0416000000"}
          }
        }
      }
    }
  }
}`

func TestParsePriceItem(t *testing.T) {
	fetchedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("parses a complete document", func(t *testing.T) {
		row, ok := parsePriceItem(samplePriceDoc, fetchedAt)
		require.True(t, ok)
		assert.Equal(t, "aws", row.Provider)
		assert.Equal(t, "ABC123", row.SKUID)
		assert.Equal(t, "t3.medium", row.InstanceType)
		assert.Equal(t, "us-east-1", row.Region)
		assert.Equal(t, 2, row.VCPU)
		assert.InDelta(t, 4.0, row.MemoryGB, 1e-9)
		assert.InDelta(t, 0.0416, row.PricePerHour, 1e-9)
		assert.Equal(t, "on_demand", row.PurchaseOption)
		assert.Equal(t, fetchedAt, row.FetchedAt)
	})

	t.Run("rejects documents without a sku", func(t *testing.T) {
		_, ok := parsePriceItem(`{"product":{"attributes":{"instanceType":"t3.medium"}}}`, fetchedAt)
		assert.False(t, ok)
	})

	t.Run("rejects zero-priced documents", func(t *testing.T) {
		doc := `{
  "product": {"sku": "FREE", "attributes": {"instanceType": "t3.nano"}},
  "terms": {"OnDemand": {"a": {"priceDimensions": {"b": {"unit": "Hrs", "pricePerUnit": {"USD": "0.0000000000"}}}}}}
}`
		_, ok := parsePriceItem(doc, fetchedAt)
		assert.False(t, ok)
	})

	t.Run("rejects unparseable json", func(t *testing.T) {
		_, ok := parsePriceItem("{not json", fetchedAt)
		assert.False(t, ok)
	})

	t.Run("parses fractional memory sizes", func(t *testing.T) {
		doc := `{
  "product": {"sku": "SM", "attributes": {"instanceType": "t3.nano", "vcpu": "2", "memory": "0.5 GiB"}},
  "terms": {"OnDemand": {"a": {"priceDimensions": {"b": {"unit": "Hrs", "pricePerUnit": {"USD": "0.0052"}}}}}}
}`
		row, ok := parsePriceItem(doc, fetchedAt)
		require.True(t, ok)
		assert.InDelta(t, 0.5, row.MemoryGB, 1e-9)
	})
}
