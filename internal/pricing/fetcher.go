package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	pricingapi "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type FetchConfig struct {
	Region     string
	MaxRecords int
	RateLimit  rate.Limit
	BurstSize  int
}

func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Region:     "us-east-1",
		MaxRecords: 5000,
		RateLimit:  8,
		BurstSize:  16,
	}
}

// Fetcher pulls EC2 on-demand pricing from the AWS Pricing API.
type Fetcher struct {
	client  *pricingapi.Client
	limiter *rate.Limiter
	cfg     FetchConfig
	log     *zap.Logger
}

func NewFetcher(client *pricingapi.Client, cfg FetchConfig, log *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.BurstSize),
		cfg:     cfg,
		log:     log,
	}
}

var reMemoryGB = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*GiB`)

// FetchCompute pages through GetProducts for shared-tenancy Linux instances
// in the configured region until MaxRecords rows are collected.
func (f *Fetcher) FetchCompute(ctx context.Context) ([]ComputePrice, error) {
	filters := []types.Filter{
		{Type: types.FilterTypeTermMatch, Field: aws.String("regionCode"), Value: aws.String(f.cfg.Region)},
		{Type: types.FilterTypeTermMatch, Field: aws.String("operatingSystem"), Value: aws.String("Linux")},
		{Type: types.FilterTypeTermMatch, Field: aws.String("tenancy"), Value: aws.String("Shared")},
		{Type: types.FilterTypeTermMatch, Field: aws.String("preInstalledSw"), Value: aws.String("NA")},
		{Type: types.FilterTypeTermMatch, Field: aws.String("capacitystatus"), Value: aws.String("Used")},
	}

	var (
		out       []ComputePrice
		nextToken *string
		fetchedAt = time.Now().UTC()
	)

	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return out, err
		}

		resp, err := f.client.GetProducts(ctx, &pricingapi.GetProductsInput{
			ServiceCode:   aws.String("AmazonEC2"),
			Filters:       filters,
			FormatVersion: aws.String("aws_v1"),
			NextToken:     nextToken,
		})
		if err != nil {
			return out, fmt.Errorf("get products: %w", err)
		}

		for _, item := range resp.PriceList {
			row, ok := parsePriceItem(item, fetchedAt)
			if !ok {
				continue
			}
			out = append(out, row)
			if len(out) >= f.cfg.MaxRecords {
				f.log.Info("fetch limit reached", zap.Int("rows", len(out)))
				return out, nil
			}
		}

		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		nextToken = resp.NextToken
	}

	f.log.Info("fetch complete", zap.Int("rows", len(out)))
	return out, nil
}

// parsePriceItem digs the fields we keep out of one aws_v1 price document.
func parsePriceItem(raw string, fetchedAt time.Time) (ComputePrice, bool) {
	var doc struct {
		Product struct {
			SKU        string `json:"sku"`
			Attributes struct {
				InstanceType string `json:"instanceType"`
				VCPU         string `json:"vcpu"`
				Memory       string `json:"memory"`
				RegionCode   string `json:"regionCode"`
			} `json:"attributes"`
		} `json:"product"`
		Terms struct {
			OnDemand map[string]struct {
				PriceDimensions map[string]struct {
					Unit         string            `json:"unit"`
					PricePerUnit map[string]string `json:"pricePerUnit"`
				} `json:"priceDimensions"`
			} `json:"OnDemand"`
		} `json:"terms"`
	}

	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ComputePrice{}, false
	}
	if doc.Product.SKU == "" || doc.Product.Attributes.InstanceType == "" {
		return ComputePrice{}, false
	}

	vcpu, _ := strconv.Atoi(doc.Product.Attributes.VCPU)

	memGB := 0.0
	if m := reMemoryGB.FindStringSubmatch(doc.Product.Attributes.Memory); len(m) == 2 {
		memGB, _ = strconv.ParseFloat(m[1], 64)
	}

	price := 0.0
	for _, term := range doc.Terms.OnDemand {
		for _, dim := range term.PriceDimensions {
			if usd, ok := dim.PricePerUnit["USD"]; ok {
				if v, err := strconv.ParseFloat(usd, 64); err == nil && v > 0 {
					price = v
				}
			}
		}
	}
	if price == 0 {
		return ComputePrice{}, false
	}

	return ComputePrice{
		Provider:       "aws",
		SKUID:          doc.Product.SKU,
		Region:         doc.Product.Attributes.RegionCode,
		InstanceType:   doc.Product.Attributes.InstanceType,
		VCPU:           vcpu,
		MemoryGB:       memGB,
		PricePerHour:   price,
		Currency:       "USD",
		PurchaseOption: "on_demand",
		FetchedAt:      fetchedAt,
	}, true
}
