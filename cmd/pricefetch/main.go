package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	pricingapi "github.com/aws/aws-sdk-go-v2/service/pricing"

	"github.com/scale-advisor/scale-advisor-backend/config"
	"github.com/scale-advisor/scale-advisor-backend/internal/logging"
	"github.com/scale-advisor/scale-advisor-backend/internal/pricing"
)

// pricefetch pulls AWS compute pricing into a CSV, and optionally imports
// it straight into postgres with -import.
func main() {
	outDir := flag.String("out", "out", "directory for the price CSV")
	maxRecords := flag.Int("max", 5000, "maximum SKUs to fetch")
	doImport := flag.Bool("import", false, "import the CSV into postgres after fetching")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// The pricing API only lives in us-east-1 and ap-south-1.
	awsConf, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion("us-east-1"))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	fcfg := pricing.DefaultFetchConfig()
	fcfg.MaxRecords = *maxRecords

	fetcher := pricing.NewFetcher(pricingapi.NewFromConfig(awsConf), fcfg, logger)
	rows, err := fetcher.FetchCompute(ctx)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *outDir, err)
	}
	csvPath := filepath.Join(*outDir, "aws_compute_prices.csv")

	f, err := os.Create(csvPath)
	if err != nil {
		log.Fatalf("create %s: %v", csvPath, err)
	}
	if err := pricing.WriteCSV(f, rows); err != nil {
		f.Close()
		log.Fatalf("write csv: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close csv: %v", err)
	}
	log.Printf("wrote %d rows to %s", len(rows), csvPath)

	if !*doImport {
		return
	}

	pool, err := openPool(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	repo := pricing.NewRatesRepo(pool)
	n, err := pricing.ImportCSVFile(ctx, repo, csvPath, logger)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("imported %d rows", n)
}
