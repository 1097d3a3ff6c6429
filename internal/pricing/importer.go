package pricing

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

const importBatchSize = 500

// ImportCSVFile loads a price CSV into postgres in batches.
func ImportCSVFile(ctx context.Context, repo *RatesRepo, path string, log *zap.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, skipped, err := ReadCSV(f)
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		log.Warn("skipped malformed price rows", zap.String("file", path), zap.Int("skipped", skipped))
	}

	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := repo.InsertBatch(ctx, rows[start:end]); err != nil {
			return start, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
	}

	log.Info("price import complete", zap.String("file", path), zap.Int("rows", len(rows)))
	return len(rows), nil
}
