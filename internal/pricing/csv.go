package pricing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"provider", "sku_id", "region", "instance_type", "vcpu",
	"memory_gb", "price_per_hour", "currency", "purchase_option", "fetched_at",
}

// WriteCSV streams price rows in the import format.
func WriteCSV(w io.Writer, rows []ComputePrice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Provider, r.SKUID, r.Region, r.InstanceType,
			strconv.Itoa(r.VCPU),
			strconv.FormatFloat(r.MemoryGB, 'f', -1, 64),
			strconv.FormatFloat(r.PricePerHour, 'f', -1, 64),
			r.Currency, r.PurchaseOption,
			r.FetchedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV. Malformed lines are skipped and
// counted rather than failing the whole import.
func ReadCSV(r io.Reader) (rows []ComputePrice, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	// header
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	for {
		rec, rerr := cr.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			skipped++
			continue
		}

		vcpu, _ := strconv.Atoi(rec[4])
		memGB, _ := strconv.ParseFloat(rec[5], 64)
		price, perr := strconv.ParseFloat(rec[6], 64)
		fetchedAt, terr := time.Parse(time.RFC3339, rec[9])
		if perr != nil || terr != nil || rec[0] == "" || rec[1] == "" {
			skipped++
			continue
		}

		rows = append(rows, ComputePrice{
			Provider:       rec[0],
			SKUID:          rec[1],
			Region:         rec[2],
			InstanceType:   rec[3],
			VCPU:           vcpu,
			MemoryGB:       memGB,
			PricePerHour:   price,
			Currency:       rec[7],
			PurchaseOption: rec[8],
			FetchedAt:      fetchedAt,
		})
	}
	return rows, skipped, nil
}
