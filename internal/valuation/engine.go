package valuation

import (
	"log"
	"sort"
	"time"

	"LedgerLens/internal/model"
)

// PriceIndex maps an asset symbol to its day-indexed close prices.
type PriceIndex map[string]map[time.Time]float64

// Value converts each day's holdings snapshot into one valuation record:
// value = cash + sum(quantity * close). A missing close forward-fills the
// last known close for that asset. If a held asset has never been priced,
// the day propagates the previous record's value unchanged — a missing-data
// gap, not an error. No division anywhere.
func Value(snapshots []model.HoldingsSnapshot, prices PriceIndex, pegged map[string]float64) []model.ValuationRecord {
	records := make([]model.ValuationRecord, 0, len(snapshots))
	lastClose := make(map[string]float64)
	gaps := 0

	for _, snap := range snapshots {
		total := snap.Cash
		gap := false

		// Sum in sorted asset order; float addition is order-sensitive and
		// map iteration order would make reruns differ in the low bits.
		assets := make([]string, 0, len(snap.Quantities))
		for asset := range snap.Quantities {
			assets = append(assets, asset)
		}
		sort.Strings(assets)

		for _, asset := range assets {
			qty := snap.Quantities[asset]
			// Keep the forward-fill state warm even for flat positions.
			if c, ok := prices[asset][snap.Day]; ok {
				lastClose[asset] = c
			}
			if qty == 0 {
				continue
			}
			if p, ok := pegged[asset]; ok {
				total += qty * p
				continue
			}
			if c, ok := lastClose[asset]; ok {
				total += qty * c
				continue
			}
			gap = true
		}

		if gap {
			gaps++
			if len(records) > 0 {
				total = records[len(records)-1].Value
			}
		}
		records = append(records, model.ValuationRecord{Day: snap.Day, Value: total, Cash: snap.Cash})
	}

	if gaps > 0 {
		log.Printf("[WARN] valuation: %d days had unpriceable holdings, propagated prior value", gaps)
	}
	return records
}
