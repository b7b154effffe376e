// Package sanitize is the last line of defense against non-finite values
// accumulated anywhere in the pipeline's intermediate series. Each pass
// replaces NaN and ±Inf with zero and reports how many values were replaced
// per field.
package sanitize

import (
	"log"
	"math"

	"LedgerLens/internal/model"
)

// Counts maps a field or column name to the number of values replaced.
type Counts map[string]int

// Total sums the replacements across all fields.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Snapshots scrubs cash balances and asset quantities in place.
func Snapshots(snapshots []model.HoldingsSnapshot) Counts {
	counts := Counts{}
	for i := range snapshots {
		if !finite(snapshots[i].Cash) {
			snapshots[i].Cash = 0
			counts["cash"]++
		}
		for asset, qty := range snapshots[i].Quantities {
			if !finite(qty) {
				snapshots[i].Quantities[asset] = 0
				counts[asset]++
			}
		}
	}
	report("holdings", counts)
	return counts
}

// Valuations scrubs portfolio values and cash in place.
func Valuations(records []model.ValuationRecord) Counts {
	counts := Counts{}
	for i := range records {
		if !finite(records[i].Value) {
			records[i].Value = 0
			counts["value"]++
		}
		if !finite(records[i].Cash) {
			records[i].Cash = 0
			counts["cash"]++
		}
	}
	report("valuations", counts)
	return counts
}

// Returns scrubs the return series in place.
func Returns(records []model.ReturnRecord) Counts {
	counts := Counts{}
	for i := range records {
		if !finite(records[i].Return) {
			records[i].Return = 0
			counts["return"]++
		}
	}
	report("returns", counts)
	return counts
}

func report(series string, counts Counts) {
	for field, n := range counts {
		log.Printf("[WARN] sanitizer: replaced %d non-finite %s values in %s series", n, field, series)
	}
}
