package valuation

import "LedgerLens/internal/model"

// Returns derives day-over-day percentage returns from the valuation series.
// The first day has no return and is omitted, not zeroed. A zero previous
// value forces the return to exactly 0 instead of propagating a division
// failure.
func Returns(valuations []model.ValuationRecord) []model.ReturnRecord {
	if len(valuations) < 2 {
		return nil
	}
	out := make([]model.ReturnRecord, 0, len(valuations)-1)
	for i := 1; i < len(valuations); i++ {
		prev := valuations[i-1].Value
		var r float64
		if prev != 0 {
			r = (valuations[i].Value - prev) / prev
		}
		out = append(out, model.ReturnRecord{Day: valuations[i].Day, Return: r})
	}
	return out
}
