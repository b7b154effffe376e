package model

import "time"

// HoldingsSnapshot is the full holdings state (asset quantities plus cash)
// as of the end of one calendar day.
type HoldingsSnapshot struct {
	Day        time.Time
	Cash       float64
	Quantities map[string]float64 // asset symbol -> units held
}

// Clone returns a deep copy of the snapshot. The reconstructor emits copies
// so that later updates to its running state never alter an emitted day.
func (s HoldingsSnapshot) Clone() HoldingsSnapshot {
	q := make(map[string]float64, len(s.Quantities))
	for asset, qty := range s.Quantities {
		q[asset] = qty
	}
	return HoldingsSnapshot{Day: s.Day, Cash: s.Cash, Quantities: q}
}

// ValuationRecord is the scalar portfolio value for one day.
type ValuationRecord struct {
	Day   time.Time
	Value float64 // cash + sum(quantity * close)
	Cash  float64
}

// ReturnRecord is the day-over-day percentage change of portfolio value.
type ReturnRecord struct {
	Day    time.Time
	Return float64
}
