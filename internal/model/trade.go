package model

import "time"

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Trade is a single normalized ledger entry. Quantity is always positive;
// the side carries the sign. Immutable once produced by the normalizer.
type Trade struct {
	Day      time.Time // UTC calendar day the trade takes effect
	Asset    string    // base asset symbol, e.g. "BTC"
	Side     Side
	Quantity float64 // asset units, > 0
	Cost     float64 // quote-currency units, >= 0
}
