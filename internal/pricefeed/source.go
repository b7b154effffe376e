package pricefeed

import (
	"errors"
	"time"

	"LedgerLens/internal/model"
)

// Source is one ranked provider of daily price bars.
type Source interface {
	// FetchDailyBars returns the daily bars for symbol covering
	// [start, end] inclusive. Implementations make a single bounded
	// attempt; any failure is reported to the resolver, never retried.
	FetchDailyBars(symbol string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
	// Synthetic reports whether the source generates bars instead of
	// observing them.
	Synthetic() bool
}

// ErrPriceUnavailable is returned when every configured tier fails.
var ErrPriceUnavailable = errors.New("pricefeed: no tier could provide price data")
