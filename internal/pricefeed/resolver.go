package pricefeed

import (
	"log"
	"sort"
	"time"

	"LedgerLens/internal/model"
)

// Resolver obtains a gap-minimal, chronologically ordered price series by
// trying each tier in order. Any error, empty response or malformed payload
// at one tier falls through unconditionally to the next.
type Resolver struct {
	Tiers []Source
}

// NewResolver creates a resolver over the given tiers, highest priority
// first. The last tier is expected to be the synthetic generator.
func NewResolver(tiers ...Source) *Resolver {
	return &Resolver{Tiers: tiers}
}

// Resolve returns the daily price series for symbol over [start, end]
// inclusive. It fails with ErrPriceUnavailable only if every tier fails.
func (r *Resolver) Resolve(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	for _, tier := range r.Tiers {
		bars, err := tier.FetchDailyBars(symbol, start, end)
		if err != nil {
			log.Printf("[WARN] price tier %s failed for %s: %v", tier.Name(), symbol, err)
			continue
		}
		if len(bars) == 0 {
			log.Printf("[WARN] price tier %s returned no bars for %s", tier.Name(), symbol)
			continue
		}
		bars = normalize(bars)
		log.Printf("[INFO] price data for %s served by tier %s (%d bars)", symbol, tier.Name(), len(bars))
		return &model.PriceSeries{
			Symbol:    symbol,
			Bars:      bars,
			Source:    tier.Name(),
			Synthetic: tier.Synthetic(),
		}, nil
	}
	return nil, ErrPriceUnavailable
}

// normalize sorts chronologically and drops duplicate days, keeping the
// first bar seen for each day.
func normalize(bars []model.PriceBar) []model.PriceBar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Day.Before(bars[j].Day) })
	out := bars[:0]
	var last time.Time
	for _, b := range bars {
		if len(out) > 0 && b.Day.Equal(last) {
			continue
		}
		out = append(out, b)
		last = b.Day
	}
	return out
}
