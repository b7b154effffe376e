package position

import (
	"fmt"
	"log"
	"sort"
	"time"

	"LedgerLens/internal/model"
)

// Reconstruct replays the ledger day by day over [start, end] inclusive and
// emits exactly one holdings snapshot per calendar day, zero-trade days
// included. A trade's delta is applied exactly once, on its own day, and is
// carried forward only through the running state — it is never broadcast
// across a date range and never alters an already emitted snapshot.
func Reconstruct(trades []model.Trade, start, end time.Time, initialCash float64) ([]model.HoldingsSnapshot, error) {
	startDay, endDay := model.DayOf(start), model.DayOf(end)
	if endDay.Before(startDay) {
		return nil, fmt.Errorf("reconstruct: end day %s before start day %s",
			endDay.Format(model.DayFormat), startDay.Format(model.DayFormat))
	}

	// Stable sort on a copy: same-day trades keep ledger order, and the
	// caller's slice is never reordered.
	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Day.Before(sorted[j].Day) })

	i := 0
	for i < len(sorted) && sorted[i].Day.Before(startDay) {
		log.Printf("[WARN] ignoring trade on %s before range start", sorted[i].Day.Format(model.DayFormat))
		i++
	}

	running := model.HoldingsSnapshot{
		Cash:       initialCash,
		Quantities: make(map[string]float64),
	}

	days := int(endDay.Sub(startDay).Hours()/24) + 1
	snapshots := make([]model.HoldingsSnapshot, 0, days)

	for day := startDay; !day.After(endDay); day = model.NextDay(day) {
		for i < len(sorted) && sorted[i].Day.Equal(day) {
			apply(&running, sorted[i])
			i++
		}
		running.Day = day
		snapshots = append(snapshots, running.Clone())
	}

	if i < len(sorted) {
		log.Printf("[WARN] ignoring %d trades after range end %s", len(sorted)-i, endDay.Format(model.DayFormat))
	}
	return snapshots, nil
}

func apply(state *model.HoldingsSnapshot, t model.Trade) {
	switch t.Side {
	case model.Buy:
		state.Quantities[t.Asset] += t.Quantity
		state.Cash -= t.Cost
	case model.Sell:
		state.Quantities[t.Asset] -= t.Quantity
		state.Cash += t.Cost
		// An oversell is a modeling choice, not a failure: the quantity
		// goes negative and the position reads as an implicit short.
		if state.Quantities[t.Asset] < 0 {
			log.Printf("[WARN] sell on %s drives %s quantity negative (%.8f)",
				t.Day.Format(model.DayFormat), t.Asset, state.Quantities[t.Asset])
		}
	}
}
