// Package pipeline wires the stages together in data-flow order: normalize
// the ledger, resolve prices, reconstruct daily positions, sanitize, value,
// sanitize again, derive returns, summarize, persist.
package pipeline

import (
	"fmt"
	"log"
	"sort"
	"time"

	"LedgerLens/internal/ledger"
	"LedgerLens/internal/model"
	"LedgerLens/internal/position"
	"LedgerLens/internal/pricefeed"
	"LedgerLens/internal/recorder"
	"LedgerLens/internal/sanitize"
	"LedgerLens/internal/stats"
	"LedgerLens/internal/valuation"
)

// Pipeline is a single-run batch computation. Every run is a clean
// computation over its inputs; nothing is shared across runs.
type Pipeline struct {
	Resolver    *pricefeed.Resolver
	Recorder    recorder.Recorder
	InitialCash float64
	Pegged      map[string]float64 // asset -> fixed quote price, skips fetching
	SymbolMap   map[string]string  // asset -> market symbol, defaults to <ASSET>USDT
}

// Result bundles every series the run produced.
type Result struct {
	Trades     []model.Trade
	Skipped    int
	Series     map[string]*model.PriceSeries // by asset
	Snapshots  []model.HoldingsSnapshot
	Valuations []model.ValuationRecord
	Returns    []model.ReturnRecord
	Summary    stats.Summary
}

// Run executes the full pipeline over the raw records. A zero start or end
// derives the bound from the ledger itself. Data-quality issues surface as
// warnings; only malformed top-level inputs (no usable trades, an inverted
// range) abort.
func (p *Pipeline) Run(records []ledger.RawRecord, start, end time.Time) (*Result, error) {
	trades, skipped := ledger.Normalize(records)
	if len(trades) == 0 {
		return nil, fmt.Errorf("pipeline: no valid trades in %d records", len(records))
	}

	if start.IsZero() {
		start = earliest(trades)
	}
	if end.IsZero() {
		end = latest(trades)
	}

	series, prices, err := p.resolvePrices(trades, start, end)
	if err != nil {
		return nil, err
	}

	snapshots, err := position.Reconstruct(trades, start, end, p.InitialCash)
	if err != nil {
		return nil, err
	}
	sanitize.Snapshots(snapshots)

	valuations := valuation.Value(snapshots, prices, p.Pegged)
	sanitize.Valuations(valuations)

	returns := valuation.Returns(valuations)
	sanitize.Returns(returns)

	result := &Result{
		Trades:     trades,
		Skipped:    skipped,
		Series:     series,
		Snapshots:  snapshots,
		Valuations: valuations,
		Returns:    returns,
		Summary:    stats.Summarize(valuations, returns),
	}
	p.persist(result)
	return result, nil
}

func (p *Pipeline) resolvePrices(trades []model.Trade, start, end time.Time) (map[string]*model.PriceSeries, valuation.PriceIndex, error) {
	series := make(map[string]*model.PriceSeries)
	prices := make(valuation.PriceIndex)

	for _, asset := range priceableAssets(trades, p.Pegged) {
		s, err := p.Resolver.Resolve(p.marketSymbol(asset), start, end)
		if err != nil {
			return nil, nil, fmt.Errorf("pipeline: resolve %s: %w", asset, err)
		}
		series[asset] = s
		prices[asset] = s.CloseByDay()
	}
	return series, prices, nil
}

func (p *Pipeline) persist(result *Result) {
	rec := p.Recorder
	if rec == nil {
		return
	}
	for _, s := range result.Series {
		if err := rec.RecordBars(s); err != nil {
			log.Printf("[ERROR] record bars for %s: %v", s.Symbol, err)
		}
	}
	if err := rec.RecordPositions(result.Snapshots); err != nil {
		log.Printf("[ERROR] record positions: %v", err)
	}
	if err := rec.RecordValuations(result.Valuations); err != nil {
		log.Printf("[ERROR] record valuations: %v", err)
	}
	if err := rec.RecordReturns(result.Returns); err != nil {
		log.Printf("[ERROR] record returns: %v", err)
	}
}

func (p *Pipeline) marketSymbol(asset string) string {
	if s, ok := p.SymbolMap[asset]; ok {
		return s
	}
	return asset + "USDT"
}

// priceableAssets returns the distinct traded assets that need a price
// series, sorted for deterministic resolution order.
func priceableAssets(trades []model.Trade, pegged map[string]float64) []string {
	set := map[string]bool{}
	for _, t := range trades {
		if _, fixed := pegged[t.Asset]; fixed {
			continue
		}
		set[t.Asset] = true
	}
	assets := make([]string, 0, len(set))
	for asset := range set {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

func earliest(trades []model.Trade) time.Time {
	min := trades[0].Day
	for _, t := range trades[1:] {
		if t.Day.Before(min) {
			min = t.Day
		}
	}
	return min
}

func latest(trades []model.Trade) time.Time {
	max := trades[0].Day
	for _, t := range trades[1:] {
		if t.Day.After(max) {
			max = t.Day
		}
	}
	return max
}
