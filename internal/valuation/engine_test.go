package valuation

import (
	"math"
	"testing"
	"time"

	"LedgerLens/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func snap(d string, cash float64, quantities map[string]float64) model.HoldingsSnapshot {
	if quantities == nil {
		quantities = map[string]float64{}
	}
	return model.HoldingsSnapshot{Day: day(d), Cash: cash, Quantities: quantities}
}

func TestValue_ScenarioThreeDays(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 6000, map[string]float64{"BTC": 0.1}),
		snap("2024-01-02", 6000, map[string]float64{"BTC": 0.1}),
		snap("2024-01-03", 8000, map[string]float64{"BTC": 0.05}),
	}
	prices := PriceIndex{"BTC": {
		day("2024-01-01"): 40000,
		day("2024-01-02"): 41000,
		day("2024-01-03"): 40000,
	}}

	records := Value(snaps, prices, nil)
	want := []float64{10000, 10100, 10000}
	for i, w := range want {
		if math.Abs(records[i].Value-w) > 1e-9 {
			t.Errorf("day %d: expected value %v, got %v", i+1, w, records[i].Value)
		}
	}
}

func TestValue_ForwardFillsMissingClose(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 0, map[string]float64{"BTC": 1}),
		snap("2024-01-02", 0, map[string]float64{"BTC": 1}),
		snap("2024-01-03", 0, map[string]float64{"BTC": 1}),
	}
	// Day 2 has no bar: its value uses day 1's close.
	prices := PriceIndex{"BTC": {
		day("2024-01-01"): 40000,
		day("2024-01-03"): 42000,
	}}

	records := Value(snaps, prices, nil)
	want := []float64{40000, 40000, 42000}
	for i, w := range want {
		if records[i].Value != w {
			t.Errorf("day %d: expected %v, got %v", i+1, w, records[i].Value)
		}
	}
}

func TestValue_UnpricedHoldingPropagatesPriorValue(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 100, map[string]float64{"BTC": 1}),
		snap("2024-01-02", 100, map[string]float64{"BTC": 1, "DOGE": 50}),
		snap("2024-01-03", 100, map[string]float64{"BTC": 1, "DOGE": 50}),
	}
	// DOGE never gets a price: days 2 and 3 are gaps and carry day 1's value.
	prices := PriceIndex{"BTC": {
		day("2024-01-01"): 40000,
		day("2024-01-02"): 41000,
		day("2024-01-03"): 42000,
	}}

	records := Value(snaps, prices, nil)
	if records[0].Value != 40100 {
		t.Fatalf("day 1: expected 40100, got %v", records[0].Value)
	}
	if records[1].Value != 40100 || records[2].Value != 40100 {
		t.Errorf("gap days should propagate prior value, got %v and %v", records[1].Value, records[2].Value)
	}
}

func TestValue_FirstDayGapFallsBackToPricedPortion(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 500, map[string]float64{"DOGE": 50}),
	}
	records := Value(snaps, PriceIndex{}, nil)
	if records[0].Value != 500 {
		t.Errorf("expected cash-only value 500, got %v", records[0].Value)
	}
}

func TestValue_PeggedAssetsUseFixedPrice(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 0, map[string]float64{"USDT": 1234.5, "BTC": 0.5}),
	}
	prices := PriceIndex{"BTC": {day("2024-01-01"): 40000}}
	pegged := map[string]float64{"USDT": 1.0}

	records := Value(snaps, prices, pegged)
	if records[0].Value != 1234.5+20000 {
		t.Errorf("expected 21234.5, got %v", records[0].Value)
	}
}

func TestValue_MultiAssetSumIsRunStable(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 0, map[string]float64{"AAA": 1, "BBB": 1, "CCC": 1}),
	}
	prices := PriceIndex{
		"AAA": {day("2024-01-01"): 0.1},
		"BBB": {day("2024-01-01"): 0.2},
		"CCC": {day("2024-01-01"): 0.3},
	}

	// 0.1 + 0.2 + 0.3 differs in the low bits depending on addition order,
	// so every rerun must sum the assets in the same order.
	first := Value(snaps, prices, nil)[0].Value
	for i := 0; i < 200; i++ {
		if got := Value(snaps, prices, nil)[0].Value; got != first {
			t.Fatalf("run %d: value %v differs from first run %v", i+2, got, first)
		}
	}
}

func TestValue_FlatPositionNeedsNoPrice(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		snap("2024-01-01", 750, map[string]float64{"BTC": 0}),
	}
	records := Value(snaps, PriceIndex{}, nil)
	if records[0].Value != 750 {
		t.Errorf("expected 750, got %v", records[0].Value)
	}
}
