package pricefeed

import (
	"math"
	"reflect"
	"testing"

	"LedgerLens/internal/model"
)

func TestSynthetic_OneBarPerDay(t *testing.T) {
	src := &SyntheticSource{}
	bars, err := src.FetchDailyBars("BTCUSDT", day("2024-01-01"), day("2024-01-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 31 {
		t.Fatalf("expected 31 bars, got %d", len(bars))
	}
	for i, b := range bars {
		want := day("2024-01-01").AddDate(0, 0, i)
		if !b.Day.Equal(want) {
			t.Errorf("bar %d: expected day %s, got %s", i, want.Format(model.DayFormat), b.Day.Format(model.DayFormat))
		}
	}
}

func TestSynthetic_Deterministic(t *testing.T) {
	src := &SyntheticSource{}
	a, _ := src.FetchDailyBars("BTCUSDT", day("2024-01-01"), day("2024-03-01"))
	b, _ := src.FetchDailyBars("BTCUSDT", day("2024-01-01"), day("2024-03-01"))
	if !reflect.DeepEqual(a, b) {
		t.Error("identical requests produced different series")
	}

	other, _ := src.FetchDailyBars("ETHUSDT", day("2024-01-01"), day("2024-03-01"))
	if reflect.DeepEqual(a, other) {
		t.Error("distinct symbols produced identical series")
	}
}

func TestSynthetic_BarShape(t *testing.T) {
	src := &SyntheticSource{}
	bars, err := src.FetchDailyBars("SOLUSDT", day("2024-01-01"), day("2024-12-31"))
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range bars {
		if b.High < math.Max(b.Open, b.Close) {
			t.Errorf("bar %d: high %v below max(open, close)", i, b.High)
		}
		if b.Low > math.Min(b.Open, b.Close) {
			t.Errorf("bar %d: low %v above min(open, close)", i, b.Low)
		}
		if b.Close < priceFloor {
			t.Errorf("bar %d: close %v below floor", i, b.Close)
		}
		if b.Volume <= 0 || b.QuoteVolume <= 0 || b.TradeCount <= 0 {
			t.Errorf("bar %d: non-positive volume fields", i)
		}
		if i > 0 && b.Open != bars[i-1].Close {
			t.Errorf("bar %d: open %v does not continue prior close %v", i, b.Open, bars[i-1].Close)
		}
	}
}

func TestSynthetic_FloorHoldsUnderHighVolatility(t *testing.T) {
	src := &SyntheticSource{StartPrice: 1500, Volatility: 0.9}
	bars, err := src.FetchDailyBars("DOGEUSDT", day("2024-01-01"), day("2024-06-30"))
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range bars {
		if b.Close < priceFloor {
			t.Fatalf("bar %d: close %v fell through the floor", i, b.Close)
		}
	}
}
