package pricefeed

import (
	"errors"
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

type fakeSource struct {
	name      string
	bars      []model.PriceBar
	err       error
	synthetic bool
	calls     int
}

func (f *fakeSource) Name() string    { return f.name }
func (f *fakeSource) Synthetic() bool { return f.synthetic }

func (f *fakeSource) FetchDailyBars(symbol string, start, end time.Time) ([]model.PriceBar, error) {
	f.calls++
	return f.bars, f.err
}

func bar(d string, close float64) model.PriceBar {
	return model.PriceBar{Day: day(d), Close: close}
}

func TestResolve_FirstHealthyTierWins(t *testing.T) {
	primary := &fakeSource{name: "primary", bars: []model.PriceBar{bar("2024-01-01", 100)}}
	fallback := &fakeSource{name: "fallback", bars: []model.PriceBar{bar("2024-01-01", 999)}}

	series, err := NewResolver(primary, fallback).Resolve("BTCUSDT", day("2024-01-01"), day("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if series.Source != "primary" || series.Bars[0].Close != 100 {
		t.Errorf("expected primary's data, got %s / %v", series.Source, series.Bars[0].Close)
	}
	if fallback.calls != 0 {
		t.Error("fallback tier should not be consulted when the primary succeeds")
	}
}

func TestResolve_FallsThroughOnErrorAndEmpty(t *testing.T) {
	failing := &fakeSource{name: "failing", err: errors.New("boom")}
	empty := &fakeSource{name: "empty"}
	last := &fakeSource{name: "last", synthetic: true, bars: []model.PriceBar{bar("2024-01-01", 42)}}

	series, err := NewResolver(failing, empty, last).Resolve("BTCUSDT", day("2024-01-01"), day("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if series.Source != "last" || !series.Synthetic {
		t.Errorf("expected synthetic last tier, got %s (synthetic=%v)", series.Source, series.Synthetic)
	}
	if failing.calls != 1 || empty.calls != 1 {
		t.Error("every earlier tier should have been tried once")
	}
}

func TestResolve_AllTiersFail(t *testing.T) {
	_, err := NewResolver(
		&fakeSource{name: "a", err: errors.New("down")},
		&fakeSource{name: "b"},
	).Resolve("BTCUSDT", day("2024-01-01"), day("2024-01-02"))
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Fatalf("expected ErrPriceUnavailable, got %v", err)
	}
}

func TestResolve_SortsAndDeduplicates(t *testing.T) {
	src := &fakeSource{name: "messy", bars: []model.PriceBar{
		bar("2024-01-03", 3),
		bar("2024-01-01", 1),
		bar("2024-01-01", 111),
		bar("2024-01-02", 2),
	}}

	series, err := NewResolver(src).Resolve("BTCUSDT", day("2024-01-01"), day("2024-01-03"))
	if err != nil {
		t.Fatal(err)
	}
	if len(series.Bars) != 3 {
		t.Fatalf("expected 3 bars after dedup, got %d", len(series.Bars))
	}
	want := []float64{1, 2, 3}
	for i, w := range want {
		if series.Bars[i].Close != w {
			t.Errorf("bar %d: expected close %v, got %v", i, w, series.Bars[i].Close)
		}
		if i > 0 && !series.Bars[i-1].Day.Before(series.Bars[i].Day) {
			t.Errorf("bars not chronological at index %d", i)
		}
	}
}
