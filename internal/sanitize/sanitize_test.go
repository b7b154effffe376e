package sanitize

import (
	"math"
	"testing"
	"time"

	"LedgerLens/internal/model"
)

func TestSnapshots_ReplacesNonFinite(t *testing.T) {
	snaps := []model.HoldingsSnapshot{
		{Day: time.Now(), Cash: math.NaN(), Quantities: map[string]float64{
			"BTC": math.Inf(1),
			"ETH": 2.5,
		}},
		{Day: time.Now(), Cash: 100, Quantities: map[string]float64{
			"BTC": math.Inf(-1),
		}},
	}

	counts := Snapshots(snaps)

	if counts["cash"] != 1 || counts["BTC"] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if counts.Total() != 3 {
		t.Errorf("expected 3 replacements, got %d", counts.Total())
	}
	if snaps[0].Cash != 0 || snaps[0].Quantities["BTC"] != 0 || snaps[1].Quantities["BTC"] != 0 {
		t.Error("non-finite values not zeroed")
	}
	if snaps[0].Quantities["ETH"] != 2.5 || snaps[1].Cash != 100 {
		t.Error("finite values must be untouched")
	}
}

func TestValuations_ReplacesNonFinite(t *testing.T) {
	records := []model.ValuationRecord{
		{Value: math.Inf(1), Cash: 50},
		{Value: 10, Cash: math.NaN()},
		{Value: 20, Cash: 30},
	}
	counts := Valuations(records)
	if counts["value"] != 1 || counts["cash"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	for i, r := range records {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || math.IsNaN(r.Cash) || math.IsInf(r.Cash, 0) {
			t.Errorf("record %d still non-finite: %+v", i, r)
		}
	}
}

func TestReturns_ReplacesNonFinite(t *testing.T) {
	records := []model.ReturnRecord{
		{Return: math.NaN()},
		{Return: 0.01},
		{Return: math.Inf(-1)},
	}
	counts := Returns(records)
	if counts["return"] != 2 {
		t.Errorf("expected 2 replacements, got %v", counts)
	}
	if records[0].Return != 0 || records[2].Return != 0 || records[1].Return != 0.01 {
		t.Errorf("unexpected values after pass: %+v", records)
	}
}

func TestCleanSeriesUntouched(t *testing.T) {
	records := []model.ValuationRecord{{Value: 1, Cash: 2}, {Value: 3, Cash: 4}}
	if counts := Valuations(records); counts.Total() != 0 {
		t.Errorf("clean series reported replacements: %v", counts)
	}
}
