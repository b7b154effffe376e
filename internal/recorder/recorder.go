package recorder

import "LedgerLens/internal/model"

// Recorder persists the series a run produces for downstream analytics.
type Recorder interface {
	RecordBars(series *model.PriceSeries) error
	RecordPositions(snapshots []model.HoldingsSnapshot) error
	RecordValuations(records []model.ValuationRecord) error
	RecordReturns(records []model.ReturnRecord) error
	Close() error
}

// Tee fans every record out to multiple recorders.
type Tee []Recorder

func (t Tee) RecordBars(series *model.PriceSeries) error {
	return t.each(func(r Recorder) error { return r.RecordBars(series) })
}

func (t Tee) RecordPositions(snapshots []model.HoldingsSnapshot) error {
	return t.each(func(r Recorder) error { return r.RecordPositions(snapshots) })
}

func (t Tee) RecordValuations(records []model.ValuationRecord) error {
	return t.each(func(r Recorder) error { return r.RecordValuations(records) })
}

func (t Tee) RecordReturns(records []model.ReturnRecord) error {
	return t.each(func(r Recorder) error { return r.RecordReturns(records) })
}

func (t Tee) Close() error {
	return t.each(func(r Recorder) error { return r.Close() })
}

func (t Tee) each(fn func(Recorder) error) error {
	var firstErr error
	for _, r := range t {
		if err := fn(r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
