package recorder

import "LedgerLens/internal/model"

// NoopRecorder is used when no output target is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordBars(_ *model.PriceSeries) error            { return nil }
func (n *NoopRecorder) RecordPositions(_ []model.HoldingsSnapshot) error { return nil }
func (n *NoopRecorder) RecordValuations(_ []model.ValuationRecord) error { return nil }
func (n *NoopRecorder) RecordReturns(_ []model.ReturnRecord) error       { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
