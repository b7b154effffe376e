// Package stats derives summary performance statistics from the daily
// valuation and return series.
package stats

import (
	"math"

	"LedgerLens/internal/model"
)

// Summary aggregates the run's performance figures.
type Summary struct {
	TotalDays        int
	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64 // sample stddev of daily returns
	MaxDrawdown      float64 // most negative (value - peak) / peak
	SharpeRatio      float64 // zero risk-free rate
	PositiveDays     int
	NegativeDays     int
	WinRate          float64
}

// Summarize computes the summary over the full valuation series and its
// derived returns. Every figure is zero-guarded; the result is always
// finite.
func Summarize(valuations []model.ValuationRecord, returns []model.ReturnRecord) Summary {
	s := Summary{TotalDays: len(valuations)}
	if len(valuations) == 0 {
		return s
	}

	initial := valuations[0].Value
	final := valuations[len(valuations)-1].Value
	if initial > 0 {
		s.TotalReturn = (final - initial) / initial
	}
	if s.TotalDays > 0 && s.TotalReturn > -1 {
		s.AnnualizedReturn = math.Pow(1+s.TotalReturn, 365/float64(s.TotalDays)) - 1
	}

	for _, r := range returns {
		switch {
		case r.Return > 0:
			s.PositiveDays++
		case r.Return < 0:
			s.NegativeDays++
		}
	}
	if s.TotalDays > 0 {
		s.WinRate = float64(s.PositiveDays) / float64(s.TotalDays)
	}

	s.Volatility = stddev(returns)
	s.MaxDrawdown = maxDrawdown(valuations)
	if s.Volatility > 0 {
		s.SharpeRatio = s.AnnualizedReturn / s.Volatility * math.Sqrt(365)
	}
	return s
}

func stddev(returns []model.ReturnRecord) float64 {
	if len(returns) < 2 {
		return 0
	}
	var sum float64
	for _, r := range returns {
		sum += r.Return
	}
	mean := sum / float64(len(returns))

	var sq float64
	for _, r := range returns {
		d := r.Return - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(returns)-1))
}

func maxDrawdown(valuations []model.ValuationRecord) float64 {
	var peak, worst float64
	for _, v := range valuations {
		if v.Value > peak {
			peak = v.Value
		}
		if peak > 0 {
			if dd := (v.Value - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
