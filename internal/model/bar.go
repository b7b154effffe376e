package model

import "time"

// PriceBar represents a single daily candlestick.
type PriceBar struct {
	Day            time.Time
	Open           float64
	High           float64
	Low            float64
	Close          float64
	Volume         float64 // base-asset volume
	QuoteVolume    float64 // quote-asset volume
	TradeCount     int64
	TakerBuyVolume float64 // taker-buy base-asset volume
}

// PriceSeries holds the resolved daily bars for one symbol, at most one bar
// per day in strictly increasing day order.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	Source    string // name of the tier that produced the bars
	Synthetic bool   // true when the bars are generated, not observed
}

// CloseByDay indexes the series' close prices by calendar day.
func (s *PriceSeries) CloseByDay() map[time.Time]float64 {
	closes := make(map[time.Time]float64, len(s.Bars))
	for _, b := range s.Bars {
		closes[b.Day] = b.Close
	}
	return closes
}
