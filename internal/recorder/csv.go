package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"LedgerLens/internal/model"
)

// CSVRecorder writes produced series as date-indexed CSV files shaped for
// direct ingestion by portfolio-analytics tooling. Empty paths disable the
// corresponding output.
type CSVRecorder struct {
	PositionsPath  string
	ValuationsPath string
	ReturnsPath    string
	PricesDir      string // one <symbol>.csv per resolved series
}

func (c *CSVRecorder) RecordBars(series *model.PriceSeries) error {
	if c.PricesDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.PricesDir, 0755); err != nil {
		return fmt.Errorf("prices dir: %w", err)
	}

	rows := [][]string{{"date", "open", "high", "low", "close", "volume", "quote_volume", "trade_count", "taker_buy_volume", "source"}}
	for _, b := range series.Bars {
		rows = append(rows, []string{
			b.Day.Format(model.DayFormat),
			f(b.Open), f(b.High), f(b.Low), f(b.Close),
			f(b.Volume), f(b.QuoteVolume),
			strconv.FormatInt(b.TradeCount, 10),
			f(b.TakerBuyVolume),
			series.Source,
		})
	}
	name := strings.ToLower(series.Symbol) + ".csv"
	return writeCSV(filepath.Join(c.PricesDir, name), rows)
}

// RecordPositions writes one row per day: date, one column per asset in
// sorted order, then cash.
func (c *CSVRecorder) RecordPositions(snapshots []model.HoldingsSnapshot) error {
	if c.PositionsPath == "" {
		return nil
	}

	assets := assetColumns(snapshots)
	header := append(append([]string{"date"}, assets...), "cash")
	rows := [][]string{header}

	for _, s := range snapshots {
		row := make([]string, 0, len(header))
		row = append(row, s.Day.Format(model.DayFormat))
		for _, asset := range assets {
			row = append(row, f(s.Quantities[asset]))
		}
		row = append(row, f(s.Cash))
		rows = append(rows, row)
	}
	return writeCSV(c.PositionsPath, rows)
}

func (c *CSVRecorder) RecordValuations(records []model.ValuationRecord) error {
	if c.ValuationsPath == "" {
		return nil
	}
	rows := [][]string{{"date", "value", "cash"}}
	for _, v := range records {
		rows = append(rows, []string{v.Day.Format(model.DayFormat), f(v.Value), f(v.Cash)})
	}
	return writeCSV(c.ValuationsPath, rows)
}

func (c *CSVRecorder) RecordReturns(records []model.ReturnRecord) error {
	if c.ReturnsPath == "" {
		return nil
	}
	rows := [][]string{{"date", "return"}}
	for _, r := range records {
		rows = append(rows, []string{r.Day.Format(model.DayFormat), f(r.Return)})
	}
	return writeCSV(c.ReturnsPath, rows)
}

func (c *CSVRecorder) Close() error { return nil }

func assetColumns(snapshots []model.HoldingsSnapshot) []string {
	set := map[string]bool{}
	for _, s := range snapshots {
		for asset := range s.Quantities {
			set[asset] = true
		}
	}
	assets := make([]string, 0, len(set))
	for asset := range set {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
