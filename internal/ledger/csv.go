package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadCSV loads raw transaction records from a CSV export. The header must
// contain datetime, symbol, side, amount and cost columns (case-insensitive,
// any order); extra columns are ignored. An unreadable file or missing
// header column is a top-level input error and aborts before any
// computation.
func ReadCSV(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width validated against the header below

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read ledger csv: empty file")
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"datetime", "symbol", "side", "amount", "cost"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("read ledger csv: missing column %q", required)
		}
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, RawRecord{
			Datetime: field(row, cols["datetime"]),
			Symbol:   field(row, cols["symbol"]),
			Side:     field(row, cols["side"]),
			Amount:   field(row, cols["amount"]),
			Cost:     field(row, cols["cost"]),
		})
	}
	return records, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
