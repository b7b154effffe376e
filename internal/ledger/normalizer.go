package ledger

import (
	"log"
	"strconv"
	"strings"
	"time"

	"LedgerLens/internal/model"
)

// RawRecord is a source-shaped transaction row before validation. All fields
// are kept as strings; the normalizer owns every conversion.
type RawRecord struct {
	Datetime string
	Symbol   string
	Side     string
	Amount   string
	Cost     string
}

// timestampLayouts are tried in order when parsing a raw datetime.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize converts raw records into immutable trades. A malformed record
// is skipped with a warning and never aborts the run; the skipped count is
// returned alongside the trades.
func Normalize(records []RawRecord) ([]model.Trade, int) {
	trades := make([]model.Trade, 0, len(records))
	skipped := 0

	for i, rec := range records {
		trade, reason := normalizeOne(rec)
		if reason != "" {
			log.Printf("[WARN] skipping malformed trade record %d: %s", i, reason)
			skipped++
			continue
		}
		trades = append(trades, trade)
	}

	if skipped > 0 {
		log.Printf("[WARN] normalizer skipped %d of %d records", skipped, len(records))
	}
	return trades, skipped
}

func normalizeOne(rec RawRecord) (model.Trade, string) {
	ts, ok := parseTimestamp(rec.Datetime)
	if !ok {
		return model.Trade{}, "missing or unparseable timestamp " + strconv.Quote(rec.Datetime)
	}

	side, ok := parseSide(rec.Side)
	if !ok {
		return model.Trade{}, "unrecognized side " + strconv.Quote(rec.Side)
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(rec.Amount), 64)
	if err != nil || qty <= 0 {
		return model.Trade{}, "non-positive or non-numeric quantity " + strconv.Quote(rec.Amount)
	}

	cost, err := strconv.ParseFloat(strings.TrimSpace(rec.Cost), 64)
	if err != nil || cost < 0 {
		return model.Trade{}, "negative or non-numeric cost " + strconv.Quote(rec.Cost)
	}

	asset := BaseAsset(rec.Symbol)
	if asset == "" {
		return model.Trade{}, "empty asset symbol"
	}

	return model.Trade{
		Day:      model.DayOf(ts),
		Asset:    asset,
		Side:     side,
		Quantity: qty,
		Cost:     cost,
	}, ""
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseSide(s string) (model.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return model.Buy, true
	case "sell":
		return model.Sell, true
	default:
		return "", false
	}
}

// quoteSuffixes are stripped from pair symbols written without a separator,
// e.g. "BTCUSDT" -> "BTC".
var quoteSuffixes = []string{"USDT", "BUSD", "USDC", "USD"}

// BaseAsset reduces a pair symbol to its base asset: "BTC/USDT" and
// "BTCUSDT" both become "BTC". A bare asset symbol passes through unchanged.
func BaseAsset(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.IndexAny(symbol, "/-"); i >= 0 {
		return symbol[:i]
	}
	for _, q := range quoteSuffixes {
		if strings.HasSuffix(symbol, q) && len(symbol) > len(q) {
			return strings.TrimSuffix(symbol, q)
		}
	}
	return symbol
}
