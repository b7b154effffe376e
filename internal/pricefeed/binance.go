package pricefeed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"LedgerLens/internal/model"
)

// klineLimit is the per-call cap of the klines endpoint. Ranges longer than
// this are fetched by re-issuing the call with an advancing start time.
const klineLimit = 1000

// KlineSource fetches daily bars from the Binance klines REST endpoint.
// With an API key it acts as the authenticated tier; without one it is the
// public tier.
type KlineSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	name string
}

// NewAuthenticatedSource creates the authenticated kline source. Fetching
// fails immediately when no API key is configured.
func NewAuthenticatedSource(baseURL, apiKey, proxyURL string) *KlineSource {
	return &KlineSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
		name:    "binance-auth",
	}
}

// NewPublicSource creates the unauthenticated kline source.
func NewPublicSource(baseURL, proxyURL string) *KlineSource {
	return &KlineSource{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL),
		name:    "binance-public",
	}
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

func (s *KlineSource) Name() string    { return s.name }
func (s *KlineSource) Synthetic() bool { return false }

// FetchDailyBars pages through /api/v3/klines until the requested range is
// covered, deduplicating by day.
func (s *KlineSource) FetchDailyBars(symbol string, start, end time.Time) ([]model.PriceBar, error) {
	if s.name == "binance-auth" && s.APIKey == "" {
		return nil, fmt.Errorf("fetch klines: no api key configured")
	}

	startMs := model.DayOf(start).UnixMilli()
	endMs := model.NextDay(end).UnixMilli() - 1

	seen := make(map[time.Time]bool)
	var bars []model.PriceBar

	for startMs <= endMs {
		batch, err := s.fetchPage(symbol, startMs, endMs)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		for _, b := range batch {
			if seen[b.Day] {
				continue
			}
			seen[b.Day] = true
			bars = append(bars, b)
		}
		// Advance past the last bar's day.
		startMs = model.NextDay(batch[len(batch)-1].Day).UnixMilli()
		if len(batch) < klineLimit {
			break
		}
	}

	return clipToRange(bars, start, end), nil
}

func (s *KlineSource) fetchPage(symbol string, startMs, endMs int64) ([]model.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&startTime=%d&endTime=%d&limit=%d",
		s.BaseURL, url.QueryEscape(symbol), startMs, endMs, klineLimit)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("X-MBX-APIKEY", s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch klines: status %d, body: %s", resp.StatusCode, string(body))
	}

	// Each kline is a 12-element array mixing numbers and decimal strings:
	// open time, open, high, low, close, volume, close time, quote volume,
	// trade count, taker-buy base volume, taker-buy quote volume, unused.
	var raw [][]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	bars := make([]model.PriceBar, 0, len(raw))
	for _, k := range raw {
		if len(k) < 10 {
			return nil, fmt.Errorf("decode klines: short record (%d fields)", len(k))
		}
		openTime, err := toInt64(k[0])
		if err != nil {
			return nil, fmt.Errorf("decode klines: open time: %w", err)
		}
		bar := model.PriceBar{
			Day:        model.DayOf(time.UnixMilli(openTime)),
			TradeCount: mustInt64(k[8]),
		}
		for _, field := range []struct {
			name string
			idx  int
			dst  *float64
		}{
			{"open", 1, &bar.Open},
			{"high", 2, &bar.High},
			{"low", 3, &bar.Low},
			{"close", 4, &bar.Close},
			{"volume", 5, &bar.Volume},
			{"quote volume", 7, &bar.QuoteVolume},
			{"taker buy volume", 9, &bar.TakerBuyVolume},
		} {
			v, err := toFloat(k[field.idx])
			if err != nil {
				return nil, fmt.Errorf("decode klines: %s: %w", field.name, err)
			}
			*field.dst = v
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// toFloat decodes a kline numeric field, which Binance encodes either as a
// JSON number or as a decimal string. A malformed field fails the whole
// page so the resolver can fall through to the next tier.
func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func mustInt64(v interface{}) int64 {
	n, err := toInt64(v)
	if err != nil {
		return 0
	}
	return n
}

func clipToRange(bars []model.PriceBar, start, end time.Time) []model.PriceBar {
	startDay, endDay := model.DayOf(start), model.DayOf(end)
	out := bars[:0]
	for _, b := range bars {
		if b.Day.Before(startDay) || b.Day.After(endDay) {
			continue
		}
		out = append(out, b)
	}
	return out
}
