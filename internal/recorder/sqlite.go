package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"LedgerLens/internal/model"
)

// SQLiteRecorder persists produced series to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analytics tooling can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_bars (
			symbol           TEXT NOT NULL,
			day              TEXT NOT NULL,
			open             REAL,
			high             REAL,
			low              REAL,
			close            REAL,
			volume           REAL,
			quote_volume     REAL,
			trade_count      INTEGER,
			taker_buy_volume REAL,
			source           TEXT,
			synthetic        INTEGER,
			PRIMARY KEY (symbol, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_day ON price_bars(day)`,

		`CREATE TABLE IF NOT EXISTS positions (
			day      TEXT NOT NULL,
			asset    TEXT NOT NULL,
			quantity REAL,
			PRIMARY KEY (day, asset)
		)`,

		`CREATE TABLE IF NOT EXISTS valuations (
			day   TEXT PRIMARY KEY,
			value REAL,
			cash  REAL
		)`,

		`CREATE TABLE IF NOT EXISTS daily_returns (
			day TEXT PRIMARY KEY,
			ret REAL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBars(series *model.PriceSeries) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.inTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO price_bars
			(symbol, day, open, high, low, close, volume, quote_volume, trade_count, taker_buy_volume, source, synthetic)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		synthetic := 0
		if series.Synthetic {
			synthetic = 1
		}
		for _, b := range series.Bars {
			if _, err := stmt.Exec(series.Symbol, b.Day.Format(model.DayFormat),
				b.Open, b.High, b.Low, b.Close, b.Volume, b.QuoteVolume,
				b.TradeCount, b.TakerBuyVolume, series.Source, synthetic); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordPositions(snapshots []model.HoldingsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.inTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO positions (day, asset, quantity) VALUES (?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range snapshots {
			day := s.Day.Format(model.DayFormat)
			if _, err := stmt.Exec(day, "cash", s.Cash); err != nil {
				return err
			}
			for asset, qty := range s.Quantities {
				if _, err := stmt.Exec(day, asset, qty); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordValuations(records []model.ValuationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.inTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO valuations (day, value, cash) VALUES (?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, v := range records {
			if _, err := stmt.Exec(v.Day.Format(model.DayFormat), v.Value, v.Cash); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordReturns(records []model.ReturnRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.inTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO daily_returns (day, ret) VALUES (?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.Exec(rec.Day.Format(model.DayFormat), rec.Return); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) inTx(fn func(*sql.Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
