// Package journal persists per-cycle outcome records to SQLite for later
// inspection. It stores decisions and outcomes, never market history.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/shopspring/decimal"

	"fundarb/internal/engine"
)

// Store is an append-mostly SQLite journal of cycle records.
type Store struct {
	db *sql.DB
}

// Open creates the journal file (and schema) if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cycles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			dominant TEXT NOT NULL DEFAULT '',
			rate_delta TEXT NOT NULL DEFAULT '0',
			yield TEXT NOT NULL DEFAULT '0',
			instructions INTEGER NOT NULL DEFAULT 0,
			signature TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("create cycles table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one cycle record.
func (s *Store) Record(ctx context.Context, rec engine.CycleRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cycles (at, outcome, reason, dominant, rate_delta, yield, instructions, signature) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rec.At.UnixMilli(), string(rec.Outcome), rec.Reason, rec.Dominant,
		rec.RateDelta.String(), rec.Yield.String(), rec.Instructions, rec.Signature,
	)
	if err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]engine.CycleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT at, outcome, reason, dominant, rate_delta, yield, instructions, signature FROM cycles ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var out []engine.CycleRecord
	for rows.Next() {
		var (
			at               int64
			outcome          string
			rec              engine.CycleRecord
			rateDelta, yield string
		)
		if err := rows.Scan(&at, &outcome, &rec.Reason, &rec.Dominant, &rateDelta, &yield, &rec.Instructions, &rec.Signature); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		rec.At = time.UnixMilli(at)
		rec.Outcome = engine.OutcomeKind(outcome)
		if rec.RateDelta, err = decimal.NewFromString(rateDelta); err != nil {
			return nil, fmt.Errorf("parse rate delta: %w", err)
		}
		if rec.Yield, err = decimal.NewFromString(yield); err != nil {
			return nil, fmt.Errorf("parse yield: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
