// Package store handles SQLite persistence of analysis runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rlvaugh/benford/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			total INTEGER NOT NULL,
			chi_square REAL NOT NULL,
			match INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_digits (
			run_id INTEGER NOT NULL,
			digit INTEGER NOT NULL,
			observed INTEGER NOT NULL,
			expected INTEGER NOT NULL,
			PRIMARY KEY (run_id, digit)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores an analysis run and its per-digit counts.
func (s *Store) InsertRun(ctx context.Context, createdAt time.Time, source string, analysis model.Analysis) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	match := 0
	if analysis.Match {
		match = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, source, total, chi_square, match)
		 VALUES (?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		source,
		analysis.Total,
		analysis.ChiSquare,
		match,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_digits (run_id, digit, observed, expected)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i := range analysis.ObservedCounts {
		if _, err := stmt.ExecContext(ctx, id, i+1, analysis.ObservedCounts[i], analysis.ExpectedCounts[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns stored runs filtered by history config, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, created_at, source, total, chi_square, match
		FROM runs
		WHERE %s
		ORDER BY created_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var rec model.RunRecord
		var createdAt string
		var match int
		if err := rows.Scan(&rec.RunID, &createdAt, &rec.Source, &rec.Total, &rec.ChiSquare, &match); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Match = match != 0
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}

// ListRunDigits returns per-digit counts for a stored run, ordered by digit.
func (s *Store) ListRunDigits(ctx context.Context, runID int64) ([]model.RunDigit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT digit, observed, expected FROM run_digits
		 WHERE run_id = ?
		 ORDER BY digit ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var digits []model.RunDigit
	for rows.Next() {
		var d model.RunDigit
		if err := rows.Scan(&d.Digit, &d.Observed, &d.Expected); err != nil {
			return nil, err
		}
		digits = append(digits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return digits, nil
}
