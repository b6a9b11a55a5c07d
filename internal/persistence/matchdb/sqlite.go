// Package matchdb is a read-model index of finished matches backed by
// sqlite. It never participates in simulation determinism; it only records
// what the archive already holds so the API can list and look up matches.
package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("match not found")

type DB struct {
	db *sql.DB
}

type Row struct {
	ID          string
	Seed        string
	TeamA       string
	TeamB       string
	Winner      int
	Reason      string
	Ticks       int
	KillsA      int
	KillsB      int
	GoldA       int
	GoldB       int
	EventCount  int
	ArchivePath string
	FinishedAt  time.Time
}

func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id           TEXT PRIMARY KEY,
	seed         TEXT NOT NULL,
	team_a       TEXT NOT NULL,
	team_b       TEXT NOT NULL,
	winner       INTEGER NOT NULL,
	reason       TEXT NOT NULL,
	ticks        INTEGER NOT NULL,
	kills_a      INTEGER NOT NULL,
	kills_b      INTEGER NOT NULL,
	gold_a       INTEGER NOT NULL,
	gold_b       INTEGER NOT NULL,
	event_count  INTEGER NOT NULL,
	archive_path TEXT NOT NULL,
	finished_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches(finished_at DESC);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

func (d *DB) Insert(ctx context.Context, r Row) error {
	_, err := d.db.ExecContext(ctx, `
INSERT OR REPLACE INTO matches
	(id, seed, team_a, team_b, winner, reason, ticks, kills_a, kills_b, gold_a, gold_b, event_count, archive_path, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.TeamA, r.TeamB, r.Winner, r.Reason, r.Ticks,
		r.KillsA, r.KillsB, r.GoldA, r.GoldB, r.EventCount, r.ArchivePath,
		r.FinishedAt.UTC().Format(time.RFC3339))
	return err
}

func (d *DB) Get(ctx context.Context, id string) (Row, error) {
	row := d.db.QueryRowContext(ctx, `
SELECT id, seed, team_a, team_b, winner, reason, ticks, kills_a, kills_b, gold_a, gold_b, event_count, archive_path, finished_at
FROM matches WHERE id = ?`, id)
	return scanRow(row)
}

func (d *DB) ListRecent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.QueryContext(ctx, `
SELECT id, seed, team_a, team_b, winner, reason, ticks, kills_a, kills_b, gold_a, gold_b, event_count, archive_path, finished_at
FROM matches ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRow(s scannable) (Row, error) {
	var r Row
	var finished string
	err := s.Scan(&r.ID, &r.Seed, &r.TeamA, &r.TeamB, &r.Winner, &r.Reason, &r.Ticks,
		&r.KillsA, &r.KillsB, &r.GoldA, &r.GoldB, &r.EventCount, &r.ArchivePath, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return r, ErrNotFound
	}
	if err != nil {
		return r, err
	}
	if t, perr := time.Parse(time.RFC3339, finished); perr == nil {
		r.FinishedAt = t
	}
	return r, nil
}
