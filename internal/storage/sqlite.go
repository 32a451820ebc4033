// Package storage persists verification results in a local SQLite
// database. Every run appends to one history table; best times and the
// latest outcome per level are derived from it with queries. The store
// uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a handle to the results database. It is safe for concurrent
// use by multiple goroutines.
type Store struct {
	db *sql.DB
}

// Result is one recorded verification run of one level.
type Result struct {
	ID        int64
	Pack      string
	Level     int
	Title     string
	Passed    bool
	Reason    string
	Ticks     int
	CreatedAt time.Time
}

// BestTime is the fastest passing run recorded for a level.
type BestTime struct {
	Pack      string
	Level     int
	Title     string
	Ticks     int
	CreatedAt time.Time
}

// Open opens the database at path, creating the file and any missing
// parent directories. A leading ~ expands to the user's home directory.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot reach database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		pack       TEXT NOT NULL,
		level      INTEGER NOT NULL,
		title      TEXT NOT NULL DEFAULT '',
		passed     INTEGER NOT NULL,
		reason     TEXT NOT NULL DEFAULT '',
		ticks      INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_pack_level ON results(pack, level);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("storage: cannot create tables: %w", err)
	}
	return nil
}

// SaveResult appends one run to the history and returns its row ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (pack, level, title, passed, reason, ticks) VALUES (?, ?, ?, ?, ?, ?)`,
		r.Pack, r.Level, r.Title, r.Passed, r.Reason, r.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	return id, nil
}

// LatestResults returns the most recent run of every level in the pack,
// keyed by level number. Levels never verified are absent from the map.
func (s *Store) LatestResults(pack string) (map[int]Result, error) {
	// With a MAX aggregate SQLite fills the bare columns from the row
	// the maximum came from, so each level yields its newest run.
	rows, err := s.db.Query(
		`SELECT MAX(id), level, title, passed, reason, ticks, created_at
		 FROM results WHERE pack = ? GROUP BY level`,
		pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load results: %w", err)
	}
	defer rows.Close()

	latest := make(map[int]Result)
	for rows.Next() {
		r := Result{Pack: pack}
		var created any
		if err := rows.Scan(&r.ID, &r.Level, &r.Title, &r.Passed, &r.Reason, &r.Ticks, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan result: %w", err)
		}
		r.CreatedAt = parseTimestamp(created)
		latest[r.Level] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot load results: %w", err)
	}
	return latest, nil
}

// BestTimes returns the fastest passing run of every level in the pack,
// ordered by level number.
func (s *Store) BestTimes(pack string) ([]BestTime, error) {
	return s.bestTimes(
		`SELECT pack, level, title, MIN(ticks), created_at
		 FROM results WHERE pack = ? AND passed = 1
		 GROUP BY level ORDER BY level`,
		pack,
	)
}

// AllBestTimes returns the fastest passing run of every level across all
// packs, ordered by pack name and then level number.
func (s *Store) AllBestTimes() ([]BestTime, error) {
	return s.bestTimes(
		`SELECT pack, level, title, MIN(ticks), created_at
		 FROM results WHERE passed = 1
		 GROUP BY pack, level ORDER BY pack, level`,
	)
}

func (s *Store) bestTimes(query string, args ...any) ([]BestTime, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load best times: %w", err)
	}
	defer rows.Close()

	var times []BestTime
	for rows.Next() {
		var bt BestTime
		var created any
		if err := rows.Scan(&bt.Pack, &bt.Level, &bt.Title, &bt.Ticks, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best time: %w", err)
		}
		bt.CreatedAt = parseTimestamp(created)
		times = append(times, bt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot load best times: %w", err)
	}
	return times, nil
}

// parseTimestamp tolerates both native time values and the text form the
// CURRENT_TIMESTAMP default produces.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse("2006-01-02 15:04:05", string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
