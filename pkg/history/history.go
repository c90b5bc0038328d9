// Package history is an optional generation archive: a SQLite-backed record
// of past mapgenctl runs, kept outside the pure mapgen core so the facade
// itself never touches a file or a database. Deliberately never imported
// by pkg/mapgen.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcclowes/tilemapgen/pkg/mapgen"
)

// Store wraps a SQLite connection holding one row per recorded generation.
type Store struct {
	conn *sql.DB
}

// Open creates (or reuses) a SQLite database at dbPath and ensures its
// schema exists.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", dbPath, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping %s: %w", dbPath, err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS generations (
			generation_id   TEXT PRIMARY KEY,
			kind            TEXT NOT NULL,
			size            INTEGER NOT NULL,
			seed            INTEGER NOT NULL,
			duration_ms     REAL NOT NULL,
			floor_pct       REAL,
			region_count    INTEGER,
			recorded_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// Record persists one row describing a completed Result. floorPct and
// regionCount are optional (e.g. the default static kind has neither) and
// stored as SQL NULL when absent.
func (s *Store) Record(kind mapgen.Kind, size int, r mapgen.Result, duration time.Duration) error {
	var floorPct, regionCount interface{}
	if v, ok := r.Stats["floor_percentage"]; ok {
		floorPct = v
	}
	if v, ok := r.Stats["region_count"]; ok {
		regionCount = v
	}

	_, err := s.conn.Exec(
		`INSERT INTO generations (generation_id, kind, size, seed, duration_ms, floor_pct, region_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GenerationID.String(), kind.String(), size, r.SeedUsed, duration.Seconds()*1000, floorPct, regionCount,
	)
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// Row is one archived generation, as read back by Recent.
type Row struct {
	GenerationID string
	Kind         string
	Size         int
	Seed         uint32
	DurationMS   float64
	FloorPct     sql.NullFloat64
	RegionCount  sql.NullInt64
	RecordedAt   time.Time
}

// Recent returns the last n recorded generations, most recent first.
func (s *Store) Recent(n int) ([]Row, error) {
	rows, err := s.conn.Query(
		`SELECT generation_id, kind, size, seed, duration_ms, floor_pct, region_count, recorded_at
		 FROM generations ORDER BY recorded_at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.GenerationID, &r.Kind, &r.Size, &r.Seed, &r.DurationMS, &r.FloorPct, &r.RegionCount, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("history: scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
