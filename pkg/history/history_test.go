package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mcclowes/tilemapgen/pkg/mapgen"
)

func TestOpenCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	rows, err := s.Recent(10)
	if err != nil {
		t.Fatalf("unexpected error querying an empty store: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected an empty store, got %d rows", len(rows))
	}
}

func TestRecordAndRecent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	r := mapgen.Result{
		SeedUsed:     99,
		GenerationID: uuid.New(),
		Stats: map[string]interface{}{
			"floor_percentage": 42.5,
			"region_count":     1,
		},
	}
	if err := s.Record(mapgen.Caves, 32, r, 150*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := s.Recent(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0]
	if got.Kind != "caves" || got.Size != 32 || got.Seed != 99 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if !got.FloorPct.Valid || got.FloorPct.Float64 != 42.5 {
		t.Fatalf("expected floor_pct 42.5, got %+v", got.FloorPct)
	}
	if !got.RegionCount.Valid || got.RegionCount.Int64 != 1 {
		t.Fatalf("expected region_count 1, got %+v", got.RegionCount)
	}
}

func TestRecordWithoutOptionalStats(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	r := mapgen.Result{SeedUsed: 0, GenerationID: uuid.New(), Stats: map[string]interface{}{"static": true}}
	if err := s.Record(mapgen.Default, 16, r, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := s.Recent(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].FloorPct.Valid || rows[0].RegionCount.Valid {
		t.Fatalf("expected null optional stats, got %+v", rows[0])
	}
}
