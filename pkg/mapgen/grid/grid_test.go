package grid

import (
	"testing"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

func TestNewFillsEveryCell(t *testing.T) {
	g := New(4, tiles.Floor)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if g.At(x, y) != tiles.Floor {
				t.Fatalf("expected Floor at (%d,%d), got %v", x, y, g.At(x, y))
			}
		}
	}
}

func TestAtOutOfBoundsReturnsWall(t *testing.T) {
	g := New(4, tiles.Floor)
	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}}
	for _, c := range cases {
		if g.At(c[0], c[1]) != tiles.Wall {
			t.Fatalf("expected Wall outside bounds at (%d,%d)", c[0], c[1])
		}
	}
}

func TestSetOutOfBoundsIsNoOp(t *testing.T) {
	g := New(4, tiles.Floor)
	g.Set(-1, -1, tiles.Door)
	g.Set(10, 10, tiles.Door)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if g.At(x, y) != tiles.Floor {
				t.Fatalf("expected grid untouched by out-of-bounds writes, got %v at (%d,%d)", g.At(x, y), x, y)
			}
		}
	}
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	g := New(3, tiles.Wall)
	snap := g.Snapshot()
	g.Set(1, 1, tiles.Floor)
	if snap[1][1] != tiles.Wall {
		t.Fatalf("expected snapshot to be unaffected by later writes")
	}
	g.Restore(snap)
	if g.At(1, 1) != tiles.Wall {
		t.Fatalf("expected Restore to roll back to the snapshot, got %v", g.At(1, 1))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(3, tiles.Wall)
	c := g.Clone()
	c.Set(0, 0, tiles.Floor)
	if g.At(0, 0) != tiles.Wall {
		t.Fatalf("expected original grid to be unaffected by a clone's writes")
	}
	if c.At(0, 0) != tiles.Floor {
		t.Fatalf("expected clone write to stick")
	}
}
