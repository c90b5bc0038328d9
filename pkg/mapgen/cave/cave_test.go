package cave

import (
	"testing"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/mapgentest"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

func TestGenerateDimensionsAndBorder(t *testing.T) {
	g, _, err := Generate(prng.New(42), 32, Options{EnsureConnected: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Size != 32 {
		t.Fatalf("expected size 32, got %d", g.Size)
	}
	for i := 0; i < 32; i++ {
		if g.At(i, 0) != tiles.Wall || g.At(i, 31) != tiles.Wall ||
			g.At(0, i) != tiles.Wall || g.At(31, i) != tiles.Wall {
			t.Fatalf("border cell not wall at index %d", i)
		}
	}
}

func TestGenerateFloorPercentageInRange(t *testing.T) {
	_, stats, err := Generate(prng.New(42), 32, Options{EnsureConnected: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FloorPercentage < 15 || stats.FloorPercentage > 75 {
		t.Fatalf("floor percentage %.2f outside [15, 75]", stats.FloorPercentage)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g1, _, _ := Generate(prng.New(42), 32, Options{EnsureConnected: true})
	g2, _, _ := Generate(prng.New(42), 32, Options{EnsureConnected: true})

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if g1.At(x, y) != g2.At(x, y) {
				t.Fatalf("grid diverged at (%d, %d)", x, y)
			}
		}
	}
}

func TestGenerateEnsuresSingleRegion(t *testing.T) {
	g, _, _ := Generate(prng.New(42), 32, Options{EnsureConnected: true})
	mapgentest.AssertSingleRegion(t, g)
}

func TestGenerateAllTilesAreLegal(t *testing.T) {
	g, _, _ := Generate(prng.New(7), 24, Options{})
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			switch g.At(x, y) {
			case tiles.Wall, tiles.Floor, tiles.Door, tiles.SecretDoor, tiles.Start, tiles.End, tiles.Corridor:
			default:
				t.Fatalf("illegal tile %v at (%d, %d)", g.At(x, y), x, y)
			}
		}
	}
}
