package bsp

import (
	"testing"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/mapgentest"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

func TestGenerateHasMultipleRoomsAndCorridors(t *testing.T) {
	g, stats, err := Generate(prng.New(7), 32, Options{
		MinPartitionSize: 6, MaxDepth: 4, PlaceMarkers: true, EnsureConnected: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RoomCount < 2 {
		t.Fatalf("expected at least 2 rooms, got %d", stats.RoomCount)
	}

	corridorSeen := false
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.At(x, y) == tiles.Corridor {
				corridorSeen = true
			}
		}
	}
	if !corridorSeen {
		t.Fatal("expected at least one corridor tile")
	}

	if !stats.MarkersPlaced {
		t.Fatal("expected markers to be placed")
	}
	mapgentest.AssertMarkersPresent(t, g)
}

func TestGenerateBorderIsWall(t *testing.T) {
	g, _, _ := Generate(prng.New(7), 32, Options{MinPartitionSize: 6, MaxDepth: 4})
	for i := 0; i < 32; i++ {
		if g.At(i, 0) != tiles.Wall || g.At(i, 31) != tiles.Wall ||
			g.At(0, i) != tiles.Wall || g.At(31, i) != tiles.Wall {
			t.Fatalf("border cell not wall at index %d", i)
		}
	}
}

func TestGenerateEnsureConnectedStitchesRooms(t *testing.T) {
	g, _, _ := Generate(prng.New(7), 32, Options{
		MinPartitionSize: 6, MaxDepth: 4, EnsureConnected: true,
	})
	mapgentest.AssertSingleRegion(t, g)
}

func TestGenerateIsDeterministic(t *testing.T) {
	g1, _, _ := Generate(prng.New(7), 32, Options{MinPartitionSize: 6, MaxDepth: 4})
	g2, _, _ := Generate(prng.New(7), 32, Options{MinPartitionSize: 6, MaxDepth: 4})
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if g1.At(x, y) != g2.At(x, y) {
				t.Fatalf("grid diverged at (%d, %d)", x, y)
			}
		}
	}
}

func TestGenerateDoorsOnlyBetweenFloorAndWall(t *testing.T) {
	g, _, _ := Generate(prng.New(7), 40, Options{
		MinPartitionSize: 6, MaxDepth: 4, PlaceDoors: true, DoorChance: 1.0,
	})
	for y := 1; y < g.Size-1; y++ {
		for x := 1; x < g.Size-1; x++ {
			if g.At(x, y) != tiles.Door {
				continue
			}
			hasFloor, hasWall := false, false
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				switch g.At(x+d[0], y+d[1]) {
				case tiles.Floor:
					hasFloor = true
				case tiles.Wall:
					hasWall = true
				}
			}
			if !hasFloor || !hasWall {
				t.Fatalf("door at (%d, %d) lacks adjacent floor+wall", x, y)
			}
		}
	}
}
