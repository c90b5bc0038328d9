package maze

import (
	"testing"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/mapgentest"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

func TestGenerateBacktrackerIsATreeWithNoTwoByTwoFloor(t *testing.T) {
	g, stats, err := Generate(prng.New(1), 17, Options{Algorithm: Backtracking, PlaceMarkers: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.MarkersPlaced {
		t.Fatal("expected markers to be placed")
	}
	mapgentest.AssertMarkersPresent(t, g)

	for y := 0; y < g.Size-1; y++ {
		for x := 0; x < g.Size-1; x++ {
			allFloor := tiles.IsFloorLike(g.At(x, y)) && tiles.IsFloorLike(g.At(x+1, y)) &&
				tiles.IsFloorLike(g.At(x, y+1)) && tiles.IsFloorLike(g.At(x+1, y+1))
			if allFloor {
				t.Fatalf("found a 2x2 floor block at (%d, %d)", x, y)
			}
		}
	}

	mapgentest.AssertSingleRegion(t, g)
	walkable, edges := 0, 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if !tiles.IsFloorLike(g.At(x, y)) {
				continue
			}
			walkable++
			if tiles.IsFloorLike(g.At(x+1, y)) {
				edges++
			}
			if tiles.IsFloorLike(g.At(x, y+1)) {
				edges++
			}
		}
	}
	if edges != walkable-1 {
		t.Fatalf("expected a tree (edges = walkable-1): walkable=%d edges=%d", walkable, edges)
	}
}

func TestGenerateOddensEvenSize(t *testing.T) {
	g, _, _ := Generate(prng.New(1), 18, Options{Algorithm: Backtracking})
	if g.Size != 17 {
		t.Fatalf("expected even size to be reduced to 17, got %d", g.Size)
	}
}

func TestGeneratePrimProducesConnectedFloor(t *testing.T) {
	g, stats, err := Generate(prng.New(2), 21, Options{Algorithm: Prim})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FloorPercentage <= 0 {
		t.Fatal("expected some floor carved")
	}
	if g.At(1, 1) != tiles.Floor {
		t.Fatal("expected carve origin to be floor")
	}
	mapgentest.AssertSingleRegion(t, g)
}

func TestGenerateRecursiveDivisionHasWalls(t *testing.T) {
	g, stats, err := Generate(prng.New(3), 25, Options{Algorithm: RecursiveDivision})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FloorPercentage >= 100 {
		t.Fatal("expected recursive division to leave interior walls")
	}
	wallSeen := false
	for y := 1; y < g.Size-1; y++ {
		for x := 1; x < g.Size-1; x++ {
			if g.At(x, y) == tiles.Wall {
				wallSeen = true
			}
		}
	}
	if !wallSeen {
		t.Fatal("expected at least one interior wall")
	}
}

func TestGenerateLoopInjectionAddsFloor(t *testing.T) {
	gNoLoops, _, _ := Generate(prng.New(9), 21, Options{Algorithm: Backtracking, LoopChance: 0})
	gLoops, stats, _ := Generate(prng.New(9), 21, Options{Algorithm: Backtracking, LoopChance: 1})
	if stats.LoopsInjected == 0 {
		t.Fatal("expected loop_chance=1 to inject at least one loop")
	}
	mapgentest.AssertSingleRegion(t, gNoLoops)
	mapgentest.AssertSingleRegion(t, gLoops)

	baseFloor := 0
	loopFloor := 0
	for y := 0; y < gNoLoops.Size; y++ {
		for x := 0; x < gNoLoops.Size; x++ {
			if tiles.IsFloorLike(gNoLoops.At(x, y)) {
				baseFloor++
			}
			if tiles.IsFloorLike(gLoops.At(x, y)) {
				loopFloor++
			}
		}
	}
	if loopFloor <= baseFloor {
		t.Fatalf("expected loop injection to add floor tiles: base=%d loop=%d", baseFloor, loopFloor)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g1, _, _ := Generate(prng.New(11), 19, Options{Algorithm: Prim})
	g2, _, _ := Generate(prng.New(11), 19, Options{Algorithm: Prim})
	for y := 0; y < g1.Size; y++ {
		for x := 0; x < g1.Size; x++ {
			if g1.At(x, y) != g2.At(x, y) {
				t.Fatalf("grid diverged at (%d, %d)", x, y)
			}
		}
	}
}
