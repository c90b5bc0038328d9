package connectivity

import (
	"testing"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

func carvedGrid(size int, floors []Point) *grid.Grid {
	g := grid.New(size, tiles.Wall)
	for _, p := range floors {
		g.Set(p.X, p.Y, tiles.Floor)
	}
	return g
}

func TestFloodFillFindsConnectedRegion(t *testing.T) {
	g := carvedGrid(8, []Point{{1, 1}, {2, 1}, {3, 1}, {3, 2}})
	region := FloodFill(g, 1, 1, func(x, y int) bool { return tiles.IsFloorLike(g.At(x, y)) })
	if len(region) != 4 {
		t.Fatalf("expected region of 4, got %d", len(region))
	}
}

func TestEnumerateRegionsSeparatesDisjointAreas(t *testing.T) {
	g := carvedGrid(10, []Point{{1, 1}, {1, 2}, {8, 8}, {8, 7}})
	regions := EnumerateRegions(g)
	if len(regions) != 2 {
		t.Fatalf("expected 2 disjoint regions, got %d", len(regions))
	}
}

func TestKeepLargestRegionWallsOffSmaller(t *testing.T) {
	g := carvedGrid(10, []Point{
		{1, 1}, {1, 2}, {1, 3}, {2, 1}, // larger region: 4 cells
		{8, 8}, // smaller region: 1 cell
	})
	KeepLargestRegion(g)

	regions := EnumerateRegions(g)
	if len(regions) != 1 {
		t.Fatalf("expected single surviving region, got %d", len(regions))
	}
	if len(regions[0]) != 4 {
		t.Fatalf("expected the 4-cell region to survive, got size %d", len(regions[0]))
	}
}

func TestStitchReducesToOneRegion(t *testing.T) {
	g := carvedGrid(12, []Point{{1, 1}, {1, 2}, {10, 10}, {10, 9}})
	Stitch(g, tiles.Corridor)

	regions := EnumerateRegions(g)
	if len(regions) != 1 {
		t.Fatalf("expected stitching to merge all regions, got %d", len(regions))
	}
}

func TestPlaceMarkersRequiresTwoWalkableCells(t *testing.T) {
	g := carvedGrid(8, []Point{{1, 1}})
	_, _, ok := PlaceMarkers(g, prng.New(1))
	if ok {
		t.Fatal("expected PlaceMarkers to report ok=false with a single walkable cell")
	}
}

func TestPlaceMarkersEndIsFarFromStart(t *testing.T) {
	var floors []Point
	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			floors = append(floors, Point{x, y})
		}
	}
	g := carvedGrid(20, floors)

	start, end, ok := PlaceMarkers(g, prng.New(99))
	if !ok {
		t.Fatal("expected marker placement to succeed")
	}
	if g.At(start.X, start.Y) != tiles.Start {
		t.Fatal("start tile was not written")
	}
	if g.At(end.X, end.Y) != tiles.End {
		t.Fatal("end tile was not written")
	}

	// The end must come from the top 20% of cells ranked by distance from
	// start, so it must be at least as far as the 80th-percentile distance
	// among all other walkable cells.
	var dists []int
	for _, p := range floors {
		if p == start {
			continue
		}
		dists = append(dists, abs(p.X-start.X)+abs(p.Y-start.Y))
	}
	threshold := percentile80(dists)
	gotDist := abs(end.X-start.X) + abs(end.Y-start.Y)
	if gotDist < threshold {
		t.Fatalf("end distance %d is below the 80th percentile threshold %d", gotDist, threshold)
	}
}

func percentile80(dists []int) int {
	sorted := append([]int(nil), dists...)
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] < sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	idx := int(float64(len(sorted)) * 0.8)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
