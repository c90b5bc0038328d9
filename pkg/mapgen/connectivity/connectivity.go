// Package connectivity is the post-processing toolkit every generator
// funnels through: flood-fill region discovery, region pruning, corridor
// stitching between disjoint regions, and start/end marker placement.
package connectivity

import (
	"sort"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Region is an unordered set of coordinates reachable from one another
// through 4-directional adjacency over walkable cells.
type Region []Point

// Predicate decides whether a cell participates in a flood-fill expansion.
type Predicate func(x, y int) bool

var cardinal = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FloodFill performs a 4-neighbour expansion from (startX, startY) over
// cells satisfying p, returning every coordinate reached (including the
// start, if p(start) holds). Iterative and worklist-based so large grids
// never risk a stack overflow from recursive flood-fill.
func FloodFill(g *grid.Grid, startX, startY int, p Predicate) Region {
	if !g.InBounds(startX, startY) || !p(startX, startY) {
		return nil
	}

	visited := make(map[Point]bool)
	stack := []Point{{startX, startY}}
	var region Region

	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[pt] {
			continue
		}
		visited[pt] = true
		region = append(region, pt)

		for _, d := range cardinal {
			nx, ny := pt.X+d.X, pt.Y+d.Y
			if g.InBounds(nx, ny) && !visited[Point{nx, ny}] && p(nx, ny) {
				stack = append(stack, Point{nx, ny})
			}
		}
	}

	return region
}

// floorLike treats every walkable cell under the dungeon vocabulary as a
// single predicate, the definition the rest of this package uses.
func floorLike(g *grid.Grid) Predicate {
	return func(x, y int) bool { return tiles.IsFloorLike(g.At(x, y)) }
}

// EnumerateRegions walks the grid in row-major order, seeding a fresh
// flood-fill from each unvisited walkable cell.
func EnumerateRegions(g *grid.Grid) []Region {
	p := floorLike(g)
	visited := make(map[Point]bool)
	var regions []Region

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			pt := Point{x, y}
			if visited[pt] || !p(x, y) {
				continue
			}
			region := FloodFill(g, x, y, p)
			for _, c := range region {
				visited[c] = true
			}
			regions = append(regions, region)
		}
	}

	return regions
}

// KeepLargestRegion fills every walkable cell not in the largest region with
// Wall. Ties are broken by first-encountered (row-major scan order), which
// falls out naturally from EnumerateRegions's iteration order.
func KeepLargestRegion(g *grid.Grid) {
	regions := EnumerateRegions(g)
	if len(regions) <= 1 {
		return
	}

	largest := 0
	for i, r := range regions {
		if len(r) > len(regions[largest]) {
			largest = i
		}
	}

	for i, r := range regions {
		if i == largest {
			continue
		}
		for _, pt := range r {
			g.Set(pt.X, pt.Y, tiles.Wall)
		}
	}
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Stitch repeatedly finds the closest pair of coordinates between the two
// nearest disjoint regions and carves an L-shaped corridor (horizontal then
// vertical) between them, converting intermediate walls to corridorTile.
// Each pass strictly reduces the region count, so termination is guaranteed.
func Stitch(g *grid.Grid, corridorTile tiles.Tile) {
	for {
		regions := EnumerateRegions(g)
		if len(regions) <= 1 {
			return
		}

		var bestA, bestB Point
		bestDist := -1

		for i := 0; i < len(regions); i++ {
			for j := i + 1; j < len(regions); j++ {
				a, b, d := closestPair(regions[i], regions[j])
				if bestDist == -1 || d < bestDist {
					bestDist = d
					bestA, bestB = a, b
				}
			}
		}

		carveCorridor(g, bestA, bestB, corridorTile)
	}
}

func closestPair(a, b Region) (Point, Point, int) {
	best := -1
	var bestA, bestB Point
	for _, pa := range a {
		for _, pb := range b {
			d := manhattan(pa, pb)
			if best == -1 || d < best {
				best = d
				bestA, bestB = pa, pb
			}
		}
	}
	return bestA, bestB, best
}

// carveCorridor writes an L-shaped path from a to b: horizontal first, then
// vertical, only converting cells that are currently Wall.
func carveCorridor(g *grid.Grid, a, b Point, corridorTile tiles.Tile) {
	lo, hi := a.X, b.X
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo; x <= hi; x++ {
		if g.At(x, a.Y) == tiles.Wall {
			g.Set(x, a.Y, corridorTile)
		}
	}

	lo, hi = a.Y, b.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		if g.At(b.X, y) == tiles.Wall {
			g.Set(b.X, y, corridorTile)
		}
	}
}

// PlaceMarkers picks a uniformly random walkable cell as Start, ranks the
// remaining walkable cells by Manhattan distance from it descending, and
// uniformly picks End from the top 20% (at least one candidate). If fewer
// than two walkable cells exist, it leaves the grid unchanged and returns
// ok=false; this is not an error condition.
func PlaceMarkers(g *grid.Grid, s *prng.Source) (start, end Point, ok bool) {
	var walkable []Point
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if tiles.IsFloorLike(g.At(x, y)) {
				walkable = append(walkable, Point{x, y})
			}
		}
	}
	if len(walkable) < 2 {
		return Point{}, Point{}, false
	}

	start = prng.Pick(s, walkable)

	rest := make([]Point, 0, len(walkable)-1)
	for _, p := range walkable {
		if p != start {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return manhattan(start, rest[i]) > manhattan(start, rest[j])
	})

	topCount := len(rest) / 5
	if topCount < 1 {
		topCount = 1
	}
	candidates := rest[:topCount]
	end = prng.Pick(s, candidates)

	g.Set(start.X, start.Y, tiles.Start)
	g.Set(end.X, end.Y, tiles.End)
	return start, end, true
}
