// Package maze implements three maze-carving algorithms (depth-first
// backtracker, Prim-like frontier growth, and recursive division) sharing a
// common loop-injection and marker-placement finish.
package maze

import (
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/connectivity"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// Algorithm selects one of the three carving strategies.
type Algorithm int

const (
	Backtracking Algorithm = iota
	Prim
	RecursiveDivision
)

// Options controls maze generation.
type Options struct {
	Algorithm    Algorithm
	LoopChance   float64
	Openness     float64
	PlaceMarkers bool
	Logger       *logrus.Logger
}

// Stats reports quality metadata about the generated maze.
type Stats struct {
	FloorPercentage float64
	LoopsInjected   int
	Start, End      connectivity.Point
	MarkersPlaced   bool
}

var cardinal2 = [4][2]int{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

// Generate carves a maze into an N×N grid (N is reduced by one if even, so
// the carving lattice lands on odd coordinates).
func Generate(s *prng.Source, size int, opts Options) (*grid.Grid, Stats, error) {
	oddSize := size
	if oddSize%2 == 0 {
		oddSize--
	}

	log := opts.Logger
	if log != nil && log.GetLevel() >= logrus.DebugLevel {
		log.WithFields(logrus.Fields{"size": size, "oddSize": oddSize, "algorithm": opts.Algorithm}).Debug("starting maze generation")
	}

	g := grid.New(oddSize, tiles.Wall)

	switch opts.Algorithm {
	case Prim:
		carvePrim(g, s)
	case RecursiveDivision:
		carveRecursiveDivision(g, s)
	default:
		carveBacktracker(g, s)
	}

	loops := injectLoops(g, s, opts.LoopChance, opts.Openness)

	var stats Stats
	stats.LoopsInjected = loops
	stats.FloorPercentage = floorPercentage(g)

	if opts.PlaceMarkers {
		start, end, ok := placeScanlineMarkers(g)
		stats.Start, stats.End, stats.MarkersPlaced = start, end, ok
	}

	return g, stats, nil
}

func inInner(size, v int) bool {
	return v > 0 && v < size-1
}

// carveBacktracker runs an explicit-stack depth-first carve from (1, 1): each
// visited cell tries its four ±2 neighbors in shuffled order, carving both
// the intermediate and target cell into the first unvisited wall found.
func carveBacktracker(g *grid.Grid, s *prng.Source) {
	size := g.Size
	visited := make([][]bool, size)
	for y := range visited {
		visited[y] = make([]bool, size)
	}

	start := connectivity.Point{X: 1, Y: 1}
	g.Set(start.X, start.Y, tiles.Floor)
	visited[start.Y][start.X] = true
	stack := []connectivity.Point{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		dirs := cardinal2
		prng.Shuffle(s, dirs[:])

		advanced := false
		for _, d := range dirs {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if !inInner(size, nx) || !inInner(size, ny) || visited[ny][nx] {
				continue
			}
			mx, my := cur.X+d[0]/2, cur.Y+d[1]/2
			g.Set(mx, my, tiles.Floor)
			g.Set(nx, ny, tiles.Floor)
			visited[ny][nx] = true
			stack = append(stack, connectivity.Point{X: nx, Y: ny})
			advanced = true
			break
		}

		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}
}

type frontierCell struct {
	x, y, fromX, fromY int
}

// carvePrim grows the maze from a frontier set of wall cells adjacent to
// already-carved territory, picking the next cell to carve uniformly at
// random from the frontier rather than depth-first.
func carvePrim(g *grid.Grid, s *prng.Source) {
	size := g.Size
	visited := make([][]bool, size)
	for y := range visited {
		visited[y] = make([]bool, size)
	}

	addFrontier := func(frontier []frontierCell, x, y int) []frontierCell {
		for _, d := range cardinal2 {
			nx, ny := x+d[0], y+d[1]
			if inInner(size, nx) && inInner(size, ny) && !visited[ny][nx] {
				frontier = append(frontier, frontierCell{nx, ny, x, y})
			}
		}
		return frontier
	}

	g.Set(1, 1, tiles.Floor)
	visited[1][1] = true
	frontier := addFrontier(nil, 1, 1)

	for len(frontier) > 0 {
		idx := s.IntIn(0, len(frontier)-1)
		f := frontier[idx]
		frontier[idx] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if visited[f.y][f.x] {
			continue
		}

		mx, my := (f.x+f.fromX)/2, (f.y+f.fromY)/2
		g.Set(mx, my, tiles.Floor)
		g.Set(f.x, f.y, tiles.Floor)
		visited[f.y][f.x] = true
		frontier = addFrontier(frontier, f.x, f.y)
	}
}

// carveRecursiveDivision starts from an open interior and repeatedly splits
// the longer axis of each region with a wall pierced by a single gap,
// stopping once a region's side drops below 3.
func carveRecursiveDivision(g *grid.Grid, s *prng.Source) {
	size := g.Size
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			g.Set(x, y, tiles.Floor)
		}
	}
	divide(g, s, 1, 1, size-2, size-2)
}

func divide(g *grid.Grid, s *prng.Source, x, y, w, h int) {
	if w < 3 || h < 3 {
		return
	}

	splitVertically := w > h
	if w == h {
		splitVertically = s.Chance(0.5)
	}

	if splitVertically {
		wallX := s.IntIn(x+1, x+w-2)
		for wy := y; wy < y+h; wy++ {
			g.Set(wallX, wy, tiles.Wall)
		}
		gapY := oddInRange(s, y, y+h-1)
		g.Set(wallX, gapY, tiles.Floor)

		divide(g, s, x, y, wallX-x, h)
		divide(g, s, wallX+1, y, x+w-(wallX+1), h)
		return
	}

	wallY := s.IntIn(y+1, y+h-2)
	for wx := x; wx < x+w; wx++ {
		g.Set(wx, wallY, tiles.Wall)
	}
	gapX := oddInRange(s, x, x+w-1)
	g.Set(gapX, wallY, tiles.Floor)

	divide(g, s, x, y, w, wallY-y)
	divide(g, s, x, wallY+1, w, y+h-(wallY+1))
}

// oddInRange picks a uniformly random odd coordinate in [lo, hi], falling
// back to any coordinate in range on the rare span with no odd value.
func oddInRange(s *prng.Source, lo, hi int) int {
	var odds []int
	for v := lo; v <= hi; v++ {
		if v%2 != 0 {
			odds = append(odds, v)
		}
	}
	if len(odds) == 0 {
		return s.IntIn(lo, hi)
	}
	return prng.Pick(s, odds)
}

// injectLoops turns some interior walls back into floor, opening shortcuts
// in what would otherwise be a perfect (single-solution, tree-shaped) maze.
// loopChance applies only to the lattice wall segments sitting between two
// already-carved cells, so every flip joins floor to floor; openness applies
// to every interior wall.
func injectLoops(g *grid.Grid, s *prng.Source, loopChance, openness float64) int {
	injected := 0
	size := g.Size
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			if g.At(x, y) != tiles.Wall {
				continue
			}
			if loopChance > 0 && segmentBetweenFloors(g, x, y) && s.Chance(loopChance) {
				g.Set(x, y, tiles.Floor)
				injected++
				continue
			}
			if openness > 0 && s.Chance(openness) {
				g.Set(x, y, tiles.Floor)
				injected++
			}
		}
	}
	return injected
}

// segmentBetweenFloors reports whether (x, y) is a wall segment separating
// two carved cells across its single even axis. Pillar cells (both
// coordinates even) never qualify: their four neighbors are all wall
// segments, so flipping one would strand an isolated floor island instead
// of opening a shortcut.
func segmentBetweenFloors(g *grid.Grid, x, y int) bool {
	switch {
	case x%2 == 0 && y%2 != 0:
		return g.At(x-1, y) == tiles.Floor && g.At(x+1, y) == tiles.Floor
	case y%2 == 0 && x%2 != 0:
		return g.At(x, y-1) == tiles.Floor && g.At(x, y+1) == tiles.Floor
	default:
		return false
	}
}

// placeScanlineMarkers finds the first floor tile in top-left scanline order
// for START and the first in bottom-right reverse scanline order for END.
func placeScanlineMarkers(g *grid.Grid) (connectivity.Point, connectivity.Point, bool) {
	var start, end connectivity.Point
	startFound, endFound := false, false

	for y := 0; y < g.Size && !startFound; y++ {
		for x := 0; x < g.Size; x++ {
			if g.At(x, y) == tiles.Floor {
				start = connectivity.Point{X: x, Y: y}
				startFound = true
				break
			}
		}
	}

	for y := g.Size - 1; y >= 0 && !endFound; y-- {
		for x := g.Size - 1; x >= 0; x-- {
			if g.At(x, y) == tiles.Floor {
				end = connectivity.Point{X: x, Y: y}
				endFound = true
				break
			}
		}
	}

	if startFound && endFound {
		g.Set(start.X, start.Y, tiles.Start)
		g.Set(end.X, end.Y, tiles.End)
	}

	return start, end, startFound && endFound
}

func floorPercentage(g *grid.Grid) float64 {
	floor := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if tiles.IsFloorLike(g.At(x, y)) {
				floor++
			}
		}
	}
	return float64(floor) / float64(g.Size*g.Size) * 100
}
