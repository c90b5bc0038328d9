// Package wfc implements map generation via Wave Function Collapse: cells
// begin in superposition over the tile vocabulary, an entropy-minimal cell is
// collapsed and its choice propagated to neighbours each round, and
// contradictions are resolved by restoring a grid snapshot and excluding the
// choice that caused them.
package wfc

import (
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/connectivity"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// Options controls Wave Function Collapse generation.
type Options struct {
	MaxBacktracks int
	PlaceMarkers  bool
	Logger        *logrus.Logger
}

// Stats reports quality metadata about the collapse run.
type Stats struct {
	Contradictions  int
	BacktracksUsed  int
	GaveUp          bool
	RegionCount     int
	FloorPercentage float64
	Start, End      connectivity.Point
	MarkersPlaced   bool
}

var tileOrder = [4]tiles.Tile{tiles.Wall, tiles.Floor, tiles.Door, tiles.Corridor}

func tileIndex(t tiles.Tile) int {
	for i, candidate := range tileOrder {
		if candidate == t {
			return i
		}
	}
	return -1
}

// options is a fixed-size possibility set over the four-tile vocabulary,
// indexed by tileIndex. Being a plain array (not a map) makes grid snapshots
// cheap value copies.
type options [4]bool

func (o options) count() int {
	n := 0
	for _, v := range o {
		if v {
			n++
		}
	}
	return n
}

func fullOptions() options { return options{true, true, true, true} }

func singleton(t tiles.Tile) options {
	var o options
	o[tileIndex(t)] = true
	return o
}

func intersect(a, b options) options {
	var r options
	for i := range r {
		r[i] = a[i] && b[i]
	}
	return r
}

// allowedMask[i] is the set of tile indices compatible, in any direction,
// with tileOrder[i].
var allowedMask = buildAllowedMask()

func buildAllowedMask() [4]options {
	rules := map[tiles.Tile][]tiles.Tile{
		tiles.Wall:     {tiles.Wall, tiles.Floor, tiles.Corridor},
		tiles.Floor:    {tiles.Wall, tiles.Floor, tiles.Door, tiles.Corridor},
		tiles.Door:     {tiles.Floor, tiles.Corridor},
		tiles.Corridor: {tiles.Wall, tiles.Floor, tiles.Door, tiles.Corridor},
	}
	var masks [4]options
	for t, allowed := range rules {
		var m options
		for _, a := range allowed {
			m[tileIndex(a)] = true
		}
		masks[tileIndex(t)] = m
	}
	return masks
}

var collapseWeight = map[tiles.Tile]float64{
	tiles.Wall: 2, tiles.Floor: 5, tiles.Door: 1, tiles.Corridor: 3,
}

// unionAllowed is the set of tile indices compatible with any option
// currently true in o.
func unionAllowed(o options) options {
	var r options
	for i, set := range o {
		if !set {
			continue
		}
		for j, allowed := range allowedMask[i] {
			if allowed {
				r[j] = true
			}
		}
	}
	return r
}

type cell struct {
	opts      options
	collapsed bool
}

type point struct{ x, y int }

var cardinal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func newCells(size int) [][]cell {
	cells := make([][]cell, size)
	for y := range cells {
		cells[y] = make([]cell, size)
		for x := range cells[y] {
			cells[y][x] = cell{opts: fullOptions()}
		}
	}
	return cells
}

func cloneCells(cells [][]cell) [][]cell {
	clone := make([][]cell, len(cells))
	for y, row := range cells {
		clone[y] = make([]cell, len(row))
		copy(clone[y], row)
	}
	return clone
}

// propagate drains a worklist seeded with start, updating neighbour option
// sets and collapsing any that narrow to a single possibility. It reports
// whether a contradiction (a cell losing all options) was hit.
func propagate(cells [][]cell, size int, start point) bool {
	worklist := []point{start}
	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		allowed := unionAllowed(cells[p.y][p.x].opts)
		for _, d := range cardinal {
			nx, ny := p.x+d[0], p.y+d[1]
			if nx < 0 || nx >= size || ny < 0 || ny >= size {
				continue
			}
			neighbor := &cells[ny][nx]
			if neighbor.collapsed {
				continue
			}
			narrowed := intersect(neighbor.opts, allowed)
			if narrowed == neighbor.opts {
				continue
			}
			switch narrowed.count() {
			case 0:
				return true
			case 1:
				neighbor.opts = narrowed
				neighbor.collapsed = true
				worklist = append(worklist, point{nx, ny})
			default:
				neighbor.opts = narrowed
				worklist = append(worklist, point{nx, ny})
			}
		}
	}
	return false
}

type weightedTile struct {
	t tiles.Tile
	w float64
}

func (w weightedTile) Weight() float64 { return w.w }

func findMinEntropyCells(cells [][]cell, size int) []point {
	min := 5
	var candidates []point
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := cells[y][x]
			if c.collapsed {
				continue
			}
			n := c.opts.count()
			if n == 0 {
				continue
			}
			if n < min {
				min = n
				candidates = candidates[:0]
			}
			if n == min {
				candidates = append(candidates, point{x, y})
			}
		}
	}
	return candidates
}

type snapshot struct {
	cells     [][]cell
	collapsed point
}

// Generate runs Wave Function Collapse over an N×N grid.
func Generate(s *prng.Source, size int, opts Options) (*grid.Grid, Stats, error) {
	maxBacktracks := opts.MaxBacktracks
	if maxBacktracks == 0 {
		maxBacktracks = 100
	}
	historyCap := 2 * maxBacktracks

	log := opts.Logger
	if log != nil && log.GetLevel() >= logrus.DebugLevel {
		log.WithFields(logrus.Fields{"size": size, "maxBacktracks": maxBacktracks}).Debug("starting WFC generation")
	}

	cells := newCells(size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x == 0 || x == size-1 || y == 0 || y == size-1 {
				cells[y][x] = cell{opts: singleton(tiles.Wall), collapsed: true}
			}
		}
	}

	cx, cy := size/2, size/2
	radius := size / 6
	seedConstraint := intersect(fullOptions(), options{false, true, false, true})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if cells[y][x].collapsed {
				continue
			}
			if manhattan(x, y, cx, cy) <= radius {
				cells[y][x].opts = intersect(cells[y][x].opts, seedConstraint)
			}
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if cells[y][x].collapsed {
				propagate(cells, size, point{x, y})
			}
		}
	}

	var stack []snapshot
	var stats Stats

	for {
		candidates := findMinEntropyCells(cells, size)
		if len(candidates) == 0 {
			break
		}
		pick := prng.Pick(s, candidates)

		stack = append(stack, snapshot{cells: cloneCells(cells), collapsed: pick})
		if len(stack) > historyCap {
			stack = stack[1:]
		}

		c := cells[pick.y][pick.x]
		var weighted []weightedTile
		for i, ok := range c.opts {
			if ok {
				weighted = append(weighted, weightedTile{tileOrder[i], collapseWeight[tileOrder[i]]})
			}
		}
		chosen := prng.WeightedPick(s, weighted)
		cells[pick.y][pick.x] = cell{opts: singleton(chosen.t), collapsed: true}

		if propagate(cells, size, pick) {
			stats.Contradictions++
			stats.BacktracksUsed++
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cells = last.cells
			if stats.BacktracksUsed > maxBacktracks {
				stats.GaveUp = true
				break
			}
			dropFirstOption(&cells[last.collapsed.y][last.collapsed.x])
		}
	}

	g := grid.New(size, tiles.Wall)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, resolveTile(cells[y][x]))
		}
	}

	connectivity.KeepLargestRegion(g)

	if opts.PlaceMarkers {
		start, end, ok := connectivity.PlaceMarkers(g, s)
		stats.Start, stats.End, stats.MarkersPlaced = start, end, ok
	}

	stats.RegionCount = len(connectivity.EnumerateRegions(g))
	stats.FloorPercentage = floorPercentage(g)

	return g, stats, nil
}

func dropFirstOption(c *cell) {
	for i, ok := range c.opts {
		if ok {
			c.opts[i] = false
			return
		}
	}
}

func resolveTile(c cell) tiles.Tile {
	for i, ok := range c.opts {
		if ok {
			return tileOrder[i]
		}
	}
	return tiles.Wall
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
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
