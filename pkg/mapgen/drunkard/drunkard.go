// Package drunkard implements the drunkard's-walk family of generators:
// one or more random walkers carve floor tiles into a solid grid until a
// target coverage is reached.
package drunkard

import (
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/connectivity"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// Variant selects one of the three walker behaviors.
type Variant int

const (
	// Weighted is the default: a single walker biased toward unexplored
	// neighbors, which reduces ping-pong and fills a grid faster than the
	// simple variant.
	Weighted Variant = iota
	Simple
	Multiple
)

// Options controls drunkard's-walk generation.
type Options struct {
	Variant         Variant
	FillPercentage  float64
	NumWalkers      int
	EnsureConnected bool
	PlaceMarkers    bool
	Logger          *logrus.Logger
}

// Stats reports quality metadata, including whether the walker reached its
// target before the step budget ran out. A stall is not an error, just a
// quality shortfall reported here.
type Stats struct {
	FloorPercentage float64
	RegionCount     int
	ReachedTarget   bool
	StepsTaken      int
	Start, End      connectivity.Point
	MarkersPlaced   bool
}

// Generate carves a drunkard's-walk grid.
func Generate(s *prng.Source, size int, opts Options) (*grid.Grid, Stats, error) {
	fillPct := opts.FillPercentage
	if fillPct == 0 {
		fillPct = 0.4
	}
	numWalkers := opts.NumWalkers
	if numWalkers == 0 {
		numWalkers = 4
	}

	log := opts.Logger
	if log != nil && log.GetLevel() >= logrus.DebugLevel {
		log.WithFields(logrus.Fields{
			"size": size, "variant": opts.Variant, "fillPercentage": fillPct,
		}).Debug("starting drunkard's walk generation")
	}

	g := grid.New(size, tiles.Wall)
	target := int(fillPct * float64(size*size))

	var steps int
	var reached bool
	switch opts.Variant {
	case Simple:
		steps, reached = walkSimple(g, s, target)
	case Multiple:
		steps, reached = walkMultiple(g, s, target, numWalkers)
	default:
		steps, reached = walkWeighted(g, s, target)
	}

	if opts.EnsureConnected {
		connectivity.KeepLargestRegion(g)
	}

	var stats Stats
	if opts.PlaceMarkers {
		start, end, ok := connectivity.PlaceMarkers(g, s)
		stats.Start, stats.End, stats.MarkersPlaced = start, end, ok
	}

	stats.StepsTaken = steps
	stats.ReachedTarget = reached
	stats.RegionCount = len(connectivity.EnumerateRegions(g))
	stats.FloorPercentage = floorPercentage(g)

	return g, stats, nil
}

func floorCount(g *grid.Grid) int {
	count := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.At(x, y) == tiles.Floor {
				count++
			}
		}
	}
	return count
}

func floorPercentage(g *grid.Grid) float64 {
	return float64(floorCount(g)) / float64(g.Size*g.Size) * 100
}

func inInnerRange(size, v int) bool {
	return v >= 1 && v < size-1
}

var cardinal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// carveFloor marks (x, y) as floor if it isn't already, reporting whether it
// just became floor so callers can maintain a running count cheaply instead
// of rescanning the grid every step.
func carveFloor(g *grid.Grid, x, y int) bool {
	if g.At(x, y) == tiles.Floor {
		return false
	}
	g.Set(x, y, tiles.Floor)
	return true
}

// walkSimple carves with a single walker starting at the grid center,
// terminating when the target is reached or the floor count has stagnated
// for size^2 consecutive steps.
func walkSimple(g *grid.Grid, s *prng.Source, target int) (int, bool) {
	x, y := g.Size/2, g.Size/2
	count := 0
	if carveFloor(g, x, y) {
		count++
	}
	lastIncrease := 0
	maxStall := g.Size * g.Size

	steps := 0
	for count < target && steps-lastIncrease < maxStall {
		d := cardinal[s.IntIn(0, 3)]
		nx, ny := x+d[0], y+d[1]
		if inInnerRange(g.Size, nx) && inInnerRange(g.Size, ny) {
			x, y = nx, ny
		}
		if carveFloor(g, x, y) {
			count++
			lastIncrease = steps
		}
		steps++
	}

	return steps, count >= target
}

// walkMultiple runs numWalkers sequential walkers, each allotted a share of
// the target floor count. The first starts at the center; later walkers
// start from an existing floor tile.
func walkMultiple(g *grid.Grid, s *prng.Source, target, numWalkers int) (int, bool) {
	perWalker := (target + numWalkers - 1) / numWalkers
	totalSteps := 0
	count := 0

	x, y := g.Size/2, g.Size/2
	for w := 0; w < numWalkers && count < target; w++ {
		if w > 0 {
			fx, fy, ok := randomFloorTile(g, s)
			if ok {
				x, y = fx, fy
			}
		}

		walkerGoal := count + perWalker
		lastIncrease := 0
		maxStall := g.Size * g.Size

		for steps := 0; count < walkerGoal && count < target && steps-lastIncrease < maxStall; steps++ {
			if carveFloor(g, x, y) {
				count++
				lastIncrease = steps
			}
			totalSteps++

			d := cardinal[s.IntIn(0, 3)]
			nx, ny := x+d[0], y+d[1]
			if inInnerRange(g.Size, nx) && inInnerRange(g.Size, ny) {
				x, y = nx, ny
			}
		}
	}

	return totalSteps, count >= target
}

// walkWeighted carves with a single walker biased toward neighbors with
// more surrounding walls, which pushes it into unexplored territory.
func walkWeighted(g *grid.Grid, s *prng.Source, target int) (int, bool) {
	x, y := g.Size/2, g.Size/2
	maxSteps := 4 * g.Size * g.Size
	count := 0
	if carveFloor(g, x, y) {
		count++
	}

	steps := 0
	for ; steps < maxSteps && count < target; steps++ {
		candidates := make([]weightedNeighbor, 0, 4)
		for _, d := range cardinal {
			nx, ny := x+d[0], y+d[1]
			if !inInnerRange(g.Size, nx) || !inInnerRange(g.Size, ny) {
				continue
			}
			w := 1 + countWalls3x3(g, nx, ny)
			candidates = append(candidates, weightedNeighbor{nx, ny, float64(w)})
		}
		if len(candidates) == 0 {
			continue
		}

		next := prng.WeightedPick(s, candidates)
		x, y = next.x, next.y
		if carveFloor(g, x, y) {
			count++
		}
	}

	return steps, count >= target
}

type weightedNeighbor struct {
	x, y   int
	weight float64
}

func (w weightedNeighbor) Weight() float64 { return w.weight }

func countWalls3x3(g *grid.Grid, cx, cy int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if g.At(cx+dx, cy+dy) == tiles.Wall {
				count++
			}
		}
	}
	return count
}

func randomFloorTile(g *grid.Grid, s *prng.Source) (int, int, bool) {
	var floors [][2]int
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.At(x, y) == tiles.Floor {
				floors = append(floors, [2]int{x, y})
			}
		}
	}
	if len(floors) == 0 {
		return 0, 0, false
	}
	pick := prng.Pick(s, floors)
	return pick[0], pick[1], true
}
