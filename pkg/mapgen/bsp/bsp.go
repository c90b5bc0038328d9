// Package bsp implements dungeon generation via recursive Binary Space
// Partitioning: the interior is split into a binary tree of rectangles,
// rooms are placed in the leaves, and corridors join sibling rooms at every
// internal node during a post-order traversal.
package bsp

import (
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/connectivity"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// Options controls BSP dungeon generation.
type Options struct {
	MinPartitionSize int
	MinRoomSize      int
	Padding          int
	MaxDepth         int
	PlaceDoors       bool
	DoorChance       float64
	EnsureConnected  bool
	PlaceMarkers     bool
	Logger           *logrus.Logger
}

// Rect is an axis-aligned rectangle of grid cells.
type Rect struct {
	X, Y, W, H int
}

// Center returns the rectangle's integer center.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// node is a BSP tree node: an owned rectangle with at most two children and
// an optional placed room. The tree is discarded after the grid is emitted.
type node struct {
	rect        Rect
	left, right *node
	room        *Rect
}

// Stats reports quality metadata about the generated dungeon.
type Stats struct {
	RoomCount       int
	FloorPercentage float64
	RegionCount     int
	Start, End      connectivity.Point
	MarkersPlaced   bool
}

// Generate produces an N×N BSP dungeon.
func Generate(s *prng.Source, size int, opts Options) (*grid.Grid, Stats, error) {
	minPartition := opts.MinPartitionSize
	if minPartition == 0 {
		minPartition = 6
	}
	minRoom := opts.MinRoomSize
	if minRoom == 0 {
		minRoom = 4
	}
	padding := opts.Padding
	if padding == 0 {
		padding = 1
	}
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = 4
	}
	doorChance := opts.DoorChance
	if doorChance == 0 {
		doorChance = 0.3
	}

	log := opts.Logger
	if log != nil && log.GetLevel() >= logrus.DebugLevel {
		log.WithFields(logrus.Fields{
			"size": size, "minPartition": minPartition, "maxDepth": maxDepth,
		}).Debug("starting BSP generation")
	}

	g := grid.New(size, tiles.Wall)

	root := &node{rect: Rect{X: 1, Y: 1, W: size - 2, H: size - 2}}
	split(root, s, minPartition, maxDepth, 0)
	placeRooms(root, g, s, minRoom, padding)
	connectRooms(root, g, s)

	if opts.PlaceDoors {
		placeDoors(g, s, doorChance)
	}

	if opts.EnsureConnected {
		connectivity.Stitch(g, tiles.Corridor)
	}

	var stats Stats
	if opts.PlaceMarkers {
		start, end, ok := connectivity.PlaceMarkers(g, s)
		stats.Start, stats.End, stats.MarkersPlaced = start, end, ok
	}

	stats.RoomCount = countRooms(root)
	stats.RegionCount = len(connectivity.EnumerateRegions(g))
	stats.FloorPercentage = floorPercentage(g)

	return g, stats, nil
}

// split recursively partitions n, stopping at maxDepth or once the span
// along the chosen axis is at most twice minPartition cells, so every split
// leaves both children at least minPartition cells long with room to vary.
func split(n *node, s *prng.Source, minPartition, maxDepth, depth int) {
	if depth >= maxDepth {
		return
	}

	w, h := n.rect.W, n.rect.H
	splitHorizontally := s.Chance(0.5)
	if float64(w)/float64(h) >= 1.25 {
		splitHorizontally = false
	} else if float64(h)/float64(w) >= 1.25 {
		splitHorizontally = true
	}

	var axisLength int
	if splitHorizontally {
		axisLength = h
	} else {
		axisLength = w
	}

	maxSplit := axisLength - minPartition
	if maxSplit <= minPartition {
		return
	}

	offset := s.IntIn(minPartition, maxSplit)

	if splitHorizontally {
		n.left = &node{rect: Rect{X: n.rect.X, Y: n.rect.Y, W: w, H: offset}}
		n.right = &node{rect: Rect{X: n.rect.X, Y: n.rect.Y + offset, W: w, H: h - offset}}
	} else {
		n.left = &node{rect: Rect{X: n.rect.X, Y: n.rect.Y, W: offset, H: h}}
		n.right = &node{rect: Rect{X: n.rect.X + offset, Y: n.rect.Y, W: w - offset, H: h}}
	}

	split(n.left, s, minPartition, maxDepth, depth+1)
	split(n.right, s, minPartition, maxDepth, depth+1)
}

// placeRooms visits every leaf and carves a room sized to fit within the
// leaf's interior after padding, when one fits.
func placeRooms(n *node, g *grid.Grid, s *prng.Source, minRoom, padding int) {
	if n.left != nil {
		placeRooms(n.left, g, s, minRoom, padding)
	}
	if n.right != nil {
		placeRooms(n.right, g, s, minRoom, padding)
	}
	if n.left != nil || n.right != nil {
		return
	}

	maxW := n.rect.W - 2*padding
	maxH := n.rect.H - 2*padding
	if maxW < minRoom || maxH < minRoom {
		return
	}

	roomW := s.IntIn(minRoom, maxW)
	roomH := s.IntIn(minRoom, maxH)

	roomX := n.rect.X + randomOffset(s, padding, n.rect.W-padding-roomW)
	roomY := n.rect.Y + randomOffset(s, padding, n.rect.H-padding-roomH)

	room := Rect{X: roomX, Y: roomY, W: roomW, H: roomH}
	n.room = &room

	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			g.Set(x, y, tiles.Floor)
		}
	}
}

// randomOffset picks a uniform position within [lo, hi] within a leaf,
// degrading gracefully to lo when the room leaves no slack to randomize.
func randomOffset(s *prng.Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return s.IntIn(lo, hi)
}

// connectRooms carves an L-shaped corridor between sibling rooms at every
// internal node, visited post-order so children are connected before their
// parent links the two subtrees together.
func connectRooms(n *node, g *grid.Grid, s *prng.Source) {
	if n.left == nil || n.right == nil {
		return
	}
	connectRooms(n.left, g, s)
	connectRooms(n.right, g, s)

	leftRoom := firstRoom(n.left)
	rightRoom := firstRoom(n.right)
	if leftRoom == nil || rightRoom == nil {
		return
	}

	x1, y1 := leftRoom.Center()
	x2, y2 := rightRoom.Center()
	carveCorridor(g, x1, y1, x2, y2, s.Chance(0.5))
}

func firstRoom(n *node) *Rect {
	if n == nil {
		return nil
	}
	if n.room != nil {
		return n.room
	}
	if r := firstRoom(n.left); r != nil {
		return r
	}
	return firstRoom(n.right)
}

// carveCorridor writes an L-shaped path between two points, only converting
// WALL cells to CORRIDOR. horizontalFirst chooses the bend order.
func carveCorridor(g *grid.Grid, x1, y1, x2, y2 int, horizontalFirst bool) {
	carveLine := func(from, to, fixed int, horizontal bool) {
		lo, hi := from, to
		if lo > hi {
			lo, hi = hi, lo
		}
		for v := lo; v <= hi; v++ {
			var x, y int
			if horizontal {
				x, y = v, fixed
			} else {
				x, y = fixed, v
			}
			if g.At(x, y) == tiles.Wall {
				g.Set(x, y, tiles.Corridor)
			}
		}
	}

	if horizontalFirst {
		carveLine(x1, x2, y1, true)
		carveLine(y1, y2, x2, false)
	} else {
		carveLine(y1, y2, x1, false)
		carveLine(x1, x2, y2, true)
	}
}

// placeDoors converts each corridor tile that has at least one Floor and at
// least one Wall among its four neighbours into a door with probability
// doorChance.
func placeDoors(g *grid.Grid, s *prng.Source, doorChance float64) {
	type pt struct{ x, y int }
	var corridors []pt
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.At(x, y) == tiles.Corridor {
				corridors = append(corridors, pt{x, y})
			}
		}
	}

	for _, c := range corridors {
		hasFloor, hasWall := false, false
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			switch g.At(c.x+d[0], c.y+d[1]) {
			case tiles.Floor:
				hasFloor = true
			case tiles.Wall:
				hasWall = true
			}
		}
		if hasFloor && hasWall && s.Chance(doorChance) {
			g.Set(c.x, c.y, tiles.Door)
		}
	}
}

func countRooms(n *node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.room != nil {
		count = 1
	}
	return count + countRooms(n.left) + countRooms(n.right)
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
