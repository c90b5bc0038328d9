// Package grid provides the rectangular tile container shared by every
// generator: a fixed N×N row-major grid of tiles.Tile values, created by a
// generator, handed off as part of a Result, and never mutated by the engine
// afterward.
package grid

import "github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"

// Grid is a fixed-size, row-major, two-dimensional container of tiles. The
// address (x, y) with 0 <= x, y < N maps to row y, column x.
type Grid struct {
	Size int
	rows [][]tiles.Tile
}

// New creates an N×N grid filled with the given fill tile.
func New(size int, fill tiles.Tile) *Grid {
	rows := make([][]tiles.Tile, size)
	for y := range rows {
		rows[y] = make([]tiles.Tile, size)
		for x := range rows[y] {
			rows[y][x] = fill
		}
	}
	return &Grid{Size: size, rows: rows}
}

// At returns the tile at (x, y). Coordinates outside the grid return Wall,
// so most generator code can query a neighbor without a separate bounds
// check.
func (g *Grid) At(x, y int) tiles.Tile {
	if !g.InBounds(x, y) {
		return tiles.Wall
	}
	return g.rows[y][x]
}

// Set writes a tile at (x, y). Out-of-bounds writes are silently ignored.
func (g *Grid) Set(x, y int, t tiles.Tile) {
	if g.InBounds(x, y) {
		g.rows[y][x] = t
	}
}

// InBounds reports whether (x, y) addresses a cell of this grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// Snapshot returns a deep copy of the tile rows, used by algorithms (such as
// the cellular-automata smoothing pass) that must compute a pass from the
// previous pass's values rather than in place.
func (g *Grid) Snapshot() [][]tiles.Tile {
	out := make([][]tiles.Tile, g.Size)
	for y := range out {
		out[y] = make([]tiles.Tile, g.Size)
		copy(out[y], g.rows[y])
	}
	return out
}

// Restore replaces the grid's rows with a previously taken Snapshot.
func (g *Grid) Restore(rows [][]tiles.Tile) {
	g.rows = rows
}

// Rows exposes the underlying row-major storage for callers that need to
// iterate the whole grid (rendering, stats, tests). Mutating the returned
// slices mutates the grid.
func (g *Grid) Rows() [][]tiles.Tile {
	return g.rows
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{Size: g.Size, rows: g.Snapshot()}
}
