package mapgen

import (
	"fmt"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// staticMapArt is the fixed dungeon baked in for the Default kind: a
// deterministic baseline used when generation isn't desired, e.g. for tests.
// Laid out as ASCII art for readability; parsed once at package init into a
// Grid. '#'=wall '.'=floor '+'=door 'S'=start 'E'=end ':'=corridor.
var staticMapArt = []string{
	"################",
	"#....#.....#...#",
	"#....+.....#...#",
	"#....#.....+...#",
	"#....#.....#...#",
	"##+###.....#####",
	"#....:::::.....#",
	"#S...#.....#...#",
	"#....#.....#..E#",
	"#....+.....#...#",
	"#....#.....#...#",
	"###+##.....#####",
	"#....:::::.....#",
	"#....#.....#...#",
	"#....#.....#...#",
	"################",
}

// staticMap parses staticMapArt into a Grid once, at package initialization.
var staticMap = buildStaticMap()

func buildStaticMap() *grid.Grid {
	size := len(staticMapArt)
	g := grid.New(size, tiles.Wall)
	for y, row := range staticMapArt {
		for x, ch := range row {
			g.Set(x, y, staticTileFor(ch))
		}
	}
	return g
}

func staticTileFor(ch rune) tiles.Tile {
	switch ch {
	case '#':
		return tiles.Wall
	case '.':
		return tiles.Floor
	case '+':
		return tiles.Door
	case ':':
		return tiles.Corridor
	case 'S':
		return tiles.Start
	case 'E':
		return tiles.End
	default:
		return tiles.Wall
	}
}

// generateStatic returns a clone of the fixed fallback grid, unchanged by
// any of the requested options; the Default kind ignores seed, connectivity
// policy, and marker requests alike.
func generateStatic() (*grid.Grid, map[string]interface{}) {
	g := staticMap.Clone()
	stats := map[string]interface{}{
		"static": true,
		"source": fmt.Sprintf("baked-in dungeon, %dx%d", g.Size, g.Size),
	}
	return g, stats
}
