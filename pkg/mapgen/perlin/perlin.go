// Package perlin generates terrain height fields from seeded fractal Perlin
// noise and bands them into the terrain tile vocabulary.
package perlin

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// Options controls Perlin terrain generation.
type Options struct {
	Octaves           int
	Scale             float64
	Lacunarity        float64
	Persistence       float64
	IslandMask        bool
	IslandFalloff     float64
	ErosionIterations int
	WaterLevel        float64
	Logger            *logrus.Logger
}

// Stats reports the terrain composition as percentages of the grid.
type Stats struct {
	WaterPercentage    float64
	LandPercentage     float64
	MountainPercentage float64
}

// Generate produces an N×N terrain grid in the terrain vocabulary. Unlike
// the dungeon generators, terrain carries no border guarantee: the map is
// meant to tile or extend conceptually beyond its edges.
func Generate(s *prng.Source, size int, opts Options) (*grid.Grid, Stats, error) {
	octaves := opts.Octaves
	if octaves == 0 {
		octaves = 4
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 0.08
	}
	lacunarity := opts.Lacunarity
	if lacunarity == 0 {
		lacunarity = 2
	}
	persistence := opts.Persistence
	if persistence == 0 {
		persistence = 0.5
	}
	erosionIterations := opts.ErosionIterations
	if erosionIterations == 0 {
		erosionIterations = 2
	}
	islandFalloff := opts.IslandFalloff
	if islandFalloff == 0 {
		islandFalloff = 1.8
	}
	waterLevel := opts.WaterLevel
	if waterLevel == 0 {
		waterLevel = 0.35
	}

	log := opts.Logger
	if log != nil && log.GetLevel() >= logrus.DebugLevel {
		log.WithFields(logrus.Fields{"size": size, "octaves": octaves, "scale": scale}).Debug("starting Perlin terrain generation")
	}

	perm := buildPermutation(s)

	var totalAmplitude float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		totalAmplitude += amp
		amp *= persistence
	}

	heights := make([][]float64, size)
	for y := range heights {
		heights[y] = make([]float64, size)
		for x := range heights[y] {
			var sum float64
			freq := scale
			a := 1.0
			for o := 0; o < octaves; o++ {
				sum += noise2D(perm, float64(x)*freq, float64(y)*freq) * a
				freq *= lacunarity
				a *= persistence
			}
			h := (sum/totalAmplitude + 1) / 2
			if opts.IslandMask {
				h *= islandMask(x, y, size, islandFalloff)
			}
			heights[y][x] = h
		}
	}

	for i := 0; i < erosionIterations; i++ {
		heights = erodeOnce(heights, size)
	}

	g := grid.New(size, tiles.DeepWater)
	var waterCount, landCount, mountainCount int
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := band(heights[y][x], waterLevel)
			g.Set(x, y, t)
			switch t {
			case tiles.DeepWater, tiles.Water:
				waterCount++
			case tiles.Sand, tiles.Grass, tiles.Forest:
				landCount++
			case tiles.Mountain:
				mountainCount++
			}
		}
	}

	total := float64(size * size)
	stats := Stats{
		WaterPercentage:    float64(waterCount) / total * 100,
		LandPercentage:     float64(landCount) / total * 100,
		MountainPercentage: float64(mountainCount) / total * 100,
	}
	return g, stats, nil
}

func buildPermutation(s *prng.Source) []int {
	base := make([]int, 256)
	for i := range base {
		base[i] = i
	}
	prng.Shuffle(s, base)

	perm := make([]int, 512)
	copy(perm[:256], base)
	copy(perm[256:], base)
	return perm
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// gradient picks one of {x+y, -x+y, x-y, -x-y} from the hash's low two bits.
func gradient(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

func noise2D(perm []int, x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := perm[perm[xi]+yi]
	ab := perm[perm[xi]+yi+1]
	ba := perm[perm[xi+1]+yi]
	bb := perm[perm[xi+1]+yi+1]

	x1 := lerp(u, gradient(aa, xf, yf), gradient(ba, xf-1, yf))
	x2 := lerp(u, gradient(ab, xf, yf-1), gradient(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

func islandMask(x, y, size int, falloff float64) float64 {
	center := float64(size-1) / 2
	dx := float64(x) - center
	dy := float64(y) - center
	dist := math.Sqrt(dx*dx + dy*dy)
	halfExtent := float64(size) / 2
	d := dist / halfExtent
	mask := 1 - math.Pow(d, falloff)
	if mask < 0 {
		return 0
	}
	return mask
}

func erodeOnce(prev [][]float64, size int) [][]float64 {
	next := make([][]float64, size)
	for y := range next {
		next[y] = make([]float64, size)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var sum float64
			for _, d := range cardinal1 {
				nx, ny := x+d[0], y+d[1]
				if nx >= 0 && nx < size && ny >= 0 && ny < size {
					sum += prev[ny][nx]
				} else {
					sum += prev[y][x]
				}
			}
			avg := sum / 4
			next[y][x] = 0.8*prev[y][x] + 0.2*avg
		}
	}
	return next
}

var cardinal1 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func band(h, waterLevel float64) tiles.Tile {
	deepThreshold := waterLevel - 0.1
	switch {
	case h < deepThreshold:
		return tiles.DeepWater
	case h < waterLevel:
		return tiles.Water
	case h < 0.4:
		return tiles.Sand
	case h < 0.6:
		return tiles.Grass
	case h < 0.75:
		return tiles.Forest
	default:
		return tiles.Mountain
	}
}
