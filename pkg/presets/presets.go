// Package presets loads named generation presets from a YAML document, a
// CLI-side convenience layered on top of mapgen.Options. The core facade
// itself never touches a file path.
package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcclowes/tilemapgen/pkg/mapgen"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/bsp"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/cave"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/drunkard"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/maze"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/perlin"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/wfc"
)

// Preset is one named entry in a presets document: the generator kind, grid
// size, and per-kind overrides a CLI can select with a single flag instead
// of a long option line.
type Preset struct {
	Kind            string  `yaml:"kind"`
	Size            int     `yaml:"size"`
	Seed            *uint32 `yaml:"seed"`
	EnsureConnected *bool   `yaml:"ensure_connected"`
	PlaceMarkers    *bool   `yaml:"place_markers"`

	Cave     cave.Options     `yaml:"cave"`
	Drunkard drunkard.Options `yaml:"drunkard"`
	BSP      bsp.Options      `yaml:"bsp"`
	WFC      wfc.Options      `yaml:"wfc"`
	Maze     maze.Options     `yaml:"maze"`
	Perlin   perlin.Options   `yaml:"perlin"`
}

// Document is a presets.yaml file: a flat map from preset name to Preset.
type Document map[string]Preset

// Load reads and parses a presets document from disk.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("presets: parse %s: %w", path, err)
	}
	return doc, nil
}

// Resolve looks up name and turns it into a (Kind, size, Options) triple
// ready for mapgen.Generate.
func (d Document) Resolve(name string) (mapgen.Kind, int, mapgen.Options, error) {
	p, ok := d[name]
	if !ok {
		return 0, 0, mapgen.Options{}, fmt.Errorf("presets: no preset named %q", name)
	}
	kind, err := mapgen.ParseKind(p.Kind)
	if err != nil {
		return 0, 0, mapgen.Options{}, err
	}
	size := p.Size
	if size == 0 {
		size = 32
	}
	opts := mapgen.Options{
		Seed:            p.Seed,
		EnsureConnected: p.EnsureConnected,
		PlaceMarkers:    p.PlaceMarkers,
		Cave:            p.Cave,
		Drunkard:        p.Drunkard,
		BSP:             p.BSP,
		WFC:             p.WFC,
		Maze:            p.Maze,
		Perlin:          p.Perlin,
	}
	return kind, size, opts, nil
}
