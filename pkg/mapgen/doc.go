// Package mapgen is the dispatch facade over the seven tile-map generator
// families: cellular-automata caves, drunkard's walk, BSP dungeons, wave
// function collapse, mazes, Perlin terrain, and the static fallback map.
//
// Generate is the single entry point: given a Kind, a grid size, and an
// Options bag, it selects a PRNG seed, runs the matching
// generator package, applies the requested connectivity and marker
// post-passes, and returns a Result carrying the grid, the seed actually
// used, and a generator-specific stats bag.
//
// The core package never touches a file, an environment variable, or the
// network: every generator is a pure function of (kind, size, options).
package mapgen
