// Command mapgenctl is a cobra-based control surface over pkg/mapgen: single
// generations, seed sweeps with progress reporting, and a small throughput
// benchmark, optionally archiving results through pkg/history.
package main

import "github.com/mcclowes/tilemapgen/cmd/mapgenctl/cmd"

func main() {
	cmd.Execute()
}
