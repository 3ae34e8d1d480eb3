// Package main is the entry point for the milbstats CLI tool, which fetches
// MiLB play-by-play data and computes advanced per-player metrics.
package main

import "github.com/prospectlab/milbstats/cmd"

func main() {
	cmd.Execute()
}
