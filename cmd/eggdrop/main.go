// Command eggdrop runs the deterministic and stochastic egg-drop searches,
// evaluates the stochastic one by Monte Carlo and serves both over gRPC.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
