// Command stacker is the CLI surface around the laminate engine's
// in-process packages (spec.md §6's "no CLI is part of the core" — this
// is the optional outer layer a shipped Go module carries around that
// core, per SPEC_FULL.md §6).
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
