// Package main is the entry point for glyphfall.
package main

import (
	"os"

	"github.com/dshills/glyphfall/cmd/glyphfall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
