// Package main is the entry point for the projdex CLI.
package main

import (
	"os"

	"github.com/rgould/projdex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
