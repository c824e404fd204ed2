// Package main is the datacharts command-line entry point.
package main

import (
	"os"

	"github.com/datacharts-labs/datacharts/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
