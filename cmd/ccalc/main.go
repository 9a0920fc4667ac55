// Package main provides the ccalc command.
package main

import (
	"os"

	"github.com/leapstack-labs/ccalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
