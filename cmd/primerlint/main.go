// Package main provides the primerlint command.
package main

import (
	"os"

	"github.com/leapstack-labs/primerlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
