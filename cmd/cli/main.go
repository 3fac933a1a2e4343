// Package main is the entry point for the carport-quote CLI.
package main

import (
	"os"

	"carport-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
