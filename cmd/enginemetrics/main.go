// Package main provides the enginemetrics CLI for ingesting chess engine
// game data and asking questions about engine performance.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
