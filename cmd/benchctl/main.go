package main

import (
	"os"

	"github.com/bench-kit/benchctl/internal/cli"
	"github.com/bench-kit/benchctl/internal/logging"
)

// main is the entry point for the benchctl CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
