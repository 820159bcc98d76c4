// main is the entry point for the schoolpulse CLI.
package main

import (
	"github.com/pulseedu/schoolpulse/cmd"
	"github.com/pulseedu/schoolpulse/internal/contract"
)

func main() {
	err := cmd.Execute()

	// Flush profiles before any exit path; LogFatal skips defers.
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("profiling shutdown", stopErr)
	}

	if err != nil {
		contract.LogFatal("command failed", err)
	}
}
