package main

import (
	"github.com/xkilldash9x/graphloom/cmd"
)

// main is the entry point for the graphloom CLI.
func main() {
	// All command-line parsing, configuration, and execution lives in cmd.
	cmd.Execute()
}
