// Package main implements the mathsheet command, which generates randomized
// arithmetic worksheets as LaTeX documents and serves them over HTTP and MCP.
package main

import (
	"os"
)

// Version is set during build
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
