package seed

import "os"

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Heroes Seed Tool
================

Creates random superheroes through the API and checks they are listed back.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Superheroes collection endpoint (default "http://localhost:3000/superheroes")
  -count int
        Number of heroes to create (default 20)
  -workers int
        Number of concurrent create calls (default 4)
  -timeout duration
        Per-request timeout (default 10s)
  -verbose
        Log every created hero
  -help
        Show this help message

Examples:
  go run ./cmd/seed -count 100 -workers 8
  go run ./cmd/seed -url http://localhost:4000/superheroes -verbose
`)
}
