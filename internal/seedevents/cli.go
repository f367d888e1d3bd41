// Package seedevents generates synthetic event, vacancy, and tournament
// logs for local development and load experiments.
package seedevents

import "os"

// ShowHelp prints usage information for the history generator.
func ShowHelp() {
	os.Stdout.WriteString(`Ring Ledger History Generator
=============================

Generates a deterministic synthetic wrestling history in the ingest log
format: events.json, vacancies.json, and tournaments.json.

Usage:
  go run cmd/seed-events/main.go [options]

Options:
  -out string
        Output directory for the generated logs (default "data")
  -start int
        First simulated year (default 1955)
  -end int
        Last simulated year (default 2000)
  -roster int
        Wrestlers per weight class (default 12)
  -seed int
        Generator seed; the same seed reproduces the same history (default 1)
  -weekly
        Also generate weekly television cards
  -help
        Show this help message

Examples:
  # Generate the default half-century of history
  go run cmd/seed-events/main.go

  # A short dense history with television tapings
  go run cmd/seed-events/main.go -start 1970 -end 1980 -weekly

  # Reproduce a specific history elsewhere
  go run cmd/seed-events/main.go -seed 42 -out /tmp/ledger-data
`)
}
