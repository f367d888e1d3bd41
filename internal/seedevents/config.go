package seedevents

import "time"

// Config holds configuration for the history generator.
type Config struct {
	OutputDir  string // Directory for the generated logs
	StartYear  int    // First simulated year
	EndYear    int    // Last simulated year
	RosterSize int    // Wrestlers per weight class
	Seed       int64  // Seed for the deterministic generator
	Weekly     bool   // Also generate weekly television cards
	Verbose    bool   // Enable verbose logging
}

// Stats holds generation statistics.
type Stats struct {
	Cards        int
	Matches      int
	TitleMatches int
	Vacancies    int
	Tournaments  int
	StartTime    time.Time
	Duration     time.Duration
}
