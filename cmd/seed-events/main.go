package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/squaredcircle/ringledger/internal/seedevents"
	"github.com/squaredcircle/ringledger/pkg/logger"
)

// Default configuration constants.
const (
	defaultStartYear = 1955
	defaultEndYear   = 2000
	defaultRoster    = 12
	defaultSeed      = 1
	defaultTimeout   = 5 * time.Minute
)

func main() {
	var (
		outputDir = flag.String("out", "data", "Output directory for the generated logs")
		startYear = flag.Int("start", defaultStartYear, "First simulated year")
		endYear   = flag.Int("end", defaultEndYear, "Last simulated year")
		roster    = flag.Int("roster", defaultRoster, "Wrestlers per weight class")
		seed      = flag.Int64("seed", defaultSeed, "Generator seed")
		weekly    = flag.Bool("weekly", false, "Also generate weekly television cards")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedevents.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &seedevents.Config{
		OutputDir:  *outputDir,
		StartYear:  *startYear,
		EndYear:    *endYear,
		RosterSize: *roster,
		Seed:       *seed,
		Weekly:     *weekly,
		Verbose:    *verbose,
	}
	if _, err := seedevents.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
