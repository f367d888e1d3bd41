package seedevents

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/squaredcircle/ringledger/pkg/logger"
)

const logFilePermission = 0o600

// Run generates a synthetic history and writes the three ingest logs
// into the configured output directory.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	log := logger.Get()
	log.Info(ctx, "generating synthetic history",
		logger.Int("start_year", cfg.StartYear),
		logger.Int("end_year", cfg.EndYear),
		logger.Int("roster_size", cfg.RosterSize),
	)

	started := time.Now()
	g := newGenerator(cfg)
	g.run(cfg)
	g.stats.StartTime = started
	g.stats.Duration = time.Since(started)

	if err := os.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	files := map[string]any{
		"events.json":      g.events,
		"vacancies.json":   g.vacancies,
		"tournaments.json": g.tournaments,
	}
	for name, payload := range files {
		if err := writeJSON(filepath.Join(cfg.OutputDir, name), payload); err != nil {
			return nil, err
		}
	}

	log.Info(ctx, "synthetic history written",
		logger.String("dir", cfg.OutputDir),
		logger.Int("cards", g.stats.Cards),
		logger.Int("matches", g.stats.Matches),
		logger.Int("title_matches", g.stats.TitleMatches),
		logger.Int("vacancies", g.stats.Vacancies),
		logger.Duration("took", g.stats.Duration),
	)
	return &g.stats, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.OutputDir == "":
		return fmt.Errorf("output dir must not be empty")
	case cfg.StartYear < 1 || cfg.EndYear < cfg.StartYear:
		return fmt.Errorf("year range %d..%d is invalid", cfg.StartYear, cfg.EndYear)
	case cfg.RosterSize < 2:
		return fmt.Errorf("roster size must be at least 2")
	}
	return nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, logFilePermission); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
