// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers an optional YAML file and env vars on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EventLog is the path to the event log JSON file. Required.
	EventLog string `koanf:"event_log"`

	// VacancyLog and TournamentLog are optional companion logs.
	VacancyLog    string `koanf:"vacancy_log"`
	TournamentLog string `koanf:"tournament_log"`

	// WorkerCount bounds the scoring fan-out pool.
	WorkerCount int `koanf:"worker_count"`

	// Yearly table shape.
	TopN           int `koanf:"top_n"`
	GOATTopN       int `koanf:"goat_top_n"`
	WOTYCap        int `koanf:"woty_cap"`
	MinBouts       int `koanf:"min_bouts"`
	MinWins        int `koanf:"min_wins"`
	ActivityWindow int `koanf:"activity_window"`
	MenStartYear   int `koanf:"men_start_year"`
	WomenStartYear int `koanf:"women_start_year"`

	// VoterFatigue discounts GOAT credit for top-3 finishes beyond the cap.
	VoterFatigue    bool `koanf:"voter_fatigue"`
	VoterFatigueCap int  `koanf:"voter_fatigue_cap"`

	// Scoring multipliers.
	FinishMultiplier        float64 `koanf:"finish_multiplier"`
	H2HMultiplier           float64 `koanf:"h2h_multiplier"`
	EnteringChampMultiplier float64 `koanf:"entering_champ_multiplier"`
	DrawCredit              float64 `koanf:"draw_credit"`

	// Hall of Fame thresholds.
	HOFMinWins         int     `koanf:"hof_min_wins"`
	HOFMinWinPct       float64 `koanf:"hof_min_win_pct"`
	HOFMinScore        float64 `koanf:"hof_min_score"`
	HOFRetirementYears int     `koanf:"hof_retirement_years"`
	HOFMaxPerClass     int     `koanf:"hof_max_per_class"`
}

// New creates a Config with production defaults. Context is accepted first
// to satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		EventLog:                "data/events.json",
		VacancyLog:              "data/vacancies.json",
		TournamentLog:           "data/tournaments.json",
		WorkerCount:             runtime.NumCPU(),
		TopN:                    10,
		GOATTopN:                25,
		WOTYCap:                 5,
		MinBouts:                3,
		MinWins:                 2,
		ActivityWindow:          2,
		MenStartYear:            1963,
		WomenStartYear:          1968,
		VoterFatigueCap:         5,
		FinishMultiplier:        1.2,
		H2HMultiplier:           1.4,
		EnteringChampMultiplier: 1.3,
		DrawCredit:              0.4,
		HOFMinWins:              15,
		HOFMinWinPct:            0.68,
		HOFMinScore:             45,
		HOFRetirementYears:      5,
		HOFMaxPerClass:          3,
	}
}
