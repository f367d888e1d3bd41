package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if RINGLEDGER_CONFIG is set
//  3. env (prefix RINGLEDGER_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("RINGLEDGER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RINGLEDGER_ADDR, RINGLEDGER_EVENT_LOG, ...
	// Map env keys like RINGLEDGER_EVENT_LOG -> event_log (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RINGLEDGER_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "ringledger_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EventLog == "":
		return fmt.Errorf("%w: event_log must not be empty", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.HOFMinWinPct <= 0 || c.HOFMinWinPct > 1:
		return fmt.Errorf("%w: hof_min_win_pct must be in (0, 1]", ErrInvalidConfig)
	case c.MenStartYear < 1:
		return fmt.Errorf("%w: men_start_year must be positive", ErrInvalidConfig)
	case c.WomenStartYear < 1:
		return fmt.Errorf("%w: women_start_year must be positive", ErrInvalidConfig)
	}
	return nil
}
