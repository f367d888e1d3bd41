package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/squaredcircle/ringledger/internal/config"
)

var configEnvVars = []string{
	"RINGLEDGER_CONFIG",
	"RINGLEDGER_ADDR",
	"RINGLEDGER_EVENT_LOG",
	"RINGLEDGER_WORKER_COUNT",
	"RINGLEDGER_WOTY_CAP",
	"RINGLEDGER_VOTER_FATIGUE",
	"RINGLEDGER_HOF_MIN_WIN_PCT",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.EventLog, convey.ShouldEqual, "data/events.json")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.GOATTopN, convey.ShouldEqual, 25)
				convey.So(cfg.WOTYCap, convey.ShouldEqual, 5)
				convey.So(cfg.MenStartYear, convey.ShouldEqual, 1963)
				convey.So(cfg.WomenStartYear, convey.ShouldEqual, 1968)
				convey.So(cfg.VoterFatigue, convey.ShouldBeFalse)
				convey.So(cfg.HOFMinWins, convey.ShouldEqual, 15)
				convey.So(cfg.HOFMinWinPct, convey.ShouldEqual, 0.68)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RINGLEDGER_ADDR", ":8080")
			_ = os.Setenv("RINGLEDGER_EVENT_LOG", "/data/cards.json")
			_ = os.Setenv("RINGLEDGER_WORKER_COUNT", "16")
			_ = os.Setenv("RINGLEDGER_WOTY_CAP", "3")
			_ = os.Setenv("RINGLEDGER_VOTER_FATIGUE", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EventLog, convey.ShouldEqual, "/data/cards.json")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.WOTYCap, convey.ShouldEqual, 3)
				convey.So(cfg.VoterFatigue, convey.ShouldBeTrue)
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":7070\"\nevent_log: /data/events.json\nhof_min_score: 50\n"
			err := os.WriteFile(path, []byte(yaml), 0o600)
			convey.So(err, convey.ShouldBeNil)
			_ = os.Setenv("RINGLEDGER_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.EventLog, convey.ShouldEqual, "/data/events.json")
				convey.So(cfg.HOFMinScore, convey.ShouldEqual, 50.0)
			})

			convey.Convey("And env vars override the file", func() {
				_ = os.Setenv("RINGLEDGER_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file is missing", func() {
			clearConfigEnvVars()
			_ = os.Setenv("RINGLEDGER_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When validation fails", func() {
			clearConfigEnvVars()
			_ = os.Setenv("RINGLEDGER_EVENT_LOG", "")
			defer clearConfigEnvVars()

			convey.Convey("Then an empty event log is rejected", func() {
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And an out-of-range win percentage is rejected", func() {
				_ = os.Setenv("RINGLEDGER_EVENT_LOG", "/data/events.json")
				_ = os.Setenv("RINGLEDGER_HOF_MIN_WIN_PCT", "1.5")
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
