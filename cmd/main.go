package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/squaredcircle/ringledger/internal/adapters/http/api"
	"github.com/squaredcircle/ringledger/internal/adapters/http/swagger"
	"github.com/squaredcircle/ringledger/internal/adapters/ingest"
	app "github.com/squaredcircle/ringledger/internal/app"
	"github.com/squaredcircle/ringledger/internal/config"
	"github.com/squaredcircle/ringledger/internal/domain/hof"
	"github.com/squaredcircle/ringledger/internal/domain/rankings"
	"github.com/squaredcircle/ringledger/internal/domain/scoring"
	"github.com/squaredcircle/ringledger/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	root := &cobra.Command{
		Use:   "ringledger",
		Short: "Championship ledger and ranking service",
		Long: "Replays wrestling event logs into title reign histories and " +
			"derives yearly rankings, all-time lists, and Hall of Fame classes.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A local .env is optional; real deployments set env directly.
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			return logger.Init()
		},
	}
	root.AddCommand(serveCmd(), replayCmd())

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// newService builds the ledger service from loaded configuration.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	params := scoring.DefaultParams()
	params.FinishMultiplier = cfg.FinishMultiplier
	params.H2HMultiplier = cfg.H2HMultiplier
	params.EnteringChampMultiplier = cfg.EnteringChampMultiplier
	params.DrawCredit = cfg.DrawCredit

	return app.New(
		app.WithLogger(log),
		app.WithPaths(ingest.Paths{
			Events:      cfg.EventLog,
			Vacancies:   cfg.VacancyLog,
			Tournaments: cfg.TournamentLog,
		}),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithScoringParams(params),
		app.WithRankingOptions(
			rankings.WithEligibility(cfg.MinBouts, cfg.MinWins),
			rankings.WithActivityWindow(cfg.ActivityWindow),
			rankings.WithTopN(cfg.TopN),
			rankings.WithGOATTopN(cfg.GOATTopN),
			rankings.WithWOTYCap(cfg.WOTYCap),
			rankings.WithStartYears(cfg.MenStartYear, cfg.WomenStartYear),
			rankings.WithVoterFatigue(cfg.VoterFatigue, cfg.VoterFatigueCap),
		),
		app.WithHOFOptions(
			hof.WithThresholds(cfg.HOFMinWins, cfg.HOFMinWinPct, cfg.HOFMinScore),
			hof.WithRetirementYears(cfg.HOFRetirementYears),
			hof.WithMaxPerClass(cfg.HOFMaxPerClass),
		),
	)
}

func setup(ctx context.Context) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Derive the ledger and serve the ranking API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Custom system metrics replace the default Go collectors.
			prometheus.Unregister(collectors.NewGoCollector())
			prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}

			svc := newService(cfg, log)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc, log).Register(ctx, mux)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           mux,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			log.Info(ctx, "shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(ctx, "server shutdown failed", logger.Error(err))
			}
			log.Info(ctx, "server stopped")
			return nil
		},
	}
}

// replaySummary is the output shape of the replay command.
type replaySummary struct {
	Years      []int               `json:"years"`
	Wrestlers  int                 `json:"wrestlers"`
	Open       map[int]string      `json:"open_champions,omitempty"`
	HallOfFame []hof.Class         `json:"hall_of_fame"`
	GOAT       map[string][]string `json:"goat"`
}

func replayCmd() *cobra.Command {
	var goatDepth int
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the logs once and print a derivation summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}

			svc := newService(cfg, log)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			snap, err := svc.Snapshot()
			if err != nil {
				return err
			}

			summary := replaySummary{
				Years:     snap.Ledger.Years(),
				Wrestlers: len(snap.Ledger.Wrestlers()),
				Open:      make(map[int]string),
				GOAT:      make(map[string][]string),
			}
			for _, year := range snap.Caches.Years() {
				if ed, ok := snap.Caches.Edition(year); ok {
					summary.Open[year] = ed.Winner
				}
			}
			summary.HallOfFame, _ = svc.HallOfFame()
			for _, div := range rankings.Divisions() {
				entries, err := svc.GOAT(div)
				if err != nil {
					continue
				}
				names := make([]string, 0, goatDepth)
				for i, e := range entries {
					if i >= goatDepth {
						break
					}
					names = append(names, e.Name)
				}
				summary.GOAT[string(div)] = names
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().IntVar(&goatDepth, "goat", 10, "entries to print per all-time list")
	return cmd
}
