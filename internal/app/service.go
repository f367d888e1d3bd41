// Package service wires ingestion, replay, and the snapshot store into
// the dependency bundle required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/squaredcircle/ringledger/internal/adapters/ingest"
	"github.com/squaredcircle/ringledger/internal/adapters/repository"
	"github.com/squaredcircle/ringledger/internal/domain/hof"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/internal/domain/rankings"
	"github.com/squaredcircle/ringledger/internal/domain/scoring"
	"github.com/squaredcircle/ringledger/pkg/logger"
)

// Service owns the ledger pipeline: load logs, replay, score, publish.
type Service struct {
	mu sync.Mutex

	paths  ingest.Paths
	loader *ingest.Loader
	store  *repository.Store

	params      scoring.Params
	rankingOpts []rankings.Option
	hofOpts     []hof.Option
	workerCount int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPaths sets the log file locations.
func WithPaths(paths ingest.Paths) Option {
	return func(s *Service) {
		s.paths = paths
	}
}

// WithScoringParams overrides the scoring parameters.
func WithScoringParams(params scoring.Params) Option {
	return func(s *Service) {
		s.params = params
	}
}

// WithRankingOptions forwards options to the ranking builder.
func WithRankingOptions(opts ...rankings.Option) Option {
	return func(s *Service) {
		s.rankingOpts = append(s.rankingOpts, opts...)
	}
}

// WithHOFOptions forwards options to the Hall of Fame selector.
func WithHOFOptions(opts ...hof.Option) Option {
	return func(s *Service) {
		s.hofOpts = append(s.hofOpts, opts...)
	}
}

// WithWorkerCount bounds the scoring fan-out pool.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		params: scoring.DefaultParams(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the logs and publishes the first snapshot. It fails when
// the event log cannot be read; the service is unusable without one.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting ledger service",
		logger.String("event_log", s.paths.Events),
	)

	s.loader = ingest.NewLoader(ingest.WithLogger(s.logger))

	rankingOpts := s.rankingOpts
	if s.workerCount > 0 {
		rankingOpts = append(rankingOpts, rankings.WithWorkers(s.workerCount))
	}
	s.store = repository.NewStore(
		repository.WithLogger(s.logger),
		repository.WithScoringOptions(scoring.WithParams(s.params)),
		repository.WithRankingOptions(rankingOpts...),
		repository.WithHOFOptions(s.hofOpts...),
	)

	if err := s.rebuild(ctx); err != nil {
		return fmt.Errorf("initial derivation: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "ledger service started")
	return nil
}

// Stop shuts the service down. The last snapshot stays readable until
// the process exits.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "ledger service stopped")
}

// RebuildFromLogs re-ingests the logs and publishes a fresh snapshot.
func (s *Service) RebuildFromLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return repository.ErrNotReady
	}
	return s.rebuild(ctx)
}

func (s *Service) rebuild(ctx context.Context) error {
	logs, err := s.loader.Load(ctx, s.paths)
	if err != nil {
		return err
	}
	if _, err := s.store.Rebuild(ctx, logs); err != nil {
		return err
	}
	return nil
}

// ready returns the store, or ErrNotReady before Start.
func (s *Service) ready() (*repository.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, repository.ErrNotReady
	}
	return s.store, nil
}

// Years lists every year with at least one recorded event.
func (s *Service) Years() ([]int, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.Years()
}

// Rankings returns the yearly table for one division.
func (s *Service) Rankings(div rankings.Division, year int) ([]rankings.Entry, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.Rankings(div, year)
}

// GOAT returns the all-time list for one division.
func (s *Service) GOAT(div rankings.Division) ([]rankings.Entry, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.GOAT(div)
}

// HallOfFame returns every induction class.
func (s *Service) HallOfFame() ([]hof.Class, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.HallOfFame()
}

// TitleLine returns the full history of one belt.
func (s *Service) TitleLine(org model.Org, weight model.WeightClass) (repository.TitleLineView, error) {
	store, err := s.ready()
	if err != nil {
		return repository.TitleLineView{}, err
	}
	return store.TitleLine(org, weight)
}

// Wrestler returns the profile for one wrestler.
func (s *Service) Wrestler(name string) (repository.WrestlerProfile, error) {
	store, err := s.ready()
	if err != nil {
		return repository.WrestlerProfile{}, err
	}
	return store.Wrestler(name)
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() (*repository.Snapshot, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.Snapshot()
}
