package repository

import (
	"github.com/squaredcircle/ringledger/internal/domain/hof"
	"github.com/squaredcircle/ringledger/internal/domain/ledger"
	"github.com/squaredcircle/ringledger/internal/domain/rankings"
	"github.com/squaredcircle/ringledger/internal/domain/scoring"
	"github.com/squaredcircle/ringledger/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReplayer sets the ledger replayer used by Rebuild.
func WithReplayer(r *ledger.Replayer) Option {
	return func(s *Store) {
		if r != nil {
			s.replayer = r
		}
	}
}

// WithScoringOptions forwards options to the scoring engine built on
// each rebuild.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Store) {
		s.scoringOpts = append(s.scoringOpts, opts...)
	}
}

// WithRankingOptions forwards options to the ranking builder built on
// each rebuild.
func WithRankingOptions(opts ...rankings.Option) Option {
	return func(s *Store) {
		s.rankingOpts = append(s.rankingOpts, opts...)
	}
}

// WithHOFOptions forwards options to the Hall of Fame selector built on
// each rebuild.
func WithHOFOptions(opts ...hof.Option) Option {
	return func(s *Store) {
		s.hofOpts = append(s.hofOpts, opts...)
	}
}
