// Package hof selects Hall of Fame classes from a scored ledger. The
// criteria are deliberately strict; most champions never get in.
package hof

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/squaredcircle/ringledger/internal/domain/scoring"
	"github.com/squaredcircle/ringledger/pkg/logger"
)

// Default induction criteria.
const (
	defaultMinWins         = 15
	defaultMinWinPct       = 0.68
	defaultMinScore        = 45.0
	defaultRetirementYears = 5
	defaultMaxPerClass     = 3
)

// Member is one inductee.
type Member struct {
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	CareerRecord string    `json:"career_record"`
	Score        float64   `json:"score"`
	Debut        time.Time `json:"debut"`
	Retired      time.Time `json:"retired"`
}

// Class is one induction year.
type Class struct {
	Year      int      `json:"year"`
	Inductees []Member `json:"inductees"`
}

// Selector computes Hall of Fame classes year by year. Induction is
// permanent; a name appears in at most one class.
type Selector struct {
	caches *scoring.Caches
	engine *scoring.Engine
	logger logger.Logger

	minWins         int
	minWinPct       float64
	minScore        float64
	retirementYears int
	maxPerClass     int
	requireMajor    bool
}

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithEngine sets the scoring engine used for the all-time threshold.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Selector) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets the selector's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThresholds overrides the win, win-percentage and score minimums.
func WithThresholds(minWins int, minWinPct, minScore float64) Option {
	return func(s *Selector) {
		if minWins > 0 {
			s.minWins = minWins
		}
		if minWinPct > 0 {
			s.minWinPct = minWinPct
		}
		if minScore > 0 {
			s.minScore = minScore
		}
	}
}

// WithRetirementYears sets the inactivity period before eligibility.
func WithRetirementYears(years int) Option {
	return func(s *Selector) {
		if years > 0 {
			s.retirementYears = years
		}
	}
}

// WithMaxPerClass bounds the inductees per induction year.
func WithMaxPerClass(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.maxPerClass = n
		}
	}
}

// WithRequireMajor toggles the major-title requirement. A magazine belt
// alone does not qualify when this is on.
func WithRequireMajor(required bool) Option {
	return func(s *Selector) {
		s.requireMajor = required
	}
}

// NewSelector creates a Hall of Fame selector over prebuilt caches.
func NewSelector(caches *scoring.Caches, opts ...Option) *Selector {
	s := &Selector{
		caches:          caches,
		logger:          logger.Nop(),
		minWins:         defaultMinWins,
		minWinPct:       defaultMinWinPct,
		minScore:        defaultMinScore,
		retirementYears: defaultRetirementYears,
		maxPerClass:     defaultMaxPerClass,
		requireMajor:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = scoring.NewEngine(caches)
	}
	return s
}

// Classes walks every possible induction year in order and returns the
// non-empty classes.
func (s *Selector) Classes(ctx context.Context) []Class {
	years := s.caches.Years()
	if len(years) == 0 {
		return nil
	}
	first := years[0] + s.retirementYears + 1
	last := years[len(years)-1]

	inducted := make(map[string]bool)
	var classes []Class

	for year := first; year <= last; year++ {
		members := s.eligible(year, inducted)
		if len(members) > s.maxPerClass {
			members = members[:s.maxPerClass]
		}
		if len(members) == 0 {
			continue
		}
		for _, m := range members {
			inducted[m.Name] = true
		}
		classes = append(classes, Class{Year: year, Inductees: members})
		s.logger.Debug(ctx, "hall of fame class selected",
			logger.Int("year", year),
			logger.Int("inductees", len(members)),
		)
	}
	return classes
}

// eligible returns every candidate passing the gate for one induction
// year, best score first.
func (s *Selector) eligible(year int, inducted map[string]bool) []Member {
	var members []Member
	for _, w := range s.caches.Ledger().Wrestlers() {
		if inducted[w.Name] || !w.Featured {
			continue
		}
		total := w.TotalBouts()
		if total == 0 {
			continue
		}
		if s.caches.LastFightYear(w.Name) > year-s.retirementYears {
			continue
		}
		if w.Wins < s.minWins {
			continue
		}
		// Draws count against the percentage.
		if float64(w.Wins)/float64(total) < s.minWinPct {
			continue
		}
		if s.requireMajor && !s.heldMajor(w.Name) {
			continue
		}
		score := s.engine.GOATScore(w.Name, year)
		if score < s.minScore {
			continue
		}
		members = append(members, Member{
			Name:         w.Name,
			Country:      w.Country,
			CareerRecord: fmt.Sprintf("%d-%d-%d", w.Wins, w.Losses, w.Draws),
			Score:        score,
			Debut:        w.Bouts[0].Date,
			Retired:      w.Bouts[len(w.Bouts)-1].Date,
		})
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Name < members[j].Name
	})
	return members
}

// heldMajor reports whether the wrestler ever held a major world title.
func (s *Selector) heldMajor(name string) bool {
	for _, entry := range s.caches.ReignsOf(name) {
		if entry.Line.Key.Org.Major() {
			return true
		}
	}
	return false
}
