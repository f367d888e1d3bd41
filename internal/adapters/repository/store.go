// Package repository derives ranking snapshots from ingested logs and
// publishes them atomically for concurrent readers.
package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/squaredcircle/ringledger/internal/adapters/ingest"
	"github.com/squaredcircle/ringledger/internal/domain/hof"
	"github.com/squaredcircle/ringledger/internal/domain/ledger"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/internal/domain/rankings"
	"github.com/squaredcircle/ringledger/internal/domain/scoring"
	"github.com/squaredcircle/ringledger/pkg/logger"
	"github.com/squaredcircle/ringledger/pkg/metrics"
)

const dateLayout = "January 2, 2006"

// Snapshot is one immutable derivation of the full ledger state. Readers
// hold a consistent view for as long as they keep the pointer.
type Snapshot struct {
	BuiltAt time.Time
	Ledger  *ledger.Ledger
	Caches  *scoring.Caches
	Tables  *rankings.Tables
	Classes []hof.Class

	builder *rankings.Builder
	engine  *scoring.Engine
}

// Store owns the current snapshot. Rebuild is the only write path; every
// read serves from the last published snapshot.
type Store struct {
	logger   logger.Logger
	replayer *ledger.Replayer

	scoringOpts []scoring.Option
	rankingOpts []rankings.Option
	hofOpts     []hof.Option

	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store. Reads fail with ErrNotReady until the
// first Rebuild publishes a snapshot.
func NewStore(opts ...Option) *Store {
	s := &Store{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.replayer == nil {
		s.replayer = ledger.NewReplayer(ledger.WithLogger(s.logger))
	}
	return s
}

// Rebuild replays the logs into a fresh ledger, scores it, and publishes
// the result. The previous snapshot stays valid for in-flight readers.
func (s *Store) Rebuild(ctx context.Context, logs ingest.Logs) (*Snapshot, error) {
	started := time.Now()

	led := s.replayer.Replay(ctx, logs.Events, logs.Vacancies)
	caches := scoring.BuildCaches(led, logs.Tournaments)
	engine := scoring.NewEngine(caches, s.scoringOpts...)

	rankingOpts := append([]rankings.Option{
		rankings.WithEngine(engine),
		rankings.WithLogger(s.logger),
	}, s.rankingOpts...)
	builder := rankings.NewBuilder(caches, rankingOpts...)
	tables := builder.Build(ctx)

	hofOpts := append([]hof.Option{
		hof.WithEngine(engine),
		hof.WithLogger(s.logger),
	}, s.hofOpts...)
	classes := hof.NewSelector(caches, hofOpts...).Classes(ctx)

	snap := &Snapshot{
		BuiltAt: time.Now(),
		Ledger:  led,
		Caches:  caches,
		Tables:  tables,
		Classes: classes,
		builder: builder,
		engine:  engine,
	}
	s.current.Store(snap)

	reigns := 0
	for _, line := range led.Lines() {
		reigns += len(line.Reigns)
	}
	metrics.RecordSnapshotRebuildDuration(float64(time.Since(started).Milliseconds()))
	metrics.RecordSnapshotPublished(snap.BuiltAt)
	metrics.UpdateTotalWrestlers(len(led.Wrestlers()))
	metrics.UpdateTotalReigns(reigns)

	s.logger.Info(ctx, "snapshot published",
		logger.Int("events", len(logs.Events)),
		logger.Int("wrestlers", len(led.Wrestlers())),
		logger.Int("reigns", reigns),
		logger.Duration("took", time.Since(started)),
	)
	return snap, nil
}

// Snapshot returns the current snapshot, or ErrNotReady before the first
// rebuild.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// Years lists every year with at least one recorded event.
func (s *Store) Years() ([]int, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Ledger.Years(), nil
}

// Rankings returns the yearly table for one division.
func (s *Store) Rankings(div rankings.Division, year int) ([]rankings.Entry, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	years, ok := snap.Tables.Yearly[div]
	if !ok {
		return nil, fmt.Errorf("%w: division %q", ErrNotFound, div)
	}
	entries, ok := years[year]
	if !ok {
		return nil, fmt.Errorf("%w: no table for %d", ErrNotFound, year)
	}
	return entries, nil
}

// GOAT returns the all-time list for one division.
func (s *Store) GOAT(div rankings.Division) ([]rankings.Entry, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	entries, ok := snap.Tables.GOAT[div]
	if !ok {
		return nil, fmt.Errorf("%w: division %q", ErrNotFound, div)
	}
	return entries, nil
}

// HallOfFame returns every induction class in order.
func (s *Store) HallOfFame() ([]hof.Class, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Classes, nil
}

// ReignView is one reign of a title line, formatted for presentation.
type ReignView struct {
	Champion  string `json:"champion"`
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	WonAt     string `json:"won_at,omitempty"`
	Defenses  int    `json:"defenses"`
	Days      int    `json:"days,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Vacated   string `json:"vacated,omitempty"`
}

// ChampionTotalView aggregates one champion's totals within a line.
type ChampionTotalView struct {
	Champion string `json:"champion"`
	Country  string `json:"country"`
	Reigns   int    `json:"reigns"`
	Days     int    `json:"days"`
	Defenses int    `json:"defenses"`
}

// TitleLineView is the full history of one belt.
type TitleLineView struct {
	Org     string              `json:"org"`
	Weight  string              `json:"weight_class"`
	Current *ReignView          `json:"current_champion,omitempty"`
	Reigns  []ReignView         `json:"reigns"`
	Totals  []ChampionTotalView `json:"totals"`
	Vacant  bool                `json:"vacant"`
}

// TitleLine returns the reign history, current champion, and per-champion
// totals for one belt.
func (s *Store) TitleLine(org model.Org, weight model.WeightClass) (TitleLineView, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return TitleLineView{}, err
	}
	key := model.LineKey{Org: org, Weight: weight}
	line := snap.Ledger.Line(key)
	if line == nil {
		return TitleLineView{}, fmt.Errorf("%w: title %s %s", ErrNotFound, org, weight)
	}

	view := TitleLineView{
		Org:    org.Label(),
		Weight: string(weight),
		Reigns: make([]ReignView, 0, len(line.Reigns)),
		Vacant: line.CurrentReign() == nil,
	}
	for _, reign := range line.Reigns {
		view.Reigns = append(view.Reigns, reignView(reign))
	}
	if current := line.CurrentReign(); current != nil {
		rv := reignView(current)
		view.Current = &rv
	}
	for _, total := range snap.Ledger.LineTotals(key) {
		view.Totals = append(view.Totals, ChampionTotalView{
			Champion: total.Champion,
			Country:  total.Country,
			Reigns:   total.Reigns,
			Days:     total.Days,
			Defenses: total.Defenses,
		})
	}
	return view, nil
}

func reignView(r *model.Reign) ReignView {
	view := ReignView{
		Champion:  r.Champion,
		Country:   r.Country,
		StartDate: r.StartDate.Format(dateLayout),
		WonAt:     r.StartEvent,
		Defenses:  r.Defenses,
		Notes:     r.Notes,
	}
	if r.Days > 0 {
		view.Days = r.Days
	}
	if r.Vacated() {
		view.Vacated = r.VacancyMessage
		if view.Vacated == "" {
			view.Vacated = r.VacancyDate.Format(dateLayout)
		}
	}
	return view
}

// WrestlerProfile is the full card for one wrestler.
type WrestlerProfile struct {
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	CareerRecord string   `json:"career_record"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	Draws        int      `json:"draws"`
	PinfallWins  int      `json:"pinfall_wins"`
	SubWins      int      `json:"submission_wins"`
	MainEvents   int      `json:"main_events"`
	BestWinRun   int      `json:"longest_win_streak"`
	WorstLossRun int      `json:"longest_loss_streak"`
	ChampYears   int      `json:"years_as_champion,omitempty"`
	Debut        int      `json:"debut,omitempty"`
	LastFight    int      `json:"last_fight,omitempty"`
	GOATScore    float64  `json:"goat_score"`
	HighestRank  int      `json:"highest_rank,omitempty"`
	RankedYears  []int    `json:"ranked_first_years,omitempty"`
	Titles       []string `json:"titles,omitempty"`
	HallOfFame   int      `json:"hall_of_fame_year,omitempty"`
}

// Wrestler returns the profile for one wrestler by exact name.
func (s *Store) Wrestler(name string) (WrestlerProfile, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return WrestlerProfile{}, err
	}
	w := snap.Ledger.Wrestler(name)
	if w == nil {
		return WrestlerProfile{}, fmt.Errorf("%w: wrestler %q", ErrNotFound, name)
	}

	profile := WrestlerProfile{
		Name:         w.Name,
		Country:      w.Country,
		CareerRecord: fmt.Sprintf("%d-%d-%d", w.Wins, w.Losses, w.Draws),
		Wins:         w.Wins,
		Losses:       w.Losses,
		Draws:        w.Draws,
		PinfallWins:  w.PinfallWins,
		SubWins:      w.SubmissionWins,
		MainEvents:   w.MainEvents,
		GOATScore:    snap.engine.GOATScore(name, snap.Caches.CurrentYear()),
		Titles:       snap.builder.CareerTitles(name),
	}
	profile.BestWinRun, profile.WorstLossRun = w.LongestStreaks()
	for _, year := range snap.Caches.Years() {
		if snap.Caches.HeldChampYear(name, year) {
			profile.ChampYears++
		}
	}
	if len(w.Bouts) > 0 {
		profile.Debut = w.Bouts[0].Year
		profile.LastFight = w.Bouts[len(w.Bouts)-1].Year
	}
	if rank, years, ok := snap.Tables.HighestRanking(name); ok {
		profile.HighestRank = rank
		profile.RankedYears = years
	}
	for _, class := range snap.Classes {
		for _, member := range class.Inductees {
			if member.Name == name {
				profile.HallOfFame = class.Year
			}
		}
	}
	return profile, nil
}
