package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/squaredcircle/ringledger/internal/domain/classify"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/pkg/logger"
	"github.com/squaredcircle/ringledger/pkg/metrics"
)

// Option applies a configuration option to the Replayer.
type Option func(*Replayer)

// WithClassifier sets the title classifier.
func WithClassifier(c classify.Classifier) Option {
	return func(r *Replayer) {
		if c != nil {
			r.classifier = c
		}
	}
}

// WithLogger sets a custom logger for the replayer.
func WithLogger(l logger.Logger) Option {
	return func(r *Replayer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Replayer turns the event log into derived ledger state with a single
// time-ordered pass. Replaying the same input always yields the same
// Ledger: later edits to history require a full re-derivation, never an
// in-place update.
type Replayer struct {
	classifier classify.Classifier
	logger     logger.Logger
}

// NewReplayer creates a replayer with configuration options.
func NewReplayer(opts ...Option) *Replayer {
	r := &Replayer{
		classifier: classify.Notes(),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replay consumes events in non-decreasing date order (ties keep input
// order) and interleaves vacancies at their dates. It returns the fully
// derived ledger with reign durations already resolved.
func (r *Replayer) Replay(ctx context.Context, events []model.Event, vacancies []model.Vacancy) *Ledger {
	start := time.Now()
	defer func() {
		metrics.RecordReplayDuration(float64(time.Since(start).Milliseconds()))
		metrics.IncrementReplayCount()
	}()

	led := newLedger()

	ordered := make([]model.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	pending := make([]model.Vacancy, len(vacancies))
	copy(pending, vacancies)
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Date.Before(pending[j].Date)
	})

	next := 0
	for _, event := range ordered {
		// Vacancies dated before this card close their reigns first.
		for next < len(pending) && pending[next].Date.Before(event.Date) {
			r.applyVacancy(ctx, led, pending[next])
			next++
		}
		r.replayEvent(ctx, led, event)
	}
	for ; next < len(pending); next++ {
		r.applyVacancy(ctx, led, pending[next])
	}

	resolveDurations(led)

	r.logger.Info(ctx, "ledger replayed",
		logger.Int("events", len(ordered)),
		logger.Int("wrestlers", len(led.wrestlers)),
		logger.Int("vacancies", len(pending)),
	)
	return led
}

func (r *Replayer) replayEvent(ctx context.Context, led *Ledger, event model.Event) {
	if event.Date.IsZero() {
		// Undated cards cannot participate in a time-ordered ledger.
		r.logger.Warn(ctx, "skipping undated event", logger.String("event", event.Name))
		return
	}
	if event.Date.After(led.referenceDate) {
		led.referenceDate = event.Date
	}
	led.years[event.Date.Year()] = struct{}{}

	for idx, match := range event.Matches {
		mainEvent := idx == len(event.Matches)-1
		r.recordMatch(led, event, match, mainEvent)
	}
}

// recordMatch updates wrestler aggregates and, for title bouts with a
// decisive result, applies the Title-Change Rule per contested org.
func (r *Replayer) recordMatch(led *Ledger, event model.Event, match model.Match, mainEvent bool) {
	a := led.wrestler(match.FighterA.Name)
	b := led.wrestler(match.FighterB.Name)
	a.Country = match.FighterA.Country
	b.Country = match.FighterB.Country

	if event.Kind == model.KindPPV {
		a.Featured = true
		b.Featured = true
	}
	if mainEvent {
		a.MainEvents++
		b.MainEvents++
	}

	winner, decisive := match.Winner()
	if !decisive {
		a.Draws++
		b.Draws++
		r.appendBout(a, event, match, model.OutcomeDraw)
		r.appendBout(b, event, match, model.OutcomeDraw)
		// Draws never touch title state and never count as defenses.
		return
	}

	loserFighter, _ := match.Loser()
	win := led.wrestler(winner.Name)
	loss := led.wrestler(loserFighter.Name)
	win.Wins++
	loss.Losses++

	switch r.classifier.Finish(match.Method) {
	case classify.FinishPinfall:
		win.PinfallWins++
		loss.PinfallLosses++
	case classify.FinishSubmission:
		win.SubmissionWins++
		loss.SubmissionLosses++
	default:
		win.DecisionWins++
		loss.DecisionLosses++
	}

	r.appendBout(win, event, match, model.OutcomeWin)
	r.appendBout(loss, event, match, model.OutcomeLoss)

	r.applyTitleRule(led, event, match, winner.Name, loserFighter.Name)
}

func (r *Replayer) appendBout(w *model.WrestlerRecord, event model.Event, match model.Match, outcome model.Outcome) {
	w.Bouts = append(w.Bouts, model.Bout{
		Date:        event.Date,
		Year:        event.Date.Year(),
		Outcome:     outcome,
		Method:      match.Method,
		Opponent:    match.Opponent(w.Name).Name,
		Event:       event.Name,
		WeightClass: match.WeightClass,
	})
}

// applyTitleRule implements the Title-Change Rule for every org the match
// was contested for. A champion only loses the belt to a change-eligible
// finish; anything else credits the open reign with a defense.
func (r *Replayer) applyTitleRule(led *Ledger, event model.Event, match model.Match, winner, loser string) {
	orgs := r.classifier.TitleOrgs(match.Notes)
	if len(orgs) == 0 {
		return
	}
	weight, ok := r.classifier.WeightClass(match.Notes, match.WeightClass)
	if !ok {
		// Unmappable division: degrade to a non-title match.
		metrics.RecordUnclassifiedTitleMatch()
		r.logger.Debug(context.Background(), "title match with unknown weight class",
			logger.String("event", event.Name),
			logger.String("notes", match.Notes),
		)
		return
	}

	eligible := r.classifier.ChangeEligible(match.Method)

	for _, org := range orgs {
		line := led.lines[model.LineKey{Org: org, Weight: weight}]
		current := line.CurrentReign()

		if (current == nil || current.Champion != winner) && eligible {
			winnerCountry := match.FighterA.Country
			if match.FighterB.Name == winner {
				winnerCountry = match.FighterB.Country
			}
			line.Reigns = append(line.Reigns, &model.Reign{
				Champion:   winner,
				Country:    winnerCountry,
				StartDate:  event.Date,
				StartEvent: event.Name,
				Days:       model.DaysPending,
				Notes:      "Def. " + loser,
			})
			led.wrestler(winner).Reigns = append(led.wrestler(winner).Reigns, model.ReignRef{
				Org:    org,
				Weight: weight,
				Start:  event.Date,
			})
			metrics.RecordTitleChange()
			continue
		}

		// Champion retained: either they won outright or the finish could
		// not move the belt.
		if current != nil {
			current.Defenses++
			metrics.RecordTitleDefense()
		}
	}
}

// applyVacancy closes the matching open reign without starting a new one.
// A vacancy naming anyone other than the line's current champion is
// inconsistent administrative data and is dropped.
func (r *Replayer) applyVacancy(ctx context.Context, led *Ledger, v model.Vacancy) {
	line, ok := led.lines[model.LineKey{Org: v.Org, Weight: v.WeightClass}]
	if !ok {
		metrics.RecordVacancyDropped()
		r.logger.Warn(ctx, "vacancy for unknown title line",
			logger.String("org", string(v.Org)),
			logger.String("weight", string(v.WeightClass)),
		)
		return
	}
	current := line.CurrentReign()
	if current == nil || current.Champion != v.Champion {
		metrics.RecordVacancyDropped()
		r.logger.Warn(ctx, "vacancy does not match current champion; dropped",
			logger.String("org", string(v.Org)),
			logger.String("weight", string(v.WeightClass)),
			logger.String("champion", v.Champion),
		)
		return
	}
	current.VacancyDate = v.Date
	current.VacancyMessage = v.Message
	if current.VacancyMessage == "" {
		current.VacancyMessage = "Title vacated"
	}
	metrics.RecordVacancyApplied()
}
