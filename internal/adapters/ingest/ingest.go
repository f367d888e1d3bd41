// Package ingest loads the external event, vacancy and tournament logs
// from JSON files into domain models. Records with unusable dates are
// skipped and logged rather than failing the whole load.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/squaredcircle/ringledger/internal/domain/dedupe"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/pkg/logger"
	"github.com/squaredcircle/ringledger/pkg/metrics"
)

// eventRecord is the wire shape of one card in the event log.
type eventRecord struct {
	Name    string        `json:"name"`
	Date    string        `json:"date"`
	Kind    string        `json:"kind"`
	Matches []matchRecord `json:"matches"`
}

type matchRecord struct {
	Fighter1    string `json:"fighter1"`
	Country1    string `json:"country1"`
	Fighter2    string `json:"fighter2"`
	Country2    string `json:"country2"`
	WeightClass string `json:"weight_class"`
	Method      string `json:"method"`
	Falls       string `json:"falls"`
	Winner      string `json:"winner"` // fighter name, empty for a draw
	Notes       string `json:"notes"`
}

type vacancyRecord struct {
	Org         string `json:"org"`
	WeightClass string `json:"weight_class"`
	Champion    string `json:"champion"`
	Date        string `json:"date"`
	Message     string `json:"message"`
}

type tournamentRecord struct {
	Year     int    `json:"year"`
	Winner   string `json:"winner"`
	RunnerUp string `json:"runner_up"`
}

// Logs bundles everything one derivation consumes.
type Logs struct {
	Events      []model.Event
	Vacancies   []model.Vacancy
	Tournaments []model.TournamentEdition
}

// Paths locates the source logs. Vacancies and Tournaments are optional.
type Paths struct {
	Events      string
	Vacancies   string
	Tournaments string
}

// Loader reads and decodes the source logs.
type Loader struct {
	logger logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a log loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads all configured logs. The event log is required; a missing
// vacancy or tournament log degrades to empty with a warning.
func (l *Loader) Load(ctx context.Context, paths Paths) (Logs, error) {
	var logs Logs

	events, err := l.Events(ctx, paths.Events)
	if err != nil {
		return Logs{}, err
	}
	logs.Events = events

	if paths.Vacancies != "" {
		logs.Vacancies, err = l.Vacancies(ctx, paths.Vacancies)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Logs{}, err
			}
			l.logger.Warn(ctx, "vacancy log missing, continuing without it",
				logger.String("path", paths.Vacancies))
		}
	}

	if paths.Tournaments != "" {
		logs.Tournaments, err = l.Tournaments(ctx, paths.Tournaments)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Logs{}, err
			}
			l.logger.Warn(ctx, "tournament log missing, continuing without it",
				logger.String("path", paths.Tournaments))
		}
	}

	return logs, nil
}

// Events reads the event log and returns dated cards in chronological
// order. Cards with unparseable dates are skipped.
func (l *Loader) Events(ctx context.Context, path string) ([]model.Event, error) {
	if path == "" {
		return nil, ErrMissingEventLog
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordIngestError()
		return nil, fmt.Errorf("reading event log: %w", err)
	}

	var records []eventRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		metrics.RecordIngestError()
		return nil, fmt.Errorf("decoding event log: %w", err)
	}

	// Exported logs occasionally repeat a whole card; keep the first copy.
	seen := dedupe.NewInMemoryDeduper()

	events := make([]model.Event, 0, len(records))
	for _, rec := range records {
		if seen.SeenAndRecord(ctx, rec.Name+"|"+rec.Date) {
			metrics.RecordIngestSkipped()
			l.logger.Warn(ctx, "skipping duplicate card",
				logger.String("event", rec.Name),
				logger.String("date", rec.Date),
			)
			continue
		}
		date, err := model.ParseDate(rec.Date)
		if err != nil {
			metrics.RecordIngestSkipped()
			l.logger.Warn(ctx, "skipping event with bad date",
				logger.String("event", rec.Name),
				logger.String("date", rec.Date),
			)
			continue
		}

		kind := model.KindPPV
		if rec.Kind == string(model.KindWeekly) {
			kind = model.KindWeekly
		}

		event := model.Event{
			Name: rec.Name,
			Date: date,
			Kind: kind,
		}
		for _, mr := range rec.Matches {
			match, ok := l.match(ctx, rec.Name, date, mr)
			if !ok {
				continue
			}
			event.Matches = append(event.Matches, match)
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (l *Loader) match(ctx context.Context, eventName string, eventDate time.Time, mr matchRecord) (model.Match, bool) {
	if mr.Fighter1 == "" || mr.Fighter2 == "" {
		metrics.RecordIngestSkipped()
		l.logger.Warn(ctx, "skipping match with missing fighter",
			logger.String("event", eventName))
		return model.Match{}, false
	}

	var result model.Result
	switch mr.Winner {
	case "":
		result = model.ResultDraw
	case mr.Fighter1:
		result = model.ResultWinA
	case mr.Fighter2:
		result = model.ResultWinB
	default:
		metrics.RecordIngestSkipped()
		l.logger.Warn(ctx, "skipping match with unknown winner",
			logger.String("event", eventName),
			logger.String("winner", mr.Winner),
		)
		return model.Match{}, false
	}

	return model.Match{
		FighterA:    model.Fighter{Name: mr.Fighter1, Country: country(mr.Country1)},
		FighterB:    model.Fighter{Name: mr.Fighter2, Country: country(mr.Country2)},
		WeightClass: mr.WeightClass,
		Method:      mr.Method,
		Falls:       mr.Falls,
		Result:      result,
		Notes:       mr.Notes,
		EventName:   eventName,
		EventDate:   eventDate,
	}, true
}

func country(c string) string {
	if c == "" {
		return "un"
	}
	return c
}

// Vacancies reads the vacancy log. Records with bad dates are skipped.
func (l *Loader) Vacancies(ctx context.Context, path string) ([]model.Vacancy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vacancy log: %w", err)
	}

	var records []vacancyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		metrics.RecordIngestError()
		return nil, fmt.Errorf("decoding vacancy log: %w", err)
	}

	out := make([]model.Vacancy, 0, len(records))
	for _, rec := range records {
		date, err := model.ParseDate(rec.Date)
		if err != nil {
			metrics.RecordIngestSkipped()
			l.logger.Warn(ctx, "skipping vacancy with bad date",
				logger.String("champion", rec.Champion),
				logger.String("date", rec.Date),
			)
			continue
		}
		out = append(out, model.Vacancy{
			Org:         model.Org(rec.Org),
			WeightClass: model.WeightClass(rec.WeightClass),
			Champion:    rec.Champion,
			Date:        date,
			Message:     rec.Message,
		})
	}
	return out, nil
}

// Tournaments reads the Open Tournament edition log.
func (l *Loader) Tournaments(ctx context.Context, path string) ([]model.TournamentEdition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tournament log: %w", err)
	}

	var records []tournamentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		metrics.RecordIngestError()
		return nil, fmt.Errorf("decoding tournament log: %w", err)
	}

	out := make([]model.TournamentEdition, 0, len(records))
	for _, rec := range records {
		if rec.Year == 0 || rec.Winner == "" {
			metrics.RecordIngestSkipped()
			l.logger.Warn(ctx, "skipping tournament edition with missing fields",
				logger.Int("year", rec.Year))
			continue
		}
		out = append(out, model.TournamentEdition{
			Year:     rec.Year,
			Winner:   rec.Winner,
			RunnerUp: rec.RunnerUp,
		})
	}
	return out, nil
}
