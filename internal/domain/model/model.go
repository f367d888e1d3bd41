// Package model contains domain models passed between layers.
package model

import "time"

// Org identifies a sanctioning organization whose titles are tracked.
type Org string

// Known organizations. The Ring is a magazine belt, not a major org.
const (
	OrgWWF  Org = "wwf"
	OrgWWO  Org = "wwo"
	OrgIWB  Org = "iwb"
	OrgRing Org = "ring"
)

// Orgs returns all tracked organizations in canonical order.
func Orgs() []Org {
	return []Org{OrgWWF, OrgWWO, OrgIWB, OrgRing}
}

// Major reports whether the org counts as a major world title.
func (o Org) Major() bool {
	return o == OrgWWF || o == OrgWWO || o == OrgIWB
}

// Label returns the display name for the org.
func (o Org) Label() string {
	switch o {
	case OrgWWF:
		return "WWF"
	case OrgWWO:
		return "WWO"
	case OrgIWB:
		return "IWB"
	case OrgRing:
		return "The Ring"
	default:
		return string(o)
	}
}

// WeightClass identifies one of the six tracked divisions.
type WeightClass string

const (
	Heavyweight   WeightClass = "heavyweight"
	Bridgerweight WeightClass = "bridgerweight"
	Middleweight  WeightClass = "middleweight"
	Welterweight  WeightClass = "welterweight"
	Lightweight   WeightClass = "lightweight"
	Featherweight WeightClass = "featherweight"
)

// WeightClasses returns all divisions ordered heaviest first.
func WeightClasses() []WeightClass {
	return []WeightClass{Heavyweight, Bridgerweight, Middleweight,
		Welterweight, Lightweight, Featherweight}
}

// Result is the outcome of a match from fighter A's corner.
type Result int

const (
	ResultWinA Result = iota
	ResultWinB
	ResultDraw
)

// Fighter is one side of a match.
type Fighter struct {
	Name    string
	Country string // ISO-ish flag code, "un" when unknown
}

// Match is an immutable fact produced by the ingestion layer.
type Match struct {
	FighterA    Fighter
	FighterB    Fighter
	WeightClass string // free text as ingested, classified later
	Method      string // free text: Pinfall, Submission, Count Out, ...
	Falls       string
	Result      Result
	Notes       string // free text, may carry title annotations
	EventName   string
	EventDate   time.Time
}

// Winner returns the winning fighter, or false for a draw.
func (m Match) Winner() (Fighter, bool) {
	switch m.Result {
	case ResultWinA:
		return m.FighterA, true
	case ResultWinB:
		return m.FighterB, true
	default:
		return Fighter{}, false
	}
}

// Loser returns the losing fighter, or false for a draw.
func (m Match) Loser() (Fighter, bool) {
	switch m.Result {
	case ResultWinA:
		return m.FighterB, true
	case ResultWinB:
		return m.FighterA, true
	default:
		return Fighter{}, false
	}
}

// Opponent returns the fighter facing name. If name is not in the match,
// fighter B is returned.
func (m Match) Opponent(name string) Fighter {
	if m.FighterB.Name == name {
		return m.FighterA
	}
	return m.FighterB
}

// EventKind separates canonical cards from weekly television.
type EventKind string

const (
	KindPPV    EventKind = "ppv"
	KindWeekly EventKind = "weekly"
)

// Event is one card of matches on a single date.
type Event struct {
	Name    string
	Date    time.Time
	Kind    EventKind
	Matches []Match
}

// Vacancy is an administrative annotation closing a reign without a match.
type Vacancy struct {
	Org         Org
	WeightClass WeightClass
	Champion    string
	Date        time.Time
	Message     string
}

// DaysPending marks a reign whose duration has not been resolved yet.
const DaysPending = -1

// Reign is one continuous holding of a title line by one champion.
type Reign struct {
	Champion   string
	Country    string
	StartDate  time.Time
	StartEvent string
	Defenses   int
	Days       int // DaysPending until the duration pass runs
	Notes      string

	// Set only when the reign ended by administrative vacancy.
	VacancyDate    time.Time
	VacancyMessage string
}

// Vacated reports whether the reign ended by administrative vacancy.
func (r *Reign) Vacated() bool {
	return !r.VacancyDate.IsZero()
}

// LineKey identifies a title line.
type LineKey struct {
	Org    Org
	Weight WeightClass
}

// TitleLine owns the ordered, append-only reign history for one belt.
type TitleLine struct {
	Key    LineKey
	Reigns []*Reign
}

// CurrentReign returns the open reign, or nil if the line is empty or the
// last reign was vacated.
func (l *TitleLine) CurrentReign() *Reign {
	if len(l.Reigns) == 0 {
		return nil
	}
	last := l.Reigns[len(l.Reigns)-1]
	if last.Vacated() {
		return nil
	}
	return last
}

// Outcome is a match result from one wrestler's perspective.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeLoss
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "Win"
	case OutcomeLoss:
		return "Loss"
	default:
		return "Draw"
	}
}

// Bout is one entry in a wrestler's chronological record.
type Bout struct {
	Date        time.Time
	Year        int
	Outcome     Outcome
	Method      string
	Opponent    string
	Event       string
	WeightClass string // free text as ingested
}

// ReignRef points from a wrestler to one of their reigns.
type ReignRef struct {
	Org    Org
	Weight WeightClass
	Start  time.Time
}

// WrestlerRecord aggregates everything the scoring engine reads about one
// wrestler. Built by the ledger replayer, read-only afterwards.
type WrestlerRecord struct {
	Name    string
	Country string

	Wins   int
	Losses int
	Draws  int

	PinfallWins      int
	SubmissionWins   int
	DecisionWins     int
	PinfallLosses    int
	SubmissionLosses int
	DecisionLosses   int

	MainEvents int
	Featured   bool // appeared on at least one PPV card

	Bouts  []Bout // chronological
	Reigns []ReignRef
}

// TotalBouts returns career wins + losses + draws.
func (w *WrestlerRecord) TotalBouts() int {
	return w.Wins + w.Losses + w.Draws
}

// LongestStreaks walks the chronological record and returns the longest
// unbroken win run and loss run. A draw breaks both.
func (w *WrestlerRecord) LongestStreaks() (wins, losses int) {
	curWins, curLosses := 0, 0
	for _, bout := range w.Bouts {
		switch bout.Outcome {
		case OutcomeWin:
			curWins++
			curLosses = 0
		case OutcomeLoss:
			curLosses++
			curWins = 0
		default:
			curWins, curLosses = 0, 0
		}
		if curWins > wins {
			wins = curWins
		}
		if curLosses > losses {
			losses = curLosses
		}
	}
	return wins, losses
}

// TournamentEdition is one year of the annual Open Tournament.
type TournamentEdition struct {
	Year     int
	Winner   string
	RunnerUp string
}
