package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/pkg/metrics"
)

// Engine evaluates the WOTY and GOAT formulas against a Caches value.
type Engine struct {
	caches *Caches
	params Params
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithParams overrides the default scoring constants.
func WithParams(p Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// NewEngine creates a scoring engine over prebuilt caches.
func NewEngine(caches *Caches, opts ...Option) *Engine {
	e := &Engine{
		caches: caches,
		params: DefaultParams(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns the engine's scoring constants.
func (e *Engine) Params() Params {
	return e.params
}

// cleanFinish reports whether the method is a decisive pinfall or
// submission win worth the finish multiplier.
func cleanFinish(method string) bool {
	m := strings.ToLower(method)
	return strings.Contains(m, "pinfall") || strings.Contains(m, "submission")
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// GOATScore computes the all-time score for name using every bout through
// rankingYear. No recency or activity adjustments apply; a long career is
// the argument, not a liability.
func (e *Engine) GOATScore(name string, rankingYear int) float64 {
	started := time.Now()
	defer func() {
		metrics.RecordScoringLatency(float64(time.Since(started).Microseconds()) / 1000.0)
	}()

	c := e.caches
	p := e.params

	w := c.led.Wrestler(name)
	if w == nil {
		return 0
	}

	var toDate []model.Bout
	for _, bout := range w.Bouts {
		if bout.Year <= rankingYear {
			toDate = append(toDate, bout)
		}
	}
	if len(toDate) == 0 {
		return 0
	}

	// Quality wins: average opponent rating across career wins, finish
	// multiplier applied, normalized against a capped win count so volume
	// helps but cannot dilute.
	var qwTotal float64
	qwWins := 0
	for _, bout := range toDate {
		if bout.Outcome != model.OutcomeWin {
			continue
		}
		base := c.Rating(bout.Opponent, bout.Year)
		mult := 1.0
		if cleanFinish(bout.Method) {
			mult = p.FinishMultiplier
		}
		qwTotal += base * mult
		qwWins++
	}
	norm := max(qwWins, 1)
	if norm > p.GOATMaxWins {
		norm = p.GOATMaxWins
	}
	qualityScore := min(qwTotal/(100*float64(norm)), 1.0) * 100

	wins, losses, draws := 0, 0, 0
	streak, cur := 0, 0
	for _, bout := range toDate {
		switch bout.Outcome {
		case model.OutcomeWin:
			wins++
			cur++
			if cur > streak {
				streak = cur
			}
		case model.OutcomeLoss:
			losses++
			cur = 0
		case model.OutcomeDraw:
			draws++
			cur = 0
		}
	}
	total := float64(wins) + float64(losses) + 0.5*float64(draws)
	winPct := 0.0
	if total > 0 {
		winPct = float64(wins) / total
	}

	maxDef := 0
	for _, entry := range c.ReignsOf(name) {
		start := entry.Reign.StartDate.Year()
		if start > rankingYear {
			continue
		}
		if entry.Reign.Defenses > maxDef {
			maxDef = entry.Reign.Defenses
		}
	}
	dominanceScore := min(winPct*70+min(float64(streak)*2, 20)+min(float64(maxDef)*5, 30), 100)

	titlePts := 0.0
	totalDays, longest := 0, 0
	isCurrentChamp := false
	for _, entry := range c.ReignsOf(name) {
		if entry.Last() && !entry.Reign.Vacated() {
			isCurrentChamp = true
		}
		start := entry.Reign.StartDate.Year()
		if start > rankingYear {
			continue
		}
		titlePts += reignTitlePoints(entry.Line.Key.Org)
		days := entry.Reign.Days
		if days < 0 {
			days = 0
		}
		totalDays += days
		if days > longest {
			longest = days
		}
	}
	championshipScore := min(titlePts, 85)
	if isCurrentChamp {
		championshipScore += 20
	}
	championshipScore += min(float64(totalDays)/365, 3)*10 + min(float64(longest)/365, 2)*5
	championshipScore = min(championshipScore, 100)

	openWins := 0
	for _, y := range c.OpenWins(name) {
		if y <= rankingYear {
			openWins++
		}
	}
	openBonus := min(float64(openWins)*p.OpenWinGOATPoints, p.OpenWinGOATPoints*float64(p.OpenWinGOATCap))
	championshipScore = min(championshipScore+openBonus, 100)

	mainEventScore := min(float64(w.MainEvents)*20, 100)

	return round4(qualityScore*p.GOATQualityWeight +
		dominanceScore*p.GOATDominanceWeight +
		championshipScore*p.GOATChampionshipWeight +
		mainEventScore*p.GOATMainEventWeight)
}

// reignTitlePoints is the prestige value of one reign by sanctioning body.
func reignTitlePoints(org model.Org) float64 {
	switch {
	case org == model.OrgRing:
		return 25
	case org.Major():
		return 30
	default:
		return 10
	}
}

// WOTYScore computes the yearly score for name: mostly what they did in
// rankingYear, with career prestige as a tiebreaker and an Open Tournament
// bonus. Entering the year as champion and defending outweighs winning a
// belt mid-year.
func (e *Engine) WOTYScore(name string, rankingYear int) float64 {
	started := time.Now()
	defer func() {
		metrics.RecordScoringLatency(float64(time.Since(started).Microseconds()) / 1000.0)
	}()

	c := e.caches
	p := e.params

	w := c.led.Wrestler(name)
	if w == nil {
		return 0
	}

	var toDate, thisYear []model.Bout
	for _, bout := range w.Bouts {
		if bout.Year <= rankingYear {
			toDate = append(toDate, bout)
		}
		if bout.Year == rankingYear {
			thisYear = append(thisYear, bout)
		}
	}
	if len(toDate) == 0 {
		return 0
	}

	yrWins, yrLosses, yrDraws := 0, 0, 0
	for _, bout := range thisYear {
		switch bout.Outcome {
		case model.OutcomeWin:
			yrWins++
		case model.OutcomeLoss:
			yrLosses++
		case model.OutcomeDraw:
			yrDraws++
		}
	}
	yrTotal := yrWins + yrLosses + yrDraws

	// Titles held during the year, split by whether the reign predates it.
	titlesHeld, titlesEntering := 0, 0
	titlePtsYr := 0.0
	var champWinDates []time.Time
	for _, entry := range c.ReignsOf(name) {
		start := entry.Reign.StartDate.Year()
		if start > rankingYear {
			continue
		}
		champWinDates = append(champWinDates, entry.Reign.StartDate)
		if entry.EndYear() < rankingYear {
			continue
		}
		titlesHeld++
		if start < rankingYear {
			titlesEntering++
		}
		titlePtsYr += max(30-float64(titlesHeld-1)*10, 10)
	}
	titlePtsYr = min(titlePtsYr, 80)
	heldTitle := titlesHeld > 0
	enteredAsChamp := titlesEntering > 0

	// A win is a defense when some title win predates the match.
	defensesThisYr := 0
	for _, bout := range thisYear {
		if bout.Outcome != model.OutcomeWin {
			continue
		}
		for _, cd := range champWinDates {
			if cd.Before(bout.Date) {
				defensesThisYr++
				break
			}
		}
	}

	// Quality: wins with finish, head-to-head and defending-champion
	// multipliers; draws at partial credit.
	var qw, qwCount float64
	for _, bout := range thisYear {
		switch bout.Outcome {
		case model.OutcomeWin:
			base := c.Rating(bout.Opponent, bout.Year)
			mult := 1.0
			if cleanFinish(bout.Method) {
				mult = p.FinishMultiplier
			}
			h2h := 1.0
			if c.topCalibre(bout.Opponent, bout.Year) {
				h2h = p.H2HMultiplier
			}
			defMult := 1.0
			if enteredAsChamp {
				defMult = p.EnteringChampMultiplier
			}
			qw += base * mult * h2h * defMult
			qwCount++
		case model.OutcomeDraw:
			qw += c.Rating(bout.Opponent, bout.Year) * p.DrawCredit
			qwCount += p.DrawCredit
		}
	}
	norm := max(min(qwCount, p.WOTYMaxWins), 1)
	qualityScore := min(qw/(100*norm), 1.0) * 100
	qualityScore = min(qualityScore+titlePtsYr*0.3, 100)

	yrWinPct := 0.0
	if yrTotal > 0 {
		yrWinPct = float64(yrWins) / float64(yrTotal)
	}
	dominanceScore := yrWinPct*30 +
		min(float64(titlesEntering)*20, 40) +
		min(float64(defensesThisYr)*10, 50) +
		float64(titlesHeld)*3
	if heldTitle && !enteredAsChamp {
		dominanceScore += 10
	}
	dominanceScore = min(dominanceScore, 100)

	foughtChamp := false
	for _, bout := range thisYear {
		if c.Rating(bout.Opponent, bout.Year) >= 80 {
			foughtChamp = true
			break
		}
	}
	activityScore := float64(yrTotal) * 10
	if foughtChamp {
		activityScore += 25
	}
	if yrDraws > 0 {
		activityScore += 15
	}
	activityScore = min(activityScore, 100)

	yearScore := qualityScore*p.YearQualityWeight +
		dominanceScore*p.YearDominanceWeight +
		activityScore*p.YearActivityWeight

	// Career prestige tiebreaker.
	cpTitlePts := 0.0
	cpDays, cpLongest := 0, 0
	for _, entry := range c.ReignsOf(name) {
		start := entry.Reign.StartDate.Year()
		if start > rankingYear {
			continue
		}
		cpTitlePts += reignTitlePoints(entry.Line.Key.Org)
		days := entry.Reign.Days
		if days < 0 {
			days = 0
		}
		cpDays += days
		if days > cpLongest {
			cpLongest = days
		}
	}
	careerPrestige := min(min(cpTitlePts, 70)+
		min(float64(cpDays)/365, 3)*8+
		min(float64(cpLongest)/365, 2)*4, 100)

	wonOpen := c.WonOpen(name, rankingYear)
	openBonus := 0.0
	if wonOpen {
		openBonus = p.OpenWinYearlyBonus
	}

	raw := yearScore*p.YearWeight + careerPrestige*p.PrestigeWeight + openBonus

	// Inactive wrestlers coast on a decaying fraction of their prestige.
	if len(thisYear) == 0 && !wonOpen {
		inactive := rankingYear - c.LastFightYear(name)
		if inactive < 0 {
			inactive = 0
		}
		raw *= max(1.0-float64(inactive)*p.InactivityDecayPerYear, p.InactivityFloor)
	}

	return round4(raw)
}
