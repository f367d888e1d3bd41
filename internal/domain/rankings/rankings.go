// Package rankings builds the yearly pound-for-pound tables and the
// all-time GOAT lists from a scored ledger.
package rankings

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/internal/domain/scoring"
	"github.com/squaredcircle/ringledger/pkg/logger"
	"github.com/squaredcircle/ringledger/pkg/metrics"
)

// Division separates the men's and women's tables.
type Division string

const (
	DivisionMen   Division = "men"
	DivisionWomen Division = "women"
)

// Divisions returns both divisions in canonical order.
func Divisions() []Division {
	return []Division{DivisionMen, DivisionWomen}
}

// Default builder configuration constants.
const (
	defaultMinBouts       = 3
	defaultMinWins        = 2
	defaultActivityWindow = 2
	defaultTopN           = 10
	defaultGOATTopN       = 25
	defaultWOTYCap        = 5
	defaultMenStart       = 1963
	defaultWomenStart     = 1968
	defaultWorkers        = 4
	defaultFatigueCap     = 5

	// A capped wrestler is slotted just under second place.
	demotionEpsilon = 0.0001
)

// Entry is one row of a ranking table.
type Entry struct {
	Rank          int      `json:"rank"`
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	Score         float64  `json:"score"`
	CareerRecord  string   `json:"career_record"`
	YearRecord    string   `json:"year_record,omitempty"`
	PrimaryWeight string   `json:"primary_weight,omitempty"`
	Titles        []string `json:"titles,omitempty"`
}

// Tables holds every computed ranking list for one derivation.
type Tables struct {
	Yearly map[Division]map[int][]Entry
	GOAT   map[Division][]Entry
}

// Builder computes ranking tables. Configure with options; zero values fall
// back to the production defaults.
type Builder struct {
	caches *scoring.Caches
	engine *scoring.Engine
	logger logger.Logger

	minBouts       int
	minWins        int
	activityWindow int
	topN           int
	goatTopN       int
	wotyCap        int
	menStart       int
	womenStart     int
	workers        int

	voterFatigue bool
	fatigueCap   int
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithEngine sets the scoring engine. Defaults to one with default params.
func WithEngine(e *scoring.Engine) Option {
	return func(b *Builder) {
		if e != nil {
			b.engine = e
		}
	}
}

// WithLogger sets the builder's logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithEligibility overrides the career minimums for a yearly table.
func WithEligibility(minBouts, minWins int) Option {
	return func(b *Builder) {
		if minBouts > 0 {
			b.minBouts = minBouts
		}
		if minWins > 0 {
			b.minWins = minWins
		}
	}
}

// WithActivityWindow sets how many years back a last fight still counts
// as active.
func WithActivityWindow(years int) Option {
	return func(b *Builder) {
		if years > 0 {
			b.activityWindow = years
		}
	}
}

// WithTopN sets the yearly table depth.
func WithTopN(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.topN = n
		}
	}
}

// WithGOATTopN sets the all-time list depth.
func WithGOATTopN(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.goatTopN = n
		}
	}
}

// WithWOTYCap sets how many times one wrestler may finish first.
func WithWOTYCap(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.wotyCap = n
		}
	}
}

// WithStartYears sets the first ranked year per division.
func WithStartYears(men, women int) Option {
	return func(b *Builder) {
		if men > 0 {
			b.menStart = men
		}
		if women > 0 {
			b.womenStart = women
		}
	}
}

// WithWorkers bounds the scoring fan-out pool.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithVoterFatigue enables diminished GOAT credit for top-3 finishes
// beyond cap.
func WithVoterFatigue(enabled bool, capYears int) Option {
	return func(b *Builder) {
		b.voterFatigue = enabled
		if capYears > 0 {
			b.fatigueCap = capYears
		}
	}
}

// NewBuilder creates a ranking builder over prebuilt caches.
func NewBuilder(caches *scoring.Caches, opts ...Option) *Builder {
	b := &Builder{
		caches:         caches,
		logger:         logger.Nop(),
		minBouts:       defaultMinBouts,
		minWins:        defaultMinWins,
		activityWindow: defaultActivityWindow,
		topN:           defaultTopN,
		goatTopN:       defaultGOATTopN,
		wotyCap:        defaultWOTYCap,
		menStart:       defaultMenStart,
		womenStart:     defaultWomenStart,
		workers:        defaultWorkers,
		fatigueCap:     defaultFatigueCap,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.engine == nil {
		b.engine = scoring.NewEngine(caches)
	}
	return b
}

// Build computes every yearly table and both GOAT lists.
func (b *Builder) Build(ctx context.Context) *Tables {
	started := time.Now()
	defer func() {
		metrics.RecordRankingBuildDuration(float64(time.Since(started).Milliseconds()))
	}()
	metrics.UpdateWorkerCount(b.workers)

	tables := &Tables{
		Yearly: make(map[Division]map[int][]Entry),
		GOAT:   make(map[Division][]Entry),
	}

	for _, div := range Divisions() {
		tables.Yearly[div] = b.buildYearly(ctx, div)
	}
	for _, div := range Divisions() {
		tables.GOAT[div] = b.buildGOAT(ctx, div, tables.Yearly[div])
	}

	b.logger.Info(ctx, "ranking tables built",
		logger.Int("men_years", len(tables.Yearly[DivisionMen])),
		logger.Int("women_years", len(tables.Yearly[DivisionWomen])),
		logger.Duration("took", time.Since(started)),
	)
	return tables
}

// buildYearly walks years oldest first so the running first-place counts
// feed the cap demotion of later years.
func (b *Builder) buildYearly(ctx context.Context, div Division) map[int][]Entry {
	roster := b.roster(div)
	start := b.startYear(div)
	wotyCount := make(map[string]int)
	out := make(map[int][]Entry)

	for _, year := range b.caches.Years() {
		if year < start {
			continue
		}
		entries := b.rankYear(ctx, year, roster, wotyCount)
		if len(entries) == 0 {
			continue
		}
		out[year] = entries
		wotyCount[entries[0].Name]++
	}
	return out
}

func (b *Builder) roster(div Division) []string {
	if div == DivisionWomen {
		return b.caches.Women()
	}
	return b.caches.Men()
}

func (b *Builder) startYear(div Division) int {
	if div == DivisionWomen {
		return b.womenStart
	}
	return b.menStart
}

// rankYear scores every eligible wrestler for one year and returns the
// top-N table, applying the first-place cap.
func (b *Builder) rankYear(ctx context.Context, year int, roster []string, wotyCount map[string]int) []Entry {
	var candidates []string
	for _, name := range roster {
		if b.eligible(name, year) {
			candidates = append(candidates, name)
		}
	}

	scores := b.scoreAll(ctx, candidates, year)

	var entries []Entry
	for _, name := range candidates {
		score := scores[name]
		if score <= 0 {
			continue
		}
		entries = append(entries, b.entry(name, year, score))
	}
	sortEntries(entries)

	// Cap: a wrestler who has already finished first the maximum number
	// of times is slotted just under second place.
	if len(entries) >= 2 && wotyCount[entries[0].Name] >= b.wotyCap {
		entries[0].Score = entries[1].Score - demotionEpsilon
		sortEntries(entries)
	}

	if len(entries) > b.topN {
		entries = entries[:b.topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// eligible applies the yearly table gate: featured on a canonical card,
// active within the window, and past the career minimums. Winning the
// Open that year bypasses all three minimums, the activity window
// included.
func (b *Builder) eligible(name string, year int) bool {
	w := b.caches.Ledger().Wrestler(name)
	if w == nil || !w.Featured {
		return false
	}
	if b.caches.WonOpen(name, year) {
		return true
	}
	wins, losses, draws := b.caches.CumulativeRecord(name, year)
	total := wins + losses + draws
	if total == 0 || total < b.minBouts {
		return false
	}
	if b.caches.LastFightYear(name) < year-b.activityWindow {
		return false
	}
	return wins >= b.minWins
}

// scoreAll fans the yearly score computation out over a bounded pool.
// Wrestlers are independent once the replay has finished.
func (b *Builder) scoreAll(ctx context.Context, names []string, year int) map[string]float64 {
	type scored struct {
		name  string
		score float64
	}

	jobs := make(chan string)
	results := make(chan scored, len(names))

	workers := b.workers
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- scored{name: name, score: b.engine.WOTYScore(name, year)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, name := range names {
			select {
			case jobs <- name:
			case <-ctx.Done():
				metrics.RecordRankingError()
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	out := make(map[string]float64, len(names))
	for s := range results {
		out[s.name] = s.score
	}
	return out
}

// entry assembles the display row for one ranked wrestler.
func (b *Builder) entry(name string, year int, score float64) Entry {
	w := b.caches.Ledger().Wrestler(name)

	cw, cl, cd := b.caches.CumulativeRecord(name, year)

	yw, yl, yd := 0, 0, 0
	wcCount := make(map[string]int)
	fought := false
	for _, bout := range w.Bouts {
		if bout.Year > year {
			break
		}
		wc := bout.WeightClass
		if wc == "" {
			wc = "Unknown"
		}
		wcCount[wc]++
		if bout.Year != year {
			continue
		}
		fought = true
		switch bout.Outcome {
		case model.OutcomeWin:
			yw++
		case model.OutcomeLoss:
			yl++
		case model.OutcomeDraw:
			yd++
		}
	}

	yearRecord := ""
	if fought {
		yearRecord = fmt.Sprintf("%d-%d-%d", yw, yl, yd)
	}

	primary := ""
	for wc, n := range wcCount {
		if primary == "" || n > wcCount[primary] || (n == wcCount[primary] && wc < primary) {
			primary = wc
		}
	}

	return Entry{
		Name:          name,
		Country:       w.Country,
		Score:         score,
		CareerRecord:  fmt.Sprintf("%d-%d-%d", cw, cl, cd),
		YearRecord:    yearRecord,
		PrimaryWeight: primary,
		Titles:        b.TitlesAtYear(name, year),
	}
}

// buildGOAT ranks the division all-time. The yearly tables feed the voter
// fatigue adjustment when it is enabled.
func (b *Builder) buildGOAT(ctx context.Context, div Division, yearly map[int][]Entry) []Entry {
	currentYear := b.caches.CurrentYear()
	if currentYear == 0 {
		return nil
	}

	var candidates []string
	for _, name := range b.roster(div) {
		w := b.caches.Ledger().Wrestler(name)
		if w == nil || !w.Featured {
			continue
		}
		if w.TotalBouts() < b.minBouts || w.Wins < b.minWins {
			continue
		}
		candidates = append(candidates, name)
	}

	var topThree map[string]int
	if b.voterFatigue {
		topThree = countTopThree(yearly)
	}

	var entries []Entry
	for _, name := range candidates {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		score := b.engine.GOATScore(name, currentYear)
		if b.voterFatigue {
			score = fatigueAdjusted(score, topThree[name], b.fatigueCap)
		}
		if score <= 0 {
			continue
		}
		w := b.caches.Ledger().Wrestler(name)
		entries = append(entries, Entry{
			Name:         name,
			Country:      w.Country,
			Score:        score,
			CareerRecord: fmt.Sprintf("%d-%d-%d", w.Wins, w.Losses, w.Draws),
			Titles:       b.CareerTitles(name),
		})
	}
	sortEntries(entries)
	if len(entries) > b.goatTopN {
		entries = entries[:b.goatTopN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// countTopThree tallies top-3 yearly finishes per wrestler.
func countTopThree(yearly map[int][]Entry) map[string]int {
	out := make(map[string]int)
	for _, entries := range yearly {
		for _, e := range entries {
			if e.Rank <= 3 {
				out[e.Name]++
			}
		}
	}
	return out
}

// fatigueAdjusted scales a GOAT score so peak years beyond the cap count
// at half weight.
func fatigueAdjusted(score float64, topThreeYears, capYears int) float64 {
	if topThreeYears <= capYears || topThreeYears == 0 {
		return score
	}
	full := float64(capYears)
	extra := float64(topThreeYears - capYears)
	return score * (full + 0.5*extra) / float64(topThreeYears)
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
}

// TitlesAtYear lists the belts name held during year, plus an Open
// Tournament win that year.
func (b *Builder) TitlesAtYear(name string, year int) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, entry := range b.caches.ReignsOf(name) {
		start := entry.Reign.StartDate.Year()
		if start > year {
			continue
		}
		if entry.EndYear() < year {
			continue
		}
		label := titleLabel(entry.Line.Key)
		if !seen[label] {
			seen[label] = true
			titles = append(titles, label)
		}
	}
	if b.caches.WonOpen(name, year) {
		titles = append(titles, "The Open")
	}
	return titles
}

// CareerTitles lists every belt name has held, with reign counts, plus
// Open Tournament wins with their years.
func (b *Builder) CareerTitles(name string) []string {
	counts := make(map[string]int)
	var order []string
	for _, entry := range b.caches.ReignsOf(name) {
		label := titleLabel(entry.Line.Key)
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	var titles []string
	for _, label := range order {
		if counts[label] > 1 {
			label = fmt.Sprintf("%s (%dx)", label, counts[label])
		}
		titles = append(titles, label)
	}

	if wins := b.caches.OpenWins(name); len(wins) > 0 {
		parts := make([]string, len(wins))
		for i, y := range wins {
			parts[i] = fmt.Sprintf("%d", y)
		}
		titles = append(titles, fmt.Sprintf("The Open (%s)", strings.Join(parts, ", ")))
	}
	return titles
}

func titleLabel(key model.LineKey) string {
	weight := string(key.Weight)
	if weight != "" {
		weight = strings.ToUpper(weight[:1]) + weight[1:]
	}
	return key.Org.Label() + " " + weight
}
