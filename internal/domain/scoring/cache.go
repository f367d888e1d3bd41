// Package scoring computes opponent ratings and WOTY/GOAT scores from a
// replayed ledger. All lookups go through a Caches value built once per
// derivation; nothing in this package holds module-level state.
package scoring

import (
	"sort"
	"strings"

	"github.com/squaredcircle/ringledger/internal/domain/ledger"
	"github.com/squaredcircle/ringledger/internal/domain/model"
)

// reignPos locates one reign inside its title line.
type reignPos struct {
	line *model.TitleLine
	idx  int
}

// Caches precomputes the per-wrestler lookups the scoring formulas hammer
// on: reign positions, champion years, gender divisions and Open wins.
type Caches struct {
	led *ledger.Ledger

	reigns     map[string][]reignPos
	champYears map[string]map[int]bool
	women      map[string]bool

	openWins map[string][]int
	editions map[int]model.TournamentEdition
}

// BuildCaches walks the ledger once and indexes everything scoring needs.
func BuildCaches(led *ledger.Ledger, tournaments []model.TournamentEdition) *Caches {
	c := &Caches{
		led:        led,
		reigns:     make(map[string][]reignPos),
		champYears: make(map[string]map[int]bool),
		women:      make(map[string]bool),
		openWins:   make(map[string][]int),
		editions:   make(map[int]model.TournamentEdition),
	}

	for _, line := range led.Lines() {
		for i, reign := range line.Reigns {
			c.reigns[reign.Champion] = append(c.reigns[reign.Champion], reignPos{line: line, idx: i})

			start := reign.StartDate.Year()
			days := reign.Days
			if days < 0 {
				days = 0
			}
			years := c.champYears[reign.Champion]
			if years == nil {
				years = make(map[int]bool)
				c.champYears[reign.Champion] = years
			}
			for y := start; y <= start+days/365; y++ {
				years[y] = true
			}
		}
	}

	// A wrestler who fought at least once in the light divisions belongs
	// to the women's rankings.
	for _, w := range led.Wrestlers() {
		for _, bout := range w.Bouts {
			wc := strings.ToLower(bout.WeightClass)
			if strings.Contains(wc, "lightweight") || strings.Contains(wc, "featherweight") {
				c.women[w.Name] = true
				break
			}
		}
	}

	for _, ed := range tournaments {
		if ed.Winner == "" {
			continue
		}
		c.editions[ed.Year] = ed
		c.openWins[ed.Winner] = append(c.openWins[ed.Winner], ed.Year)
	}
	for name := range c.openWins {
		sort.Ints(c.openWins[name])
	}

	return c
}

// Ledger returns the replayed ledger the caches were built from.
func (c *Caches) Ledger() *ledger.Ledger {
	return c.led
}

// CumulativeRecord returns wins, losses and draws through upToYear.
func (c *Caches) CumulativeRecord(name string, upToYear int) (wins, losses, draws int) {
	w := c.led.Wrestler(name)
	if w == nil {
		return 0, 0, 0
	}
	for _, bout := range w.Bouts {
		if bout.Year > upToYear {
			break
		}
		switch bout.Outcome {
		case model.OutcomeWin:
			wins++
		case model.OutcomeLoss:
			losses++
		case model.OutcomeDraw:
			draws++
		}
	}
	return wins, losses, draws
}

// WasChampionBy reports whether name held any title in or before year.
func (c *Caches) WasChampionBy(name string, year int) bool {
	for y := range c.champYears[name] {
		if y <= year {
			return true
		}
	}
	return false
}

// HeldChampYear reports whether name held any title during year.
func (c *Caches) HeldChampYear(name string, year int) bool {
	return c.champYears[name][year]
}

// ReignsOf yields each reign of name together with its title line and
// position, in line order.
func (c *Caches) ReignsOf(name string) []ReignEntry {
	positions := c.reigns[name]
	out := make([]ReignEntry, 0, len(positions))
	for _, p := range positions {
		out = append(out, ReignEntry{
			Line:  p.line,
			Index: p.idx,
			Reign: p.line.Reigns[p.idx],
		})
	}
	return out
}

// ReignEntry is one reign with enough context to resolve its end year.
type ReignEntry struct {
	Line  *model.TitleLine
	Index int
	Reign *model.Reign
}

// Last reports whether this is the newest reign on its line.
func (e ReignEntry) Last() bool {
	return e.Index == len(e.Line.Reigns)-1
}

// EndYear returns the year the reign ended: the next reign's start year,
// the vacancy year, or farFuture for a still-open reign.
func (e ReignEntry) EndYear() int {
	if !e.Last() {
		return e.Line.Reigns[e.Index+1].StartDate.Year()
	}
	if e.Reign.Vacated() {
		return e.Reign.VacancyDate.Year()
	}
	return farFuture
}

const farFuture = 9999

// IsWoman reports whether name ranks in the women's division.
func (c *Caches) IsWoman(name string) bool {
	return c.women[name]
}

// Men returns the men's division roster, sorted by name.
func (c *Caches) Men() []string {
	var out []string
	for _, w := range c.led.Wrestlers() {
		if !c.women[w.Name] {
			out = append(out, w.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Women returns the women's division roster, sorted by name.
func (c *Caches) Women() []string {
	var out []string
	for _, w := range c.led.Wrestlers() {
		if c.women[w.Name] {
			out = append(out, w.Name)
		}
	}
	sort.Strings(out)
	return out
}

// OpenWins returns the years name won the Open Tournament, ascending.
func (c *Caches) OpenWins(name string) []int {
	return c.openWins[name]
}

// WonOpen reports whether name won the Open Tournament in year.
func (c *Caches) WonOpen(name string, year int) bool {
	for _, y := range c.openWins[name] {
		if y == year {
			return true
		}
	}
	return false
}

// Edition returns the Open Tournament edition for year, if recorded.
func (c *Caches) Edition(year int) (model.TournamentEdition, bool) {
	ed, ok := c.editions[year]
	return ed, ok
}

// Years returns every year with at least one dated event, ascending.
func (c *Caches) Years() []int {
	return c.led.Years()
}

// CurrentYear returns the newest event year, or 0 for an empty ledger.
func (c *Caches) CurrentYear() int {
	years := c.led.Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}

// LastFightYear returns the year of name's most recent bout.
func (c *Caches) LastFightYear(name string) int {
	w := c.led.Wrestler(name)
	if w == nil || len(w.Bouts) == 0 {
		return 0
	}
	return w.Bouts[len(w.Bouts)-1].Year
}
