package ledger

import (
	"sort"

	"github.com/squaredcircle/ringledger/internal/domain/model"
)

// ChampionTotal aggregates one champion's history within a single line.
type ChampionTotal struct {
	Champion string
	Country  string
	Reigns   int
	Days     int
	Defenses int
}

// LineTotals sums reigns, days, and defenses per champion for one title
// line, ordered by total days held descending.
func (l *Ledger) LineTotals(key model.LineKey) []ChampionTotal {
	line, ok := l.lines[key]
	if !ok {
		return nil
	}
	byName := make(map[string]*ChampionTotal)
	order := make([]string, 0, len(line.Reigns))
	for _, reign := range line.Reigns {
		total, seen := byName[reign.Champion]
		if !seen {
			total = &ChampionTotal{Champion: reign.Champion}
			byName[reign.Champion] = total
			order = append(order, reign.Champion)
		}
		total.Country = reign.Country
		total.Reigns++
		if reign.Days > 0 {
			total.Days += reign.Days
		}
		total.Defenses += reign.Defenses
	}
	out := make([]ChampionTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Days > out[j].Days })
	return out
}
