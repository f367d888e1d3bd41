package rankings

import "sort"

// HighestRanking returns the best yearly rank name ever achieved across
// both divisions and the years it happened, ascending. ok is false when
// the wrestler never appeared in a table.
func (t *Tables) HighestRanking(name string) (rank int, years []int, ok bool) {
	for _, div := range Divisions() {
		for year, entries := range t.Yearly[div] {
			for _, e := range entries {
				if e.Name != name {
					continue
				}
				if !ok || e.Rank < rank {
					rank = e.Rank
					years = []int{year}
					ok = true
				} else if e.Rank == rank && !containsYear(years, year) {
					years = append(years, year)
				}
				break
			}
		}
	}
	sort.Ints(years)
	return rank, years, ok
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
