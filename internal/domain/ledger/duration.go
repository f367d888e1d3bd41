package ledger

import "github.com/squaredcircle/ringledger/internal/domain/model"

// resolveDurations fills in Days for every reign. A closed reign runs to
// the start of the next reign in the same line (or its vacancy date); the
// single open reign of each line runs to the ledger's reference date, so
// durations are measured in dataset time, never wall-clock time.
func resolveDurations(led *Ledger) {
	for _, line := range led.lines {
		for i, reign := range line.Reigns {
			switch {
			case reign.Vacated():
				reign.Days = model.DaysBetween(reign.StartDate, reign.VacancyDate)
			case i < len(line.Reigns)-1:
				reign.Days = model.DaysBetween(reign.StartDate, line.Reigns[i+1].StartDate)
			default:
				reign.Days = model.DaysBetween(reign.StartDate, led.referenceDate)
			}
			if reign.Days < 0 {
				reign.Days = 0
			}
		}
	}
}
