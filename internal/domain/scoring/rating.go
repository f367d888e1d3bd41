package scoring

// Rating floor for an unknown or winless opponent.
const minRating = 5

// Rating grades an opponent 5..100 on their record and title history as of
// fightYear. A past or current champion starts at 80; below that the tiers
// fall off by win percentage and sample size.
func (c *Caches) Rating(name string, fightYear int) float64 {
	w := c.led.Wrestler(name)
	if w == nil {
		return minRating
	}

	wins, losses, _ := c.CumulativeRecord(name, fightYear)
	total := wins + losses
	winPct := 0.0
	if total > 0 {
		winPct = float64(wins) / float64(total)
	}

	switch {
	case c.WasChampionBy(name, fightYear):
		return min(80+winPct*20, 100)
	case winPct >= 0.70 && total >= 5:
		return 60 + winPct*19
	case winPct >= 0.50 && total >= 3:
		return 40 + winPct*19
	case winPct >= 0.40:
		return 20 + winPct*19
	default:
		return max(minRating, winPct*19)
	}
}

// topCalibre reports whether an opponent counts for the head-to-head boost:
// a champion by fightYear, or an established wrestler at 70%+ wins.
func (c *Caches) topCalibre(name string, fightYear int) bool {
	if c.WasChampionBy(name, fightYear) {
		return true
	}
	wins, losses, _ := c.CumulativeRecord(name, fightYear)
	total := wins + losses
	return total >= 5 && float64(wins)/float64(total) >= 0.70
}
