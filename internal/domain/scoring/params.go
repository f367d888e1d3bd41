package scoring

// Params carries every tunable scoring constant. Zero values are not
// meaningful; start from DefaultParams and override via config.
type Params struct {
	// Multipliers applied per win.
	FinishMultiplier        float64 // clean pinfall or submission win
	H2HMultiplier           float64 // win over a top-calibre opponent
	EnteringChampMultiplier float64 // win while defending a belt held entering the year

	// A draw counts as this fraction of a win in quality scoring.
	DrawCredit float64

	// Open Tournament credit.
	OpenWinYearlyBonus float64 // added to the yearly score the winning year
	OpenWinGOATPoints  float64 // championship points per Open win
	OpenWinGOATCap     int     // wins counted toward GOAT championship credit

	// Quality score normalization ceilings.
	WOTYMaxWins float64 // wins counted at full volume credit in one year
	GOATMaxWins int     // career wins counted in quality normalization

	// GOAT composite weights.
	GOATQualityWeight      float64
	GOATDominanceWeight    float64
	GOATChampionshipWeight float64
	GOATMainEventWeight    float64

	// Yearly composite weights.
	YearQualityWeight   float64
	YearDominanceWeight float64
	YearActivityWeight  float64
	YearWeight          float64 // this-year share of the final yearly score
	PrestigeWeight      float64 // career-prestige share

	// Inactivity decay for wrestlers with no bouts in the ranking year.
	InactivityDecayPerYear float64
	InactivityFloor        float64
}

// DefaultParams returns the production scoring constants.
func DefaultParams() Params {
	return Params{
		FinishMultiplier:        1.2,
		H2HMultiplier:           1.4,
		EnteringChampMultiplier: 1.3,
		DrawCredit:              0.40,

		OpenWinYearlyBonus: 60,
		OpenWinGOATPoints:  40,
		OpenWinGOATCap:     3,

		WOTYMaxWins: 7,
		GOATMaxWins: 30,

		GOATQualityWeight:      0.40,
		GOATDominanceWeight:    0.25,
		GOATChampionshipWeight: 0.25,
		GOATMainEventWeight:    0.10,

		YearQualityWeight:   0.50,
		YearDominanceWeight: 0.30,
		YearActivityWeight:  0.20,
		YearWeight:          0.80,
		PrestigeWeight:      0.20,

		InactivityDecayPerYear: 0.20,
		InactivityFloor:        0.5,
	}
}
