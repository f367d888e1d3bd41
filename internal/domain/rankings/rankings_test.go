package rankings

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/squaredcircle/ringledger/internal/domain/ledger"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/internal/domain/scoring"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func singles(a, b string, res model.Result, method string) model.Match {
	return model.Match{
		FighterA:    model.Fighter{Name: a, Country: "mx"},
		FighterB:    model.Fighter{Name: b, Country: "us"},
		WeightClass: "Heavyweight",
		Method:      method,
		Result:      res,
	}
}

// seasonEvents builds one Annual Clash per year where Dominant goes
// unbeaten and Runner Up finishes just behind, plus a television-only
// winner in the first year.
func seasonEvents(firstYear, lastYear int) []model.Event {
	var events []model.Event
	for year := firstYear; year <= lastYear; year++ {
		events = append(events,
			model.Event{
				Name: fmt.Sprintf("Annual Clash %d", year),
				Date: day(year, time.March, 1),
				Kind: model.KindPPV,
				Matches: []model.Match{
					singles("Dominant", fmt.Sprintf("Jobber A%d", year), model.ResultWinA, "Pinfall"),
					singles("Runner Up", fmt.Sprintf("Jobber B%d", year), model.ResultWinA, "Pinfall"),
					singles("Runner Up", fmt.Sprintf("Jobber C%d", year), model.ResultWinA, "Pinfall"),
					singles("Dominant", fmt.Sprintf("Jobber D%d", year), model.ResultWinA, "Pinfall"),
					singles("Dominant", "Runner Up", model.ResultWinA, "Decision"),
				},
			},
		)
	}
	return append(events,
		model.Event{
			Name: "Tuesday Night Taping",
			Date: day(firstYear, time.June, 2),
			Kind: model.KindWeekly,
			Matches: []model.Match{
				singles("TV Only", "Jobber E", model.ResultWinA, "Pinfall"),
				singles("TV Only", "Jobber F", model.ResultWinA, "Pinfall"),
				singles("TV Only", "Jobber G", model.ResultWinA, "Pinfall"),
			},
		},
	)
}

// fixtureCaches replays four seasons plus a one-bout Open Tournament
// champion in the third.
func fixtureCaches() *scoring.Caches {
	events := append(seasonEvents(1970, 1973),
		model.Event{
			Name: "Open Finals Night",
			Date: day(1972, time.September, 1),
			Kind: model.KindPPV,
			Matches: []model.Match{
				singles("Ace", "Jobber H", model.ResultWinA, "Pinfall"),
			},
		},
	)
	led := ledger.NewReplayer().Replay(context.Background(), events, nil)
	return scoring.BuildCaches(led, []model.TournamentEdition{
		{Year: 1972, Winner: "Ace", RunnerUp: "Jobber H"},
	})
}

func TestYearlyTables(t *testing.T) {
	Convey("Given a ranking builder over four seasons", t, func() {
		caches := fixtureCaches()
		builder := NewBuilder(caches,
			WithStartYears(1970, 1970),
			WithWorkers(2),
		)
		tables := builder.Build(context.Background())

		Convey("Then every season gets a men's table", func() {
			So(tables.Yearly[DivisionMen], ShouldContainKey, 1970)
			So(tables.Yearly[DivisionMen], ShouldContainKey, 1973)
		})

		Convey("And the dominant wrestler finishes first", func() {
			entries := tables.Yearly[DivisionMen][1970]
			So(len(entries), ShouldBeGreaterThanOrEqualTo, 2)
			So(entries[0].Name, ShouldEqual, "Dominant")
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[1].Name, ShouldEqual, "Runner Up")
		})

		Convey("And rows carry records and the primary division", func() {
			entries := tables.Yearly[DivisionMen][1970]
			So(entries[0].CareerRecord, ShouldEqual, "3-0-0")
			So(entries[0].YearRecord, ShouldEqual, "3-0-0")
			So(entries[0].PrimaryWeight, ShouldEqual, "Heavyweight")
		})

		Convey("And television-only wrestlers never rank", func() {
			for _, e := range tables.Yearly[DivisionMen][1970] {
				So(e.Name, ShouldNotEqual, "TV Only")
			}
		})

		Convey("And jobbers fail the career-wins gate", func() {
			for year, entries := range tables.Yearly[DivisionMen] {
				for _, e := range entries {
					So(e.Name, ShouldNotStartWith, "Jobber")
					So(year, ShouldBeGreaterThanOrEqualTo, 1970)
				}
			}
		})

		Convey("And an Open win bypasses the bout minimums", func() {
			found := false
			for _, e := range tables.Yearly[DivisionMen][1972] {
				if e.Name == "Ace" {
					found = true
					So(e.Titles, ShouldContain, "The Open")
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("And the women's tables are empty without light-division bouts", func() {
			So(tables.Yearly[DivisionWomen], ShouldBeEmpty)
		})
	})
}

func TestFirstPlaceCap(t *testing.T) {
	Convey("Given a builder with a two-win first-place cap", t, func() {
		// Seasons only: an Open winner's flat bonus would occupy first
		// place on its own and mask the demotion.
		led := ledger.NewReplayer().Replay(context.Background(), seasonEvents(1970, 1973), nil)
		caches := scoring.BuildCaches(led, nil)
		builder := NewBuilder(caches,
			WithStartYears(1970, 1970),
			WithWOTYCap(2),
		)
		tables := builder.Build(context.Background())
		men := tables.Yearly[DivisionMen]

		Convey("Then the capped wrestler holds first for exactly two seasons", func() {
			So(men[1970][0].Name, ShouldEqual, "Dominant")
			So(men[1971][0].Name, ShouldEqual, "Dominant")
		})

		Convey("And is demoted to second once the cap is reached", func() {
			So(men[1972][0].Name, ShouldEqual, "Runner Up")
			So(men[1972][1].Name, ShouldEqual, "Dominant")
			So(men[1972][1].Score, ShouldBeLessThan, men[1972][0].Score)
			So(men[1973][0].Name, ShouldEqual, "Runner Up")
		})

		Convey("And the highest-ranking lookup reflects the demotion", func() {
			rank, years, ok := tables.HighestRanking("Dominant")
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, 1)
			So(years, ShouldResemble, []int{1970, 1971})

			rank, years, ok = tables.HighestRanking("Runner Up")
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, 1)
			So(years, ShouldResemble, []int{1972, 1973})

			_, _, ok = tables.HighestRanking("TV Only")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestOpenWinnerComeback(t *testing.T) {
	Convey("Given a wrestler whose last bout is five years old", t, func() {
		events := append(seasonEvents(1970, 1975),
			model.Event{
				Name: "Phoenix Gala",
				Date: day(1970, time.August, 1),
				Kind: model.KindPPV,
				Matches: []model.Match{
					singles("Phoenix", "Jobber P1", model.ResultWinA, "Pinfall"),
					singles("Phoenix", "Jobber P2", model.ResultWinA, "Pinfall"),
					singles("Phoenix", "Jobber P3", model.ResultWinA, "Pinfall"),
				},
			},
		)
		led := ledger.NewReplayer().Replay(context.Background(), events, nil)

		Convey("When they win the Open without fighting that year", func() {
			caches := scoring.BuildCaches(led, []model.TournamentEdition{
				{Year: 1975, Winner: "Phoenix", RunnerUp: "Runner Up"},
			})
			tables := NewBuilder(caches, WithStartYears(1970, 1970)).Build(context.Background())
			entry, ok := entryOf(tables.Yearly[DivisionMen][1975], "Phoenix")

			Convey("Then the win bypasses the activity window", func() {
				So(ok, ShouldBeTrue)
				So(entry.Titles, ShouldContain, "The Open")
			})

			Convey("And the score is the undecayed flat tournament bonus", func() {
				So(entry.Score, ShouldEqual, scoring.DefaultParams().OpenWinYearlyBonus)
			})
		})

		Convey("Without the tournament win the absence excludes them", func() {
			caches := scoring.BuildCaches(led, nil)
			tables := NewBuilder(caches, WithStartYears(1970, 1970)).Build(context.Background())

			_, ok := entryOf(tables.Yearly[DivisionMen][1975], "Phoenix")
			So(ok, ShouldBeFalse)
		})
	})
}

func entryOf(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func TestGOATList(t *testing.T) {
	Convey("Given the fixture seasons", t, func() {
		caches := fixtureCaches()

		Convey("When building without voter fatigue", func() {
			tables := NewBuilder(caches, WithStartYears(1970, 1970)).Build(context.Background())
			goat := tables.GOAT[DivisionMen]

			Convey("Then the dominant wrestler tops the all-time list", func() {
				So(len(goat), ShouldBeGreaterThanOrEqualTo, 2)
				So(goat[0].Name, ShouldEqual, "Dominant")
				So(goat[0].Rank, ShouldEqual, 1)
				So(goat[0].Score, ShouldBeGreaterThan, goat[1].Score)
			})
		})

		Convey("When voter fatigue is enabled with a one-year cap", func() {
			plain := NewBuilder(caches, WithStartYears(1970, 1970)).Build(context.Background())
			fatigued := NewBuilder(caches,
				WithStartYears(1970, 1970),
				WithVoterFatigue(true, 1),
			).Build(context.Background())

			Convey("Then sustained peak years lose part of their credit", func() {
				So(scoreOf(fatigued.GOAT[DivisionMen], "Dominant"),
					ShouldBeLessThan, scoreOf(plain.GOAT[DivisionMen], "Dominant"))
			})
		})
	})
}

func scoreOf(entries []Entry, name string) float64 {
	for _, e := range entries {
		if e.Name == name {
			return e.Score
		}
	}
	return 0
}
