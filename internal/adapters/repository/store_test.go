package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/squaredcircle/ringledger/internal/adapters/ingest"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/internal/domain/rankings"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func singles(a, b string, result model.Result, method, notes string) model.Match {
	return model.Match{
		FighterA:    model.Fighter{Name: a, Country: "mx"},
		FighterB:    model.Fighter{Name: b, Country: "us"},
		WeightClass: "Heavyweight",
		Method:      method,
		Result:      result,
		Notes:       notes,
	}
}

// fixtureLogs runs five annual supercards. El Santo wins the WWF
// heavyweight title in 1970 and defends it every year after.
func fixtureLogs() ingest.Logs {
	var events []model.Event
	for year := 1970; year <= 1974; year++ {
		events = append(events, model.Event{
			Name: fmt.Sprintf("Annual Clash %d", year-1969),
			Date: day(year, time.June, 1),
			Kind: model.KindPPV,
			Matches: []model.Match{
				singles("El Santo", "Rival", model.ResultWinA,
					"Pinfall", "WWF Heavyweight Title Match"),
				singles("El Santo", "Challenger", model.ResultWinA, "Pinfall", ""),
				singles("El Santo", "Third Man", model.ResultWinA, "Submission", ""),
				singles("Contender", "Jobber A", model.ResultWinA, "Pinfall", ""),
				singles("Contender", "Jobber B", model.ResultWinA, "Pinfall", ""),
				singles("Contender", "Rival", model.ResultWinB, "Decision", ""),
			},
		})
	}
	return ingest.Logs{Events: events}
}

func TestStoreLifecycle(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := NewStore()

		Convey("Then every read fails with ErrNotReady", func() {
			_, err := store.Snapshot()
			So(err, ShouldEqual, ErrNotReady)
			_, err = store.Rankings(rankings.DivisionMen, 1970)
			So(err, ShouldEqual, ErrNotReady)
			_, err = store.TitleLine(model.OrgWWF, model.Heavyweight)
			So(err, ShouldEqual, ErrNotReady)
			_, err = store.Wrestler("El Santo")
			So(err, ShouldEqual, ErrNotReady)
		})

		Convey("When the logs are rebuilt", func() {
			snap, err := store.Rebuild(context.Background(), fixtureLogs())
			So(err, ShouldBeNil)
			So(snap, ShouldNotBeNil)

			Convey("Then the snapshot is published", func() {
				got, err := store.Snapshot()
				So(err, ShouldBeNil)
				So(got, ShouldEqual, snap)
				years, err := store.Years()
				So(err, ShouldBeNil)
				So(years, ShouldResemble, []int{1970, 1971, 1972, 1973, 1974})
			})

			Convey("And a second rebuild replaces it", func() {
				next, err := store.Rebuild(context.Background(), fixtureLogs())
				So(err, ShouldBeNil)
				got, _ := store.Snapshot()
				So(got, ShouldEqual, next)
				So(got, ShouldNotEqual, snap)
			})
		})
	})
}

func TestStoreRankings(t *testing.T) {
	Convey("Given a rebuilt store", t, func() {
		store := NewStore()
		_, err := store.Rebuild(context.Background(), fixtureLogs())
		So(err, ShouldBeNil)

		Convey("Then the champion tops the yearly table", func() {
			entries, err := store.Rankings(rankings.DivisionMen, 1973)
			So(err, ShouldBeNil)
			So(entries, ShouldNotBeEmpty)
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[0].Name, ShouldEqual, "El Santo")
		})

		Convey("And the all-time list is served", func() {
			entries, err := store.GOAT(rankings.DivisionMen)
			So(err, ShouldBeNil)
			So(entries, ShouldNotBeEmpty)
			So(entries[0].Name, ShouldEqual, "El Santo")
		})

		Convey("And a year with no table is not found", func() {
			_, err := store.Rankings(rankings.DivisionMen, 1950)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, err = store.Rankings(rankings.DivisionWomen, 1973)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestStoreTitleLine(t *testing.T) {
	Convey("Given a rebuilt store", t, func() {
		store := NewStore()
		_, err := store.Rebuild(context.Background(), fixtureLogs())
		So(err, ShouldBeNil)

		Convey("Then the title line shows the reigning champion", func() {
			view, err := store.TitleLine(model.OrgWWF, model.Heavyweight)
			So(err, ShouldBeNil)
			So(view.Org, ShouldEqual, "WWF")
			So(view.Vacant, ShouldBeFalse)
			So(view.Current, ShouldNotBeNil)
			So(view.Current.Champion, ShouldEqual, "El Santo")
			So(view.Current.Defenses, ShouldEqual, 4)
			So(view.Reigns, ShouldHaveLength, 1)
			So(view.Reigns[0].StartDate, ShouldEqual, "June 1, 1970")
			So(view.Totals, ShouldHaveLength, 1)
			So(view.Totals[0].Champion, ShouldEqual, "El Santo")
			So(view.Totals[0].Reigns, ShouldEqual, 1)
		})

		Convey("And a line with no history is not found", func() {
			_, err := store.TitleLine(model.OrgIWB, model.Featherweight)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestStoreWrestlerProfile(t *testing.T) {
	Convey("Given a rebuilt store", t, func() {
		store := NewStore()
		_, err := store.Rebuild(context.Background(), fixtureLogs())
		So(err, ShouldBeNil)

		Convey("Then the champion's profile is complete", func() {
			profile, err := store.Wrestler("El Santo")
			So(err, ShouldBeNil)
			So(profile.CareerRecord, ShouldEqual, "15-0-0")
			So(profile.PinfallWins, ShouldEqual, 10)
			So(profile.SubWins, ShouldEqual, 5)
			So(profile.BestWinRun, ShouldEqual, 15)
			So(profile.WorstLossRun, ShouldEqual, 0)
			So(profile.ChampYears, ShouldEqual, 5)
			So(profile.Debut, ShouldEqual, 1970)
			So(profile.LastFight, ShouldEqual, 1974)
			So(profile.GOATScore, ShouldBeGreaterThan, 0)
			So(profile.HighestRank, ShouldEqual, 1)
			So(profile.Titles, ShouldContain, "WWF Heavyweight")
		})

		Convey("And an unknown name is not found", func() {
			_, err := store.Wrestler("Nobody Home")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}
