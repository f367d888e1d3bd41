package ledger

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/squaredcircle/ringledger/internal/domain/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func singles(a, b string, res model.Result, method, wc, notes string) model.Match {
	return model.Match{
		FighterA:    model.Fighter{Name: a, Country: "mx"},
		FighterB:    model.Fighter{Name: b, Country: "us"},
		WeightClass: wc,
		Method:      method,
		Result:      res,
		Notes:       notes,
	}
}

func card(name string, d time.Time, kind model.EventKind, matches ...model.Match) model.Event {
	return model.Event{Name: name, Date: d, Kind: kind, Matches: matches}
}

var wwfHeavy = model.LineKey{Org: model.OrgWWF, Weight: model.Heavyweight}

func TestTitleRule(t *testing.T) {
	ctx := context.Background()
	r := NewReplayer()

	Convey("Given a title line contested across several cards", t, func() {
		events := []model.Event{
			card("Genesis", day(1970, time.January, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Spring Showdown", day(1970, time.March, 1), model.KindPPV,
				singles("El Santo", "Challenger One", model.ResultWinA, "Submission", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Summer Slam", day(1970, time.June, 1), model.KindPPV,
				singles("El Santo", "Challenger Two", model.ResultWinB, "Disqualification", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Autumn Clash", day(1970, time.September, 1), model.KindPPV,
				singles("El Santo", "Challenger Two", model.ResultDraw, "Draw", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Winter War", day(1971, time.February, 1), model.KindPPV,
				singles("El Santo", "Usurper", model.ResultWinB, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
		}
		led := r.Replay(ctx, events, nil)
		line := led.Line(wwfHeavy)

		Convey("A decisive win over the champion starts a new reign", func() {
			So(line.Reigns, ShouldHaveLength, 2)
			So(line.Reigns[0].Champion, ShouldEqual, "El Santo")
			So(line.Reigns[1].Champion, ShouldEqual, "Usurper")
			So(line.Reigns[1].StartDate, ShouldEqual, day(1971, time.February, 1))
			So(line.Reigns[1].Notes, ShouldEqual, "Def. El Santo")
		})

		Convey("The first title win opens a reign with zero defenses", func() {
			So(line.Reigns[1].Defenses, ShouldEqual, 0)
		})

		Convey("Retains count as defenses, including a DQ loss by the challenger", func() {
			// Submission retain, DQ win by the challenger, and a draw
			// all leave the belt with El Santo.
			So(line.Reigns[0].Defenses, ShouldEqual, 2)
		})

		Convey("A disqualification never moves the belt", func() {
			So(led.Wrestler("Challenger Two").Wins, ShouldEqual, 1)
			for _, reign := range line.Reigns {
				So(reign.Champion, ShouldNotEqual, "Challenger Two")
			}
		})

		Convey("The current reign belongs to the usurper", func() {
			So(line.CurrentReign(), ShouldNotBeNil)
			So(line.CurrentReign().Champion, ShouldEqual, "Usurper")
		})
	})

	Convey("Given title matches with unusable annotations", t, func() {
		events := []model.Event{
			card("Oddities", day(1970, time.January, 1), model.KindPPV,
				singles("A", "B", model.ResultWinA, "Pinfall", "Heavyweight", ""),
				singles("C", "D", model.ResultWinA, "Pinfall", "", "WWF Title Match"),
			),
		}
		led := r.Replay(ctx, events, nil)

		Convey("A match without title notes touches no line", func() {
			for _, line := range led.Lines() {
				So(line.Reigns, ShouldBeEmpty)
			}
		})

		Convey("An unmappable weight class degrades to a non-title match", func() {
			So(led.Wrestler("C").Wins, ShouldEqual, 1)
		})
	})

	Convey("A unification match credits every named org", t, func() {
		events := []model.Event{
			card("Unification", day(1970, time.January, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF and WWO Heavyweight Title Match"),
			),
		}
		led := r.Replay(ctx, events, nil)
		So(led.Line(wwfHeavy).Reigns, ShouldHaveLength, 1)
		So(led.Line(model.LineKey{Org: model.OrgWWO, Weight: model.Heavyweight}).Reigns, ShouldHaveLength, 1)
		So(led.Wrestler("El Santo").Reigns, ShouldHaveLength, 2)
	})
}

func TestReplayOrderingAndAggregates(t *testing.T) {
	ctx := context.Background()
	r := NewReplayer()

	Convey("Given cards supplied out of date order", t, func() {
		events := []model.Event{
			card("Later", day(1971, time.May, 1), model.KindWeekly,
				singles("El Santo", "Rival", model.ResultWinB, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Earlier", day(1970, time.January, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
		}
		led := r.Replay(ctx, events, nil)

		Convey("Replay sorts by date before applying the title rule", func() {
			line := led.Line(wwfHeavy)
			So(line.Reigns, ShouldHaveLength, 2)
			So(line.Reigns[0].Champion, ShouldEqual, "El Santo")
			So(line.Reigns[1].Champion, ShouldEqual, "Rival")
		})

		Convey("Years and the reference date come from the event log", func() {
			So(led.Years(), ShouldResemble, []int{1970, 1971})
			So(led.ReferenceDate(), ShouldEqual, day(1971, time.May, 1))
		})

		Convey("Featured marks PPV appearances only", func() {
			So(led.Wrestler("El Santo").Featured, ShouldBeTrue)
		})
	})

	Convey("Given a single card with undercard and main event", t, func() {
		events := []model.Event{
			card("One Night", day(1970, time.January, 1), model.KindPPV,
				singles("Opener A", "Opener B", model.ResultDraw, "Draw", "Lightweight", ""),
				singles("El Santo", "Rival", model.ResultWinA, "Submission", "Heavyweight", ""),
			),
		}
		led := r.Replay(ctx, events, nil)

		Convey("Only the last match of the card is the main event", func() {
			So(led.Wrestler("El Santo").MainEvents, ShouldEqual, 1)
			So(led.Wrestler("Opener A").MainEvents, ShouldEqual, 0)
		})

		Convey("Draws credit both sides and no one loses", func() {
			a := led.Wrestler("Opener A")
			So(a.Draws, ShouldEqual, 1)
			So(a.Wins, ShouldEqual, 0)
			So(a.Losses, ShouldEqual, 0)
		})

		Convey("Method splits follow the finish classification", func() {
			So(led.Wrestler("El Santo").SubmissionWins, ShouldEqual, 1)
			So(led.Wrestler("Rival").SubmissionLosses, ShouldEqual, 1)
		})

		Convey("Bouts record date, opponent, and outcome", func() {
			bouts := led.Wrestler("Rival").Bouts
			So(bouts, ShouldHaveLength, 1)
			So(bouts[0].Opponent, ShouldEqual, "El Santo")
			So(bouts[0].Outcome, ShouldEqual, model.OutcomeLoss)
			So(bouts[0].Year, ShouldEqual, 1970)
		})
	})

	Convey("An undated card is skipped entirely", t, func() {
		events := []model.Event{
			card("Lost Card", time.Time{}, model.KindWeekly,
				singles("Ghost", "Phantom", model.ResultWinA, "Pinfall", "Heavyweight", ""),
			),
		}
		led := r.Replay(ctx, events, nil)
		So(led.Wrestler("Ghost"), ShouldBeNil)
		So(led.Years(), ShouldBeEmpty)
	})

	Convey("Replaying the same log twice yields identical state", t, func() {
		events := []model.Event{
			card("Genesis", day(1970, time.January, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Rematch", day(1970, time.June, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinB, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
		}
		first := r.Replay(ctx, events, nil)
		second := r.Replay(ctx, events, nil)

		So(second.Line(wwfHeavy).Reigns, ShouldHaveLength, len(first.Line(wwfHeavy).Reigns))
		for i, reign := range second.Line(wwfHeavy).Reigns {
			So(*reign, ShouldResemble, *first.Line(wwfHeavy).Reigns[i])
		}
		So(second.Wrestler("El Santo").Wins, ShouldEqual, first.Wrestler("El Santo").Wins)
	})
}

func TestReignDurations(t *testing.T) {
	ctx := context.Background()
	r := NewReplayer()

	Convey("Given a line whose belt changes hands once", t, func() {
		events := []model.Event{
			card("Genesis", day(1970, time.January, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("The Fall", day(1971, time.February, 1), model.KindPPV,
				singles("El Santo", "Usurper", model.ResultWinB, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Epilogue", day(1971, time.March, 1), model.KindWeekly,
				singles("Opener A", "Opener B", model.ResultWinA, "Pinfall", "Lightweight", ""),
			),
		}
		led := r.Replay(ctx, events, nil)
		line := led.Line(wwfHeavy)

		Convey("A closed reign runs to the start of the next one", func() {
			So(line.Reigns[0].Days, ShouldEqual, 396)
		})

		Convey("The open reign runs to the latest event date", func() {
			So(line.Reigns[1].Days, ShouldEqual, 28)
		})

		Convey("Consecutive reigns never overlap", func() {
			for i := 1; i < len(line.Reigns); i++ {
				prevEnd := line.Reigns[i-1].StartDate.AddDate(0, 0, line.Reigns[i-1].Days)
				So(prevEnd.After(line.Reigns[i].StartDate), ShouldBeFalse)
			}
		})
	})
}

func TestVacancies(t *testing.T) {
	ctx := context.Background()
	r := NewReplayer()

	genesis := card("Genesis", day(1970, time.January, 1), model.KindPPV,
		singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
	)

	Convey("A vacancy naming the current champion closes the reign", t, func() {
		vacs := []model.Vacancy{{
			Org:         model.OrgWWF,
			WeightClass: model.Heavyweight,
			Champion:    "El Santo",
			Date:        day(1970, time.July, 1),
			Message:     "Stripped after injury",
		}}
		led := r.Replay(ctx, []model.Event{genesis}, vacs)
		line := led.Line(wwfHeavy)

		So(line.Reigns, ShouldHaveLength, 1)
		So(line.Reigns[0].Vacated(), ShouldBeTrue)
		So(line.Reigns[0].VacancyMessage, ShouldEqual, "Stripped after injury")
		So(line.CurrentReign(), ShouldBeNil)

		Convey("and the reign duration runs to the vacancy date", func() {
			So(line.Reigns[0].Days, ShouldEqual, 181)
		})
	})

	Convey("A vacancy with no message gets the default", t, func() {
		vacs := []model.Vacancy{{
			Org:         model.OrgWWF,
			WeightClass: model.Heavyweight,
			Champion:    "El Santo",
			Date:        day(1970, time.July, 1),
		}}
		led := r.Replay(ctx, []model.Event{genesis}, vacs)
		So(led.Line(wwfHeavy).Reigns[0].VacancyMessage, ShouldEqual, "Title vacated")
	})

	Convey("A vacancy naming the wrong champion is dropped", t, func() {
		vacs := []model.Vacancy{{
			Org:         model.OrgWWF,
			WeightClass: model.Heavyweight,
			Champion:    "Pretender",
			Date:        day(1970, time.July, 1),
		}}
		led := r.Replay(ctx, []model.Event{genesis}, vacs)
		line := led.Line(wwfHeavy)
		So(line.Reigns[0].Vacated(), ShouldBeFalse)
		So(line.CurrentReign().Champion, ShouldEqual, "El Santo")
	})

	Convey("A vacancy interleaves before later cards", t, func() {
		vacs := []model.Vacancy{{
			Org:         model.OrgWWF,
			WeightClass: model.Heavyweight,
			Champion:    "El Santo",
			Date:        day(1970, time.July, 1),
		}}
		crowning := card("Crowning", day(1970, time.December, 1), model.KindPPV,
			singles("Heir", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
		)
		led := r.Replay(ctx, []model.Event{genesis, crowning}, vacs)
		line := led.Line(wwfHeavy)

		So(line.Reigns, ShouldHaveLength, 2)
		So(line.Reigns[0].Vacated(), ShouldBeTrue)
		So(line.Reigns[1].Champion, ShouldEqual, "Heir")
		So(line.Reigns[1].Defenses, ShouldEqual, 0)
	})
}

func TestLineTotals(t *testing.T) {
	ctx := context.Background()
	r := NewReplayer()

	Convey("Given a line with alternating champions", t, func() {
		events := []model.Event{
			card("One", day(1970, time.January, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Two", day(1970, time.February, 1), model.KindPPV,
				singles("El Santo", "Challenger One", model.ResultWinA, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Three", day(1970, time.June, 1), model.KindPPV,
				singles("El Santo", "Rival", model.ResultWinB, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Four", day(1970, time.July, 1), model.KindPPV,
				singles("Rival", "El Santo", model.ResultWinB, "Pinfall", "Heavyweight", "WWF Heavyweight Title Match"),
			),
			card("Five", day(1971, time.July, 1), model.KindWeekly,
				singles("Opener A", "Opener B", model.ResultWinA, "Pinfall", "Lightweight", ""),
			),
		}
		led := r.Replay(ctx, events, nil)
		totals := led.LineTotals(wwfHeavy)

		Convey("Each champion appears once with summed reigns and defenses", func() {
			So(totals, ShouldHaveLength, 2)
			var santo ChampionTotal
			for _, total := range totals {
				if total.Champion == "El Santo" {
					santo = total
				}
			}
			So(santo.Reigns, ShouldEqual, 2)
			So(santo.Defenses, ShouldEqual, 1)
		})

		Convey("Totals are ordered by days held descending", func() {
			So(totals[0].Days, ShouldBeGreaterThanOrEqualTo, totals[1].Days)
			So(totals[0].Champion, ShouldEqual, "El Santo")
		})

		Convey("An untouched line has no totals", func() {
			So(led.LineTotals(model.LineKey{Org: model.OrgIWB, Weight: model.Featherweight}), ShouldBeEmpty)
		})
	})
}
