package classify

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/squaredcircle/ringledger/internal/domain/model"
)

func TestTitleOrgs(t *testing.T) {
	c := Notes()

	Convey("Given match notes", t, func() {
		Convey("A title keyword plus an org name marks a title match", func() {
			So(c.TitleOrgs("WWF Heavyweight Title Match"), ShouldResemble, []model.Org{model.OrgWWF})
			So(c.TitleOrgs("IWB World Championship"), ShouldResemble, []model.Org{model.OrgIWB})
			So(c.TitleOrgs("The Ring Middleweight Title Match"), ShouldResemble, []model.Org{model.OrgRing})
		})

		Convey("Matching is case insensitive", func() {
			So(c.TitleOrgs("wwo lightweight TITLE match"), ShouldResemble, []model.Org{model.OrgWWO})
		})

		Convey("A unification match yields every named org", func() {
			orgs := c.TitleOrgs("WWF and WWO Heavyweight Title Unification Match")
			So(orgs, ShouldResemble, []model.Org{model.OrgWWF, model.OrgWWO})
		})

		Convey("An org name without a title keyword is not a title match", func() {
			So(c.TitleOrgs("WWF showcase bout"), ShouldBeEmpty)
		})

		Convey("A title keyword without an org is not a title match", func() {
			So(c.TitleOrgs("Local title match"), ShouldBeEmpty)
		})

		Convey("Empty notes never classify", func() {
			So(c.TitleOrgs(""), ShouldBeEmpty)
		})
	})
}

func TestWeightClass(t *testing.T) {
	c := Notes()

	Convey("Given notes and the weight-class column", t, func() {
		Convey("The notes take precedence", func() {
			wc, ok := c.WeightClass("WWF Lightweight Title Match", "Heavyweight")
			So(ok, ShouldBeTrue)
			So(wc, ShouldEqual, model.Lightweight)
		})

		Convey("The column is the fallback", func() {
			wc, ok := c.WeightClass("WWF Title Match", "Featherweight")
			So(ok, ShouldBeTrue)
			So(wc, ShouldEqual, model.Featherweight)
		})

		Convey("No recognizable division fails the lookup", func() {
			_, ok := c.WeightClass("WWF Title Match", "Super Cruiser")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestChangeEligible(t *testing.T) {
	c := Notes()

	Convey("Methods that may transfer a title", t, func() {
		for _, method := range []string{"Pinfall", "Submission", "Decision", "Knockout"} {
			So(c.ChangeEligible(method), ShouldBeTrue)
		}
	})

	Convey("Count outs and disqualifications never transfer a title", t, func() {
		for _, method := range []string{"Count Out", "countout", "Disqualification", "Win by DQ"} {
			So(c.ChangeEligible(method), ShouldBeFalse)
		}
	})
}

func TestFinish(t *testing.T) {
	c := Notes()

	Convey("Finish buckets the winning method", t, func() {
		So(c.Finish("Pinfall"), ShouldEqual, FinishPinfall)
		So(c.Finish("pinfall after a splash"), ShouldEqual, FinishPinfall)
		So(c.Finish("Submission"), ShouldEqual, FinishSubmission)
		So(c.Finish("Decision"), ShouldEqual, FinishDecision)
		So(c.Finish("Count Out"), ShouldEqual, FinishDecision)
	})
}
