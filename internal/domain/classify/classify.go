// Package classify maps the free-text match fields onto structured title
// semantics. The substring matching here is inherently fragile; it lives
// behind the Classifier interface so a structured enum-based input can
// replace it without touching the scoring math.
package classify

import (
	"strings"

	"github.com/squaredcircle/ringledger/internal/domain/model"
)

// Finish buckets a winning method.
type Finish int

const (
	FinishPinfall Finish = iota
	FinishSubmission
	FinishDecision // anything that is not pinfall, submission, or a draw
)

// Classifier extracts title semantics from a match's free-text fields.
type Classifier interface {
	// TitleOrgs returns the organizations whose titles the match was
	// contested for. Empty when the match is not a title match.
	TitleOrgs(notes string) []model.Org

	// WeightClass resolves the division from the notes, falling back to the
	// weight-class column. False when no known division is named.
	WeightClass(notes, weightColumn string) (model.WeightClass, bool)

	// ChangeEligible reports whether the method may transfer a title.
	// Count Out and Disqualification never change a title.
	ChangeEligible(method string) bool

	// Finish buckets the winning method for the method-split counters.
	Finish(method string) Finish
}

// Notes creates the default free-text classifier.
func Notes() Classifier {
	return noteClassifier{}
}

type noteClassifier struct{}

var titleKeywords = []string{"title", "championship"}

func (noteClassifier) TitleOrgs(notes string) []model.Org {
	if notes == "" {
		return nil
	}
	lower := strings.ToLower(notes)
	keyword := false
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			keyword = true
			break
		}
	}
	if !keyword {
		return nil
	}
	var orgs []model.Org
	for _, org := range model.Orgs() {
		if strings.Contains(lower, string(org)) {
			orgs = append(orgs, org)
		}
	}
	return orgs
}

func (noteClassifier) WeightClass(notes, weightColumn string) (model.WeightClass, bool) {
	notesLower := strings.ToLower(notes)
	columnLower := strings.ToLower(weightColumn)
	for _, wc := range model.WeightClasses() {
		if strings.Contains(notesLower, string(wc)) || strings.Contains(columnLower, string(wc)) {
			return wc, true
		}
	}
	return "", false
}

func (noteClassifier) ChangeEligible(method string) bool {
	lower := strings.ToLower(method)
	if strings.Contains(lower, "pinfall") || strings.Contains(lower, "submission") {
		return true
	}
	for _, blocked := range []string{"dq", "count out", "countout", "disqualification"} {
		if strings.Contains(lower, blocked) {
			return false
		}
	}
	return true
}

func (noteClassifier) Finish(method string) Finish {
	lower := strings.ToLower(method)
	switch {
	case strings.Contains(lower, "pinfall"):
		return FinishPinfall
	case strings.Contains(lower, "submission"):
		return FinishSubmission
	default:
		return FinishDecision
	}
}
