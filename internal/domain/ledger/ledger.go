// Package ledger derives championship history and per-wrestler aggregates
// from the chronological event log. State is rebuilt by full replay only;
// there is no incremental-update path.
package ledger

import (
	"sort"
	"time"

	"github.com/squaredcircle/ringledger/internal/domain/model"
)

// Ledger is the derived state: title lines, wrestler records, and the
// reference date used to resolve open-reign durations. Constructed by
// Replayer.Replay and read-only afterwards.
type Ledger struct {
	lines     map[model.LineKey]*model.TitleLine
	wrestlers map[string]*model.WrestlerRecord

	referenceDate time.Time // max event date across the log
	years         map[int]struct{}
}

func newLedger() *Ledger {
	led := &Ledger{
		lines:     make(map[model.LineKey]*model.TitleLine),
		wrestlers: make(map[string]*model.WrestlerRecord),
		years:     make(map[int]struct{}),
	}
	for _, org := range model.Orgs() {
		for _, wc := range model.WeightClasses() {
			key := model.LineKey{Org: org, Weight: wc}
			led.lines[key] = &model.TitleLine{Key: key}
		}
	}
	return led
}

// Line returns the title line for key. Lines exist for every org/weight
// combination even when no reign has been recorded.
func (l *Ledger) Line(key model.LineKey) *model.TitleLine {
	return l.lines[key]
}

// Lines returns all title lines in canonical org-then-weight order.
func (l *Ledger) Lines() []*model.TitleLine {
	out := make([]*model.TitleLine, 0, len(l.lines))
	for _, org := range model.Orgs() {
		for _, wc := range model.WeightClasses() {
			out = append(out, l.lines[model.LineKey{Org: org, Weight: wc}])
		}
	}
	return out
}

// Wrestler returns the record for name, or nil when unknown.
func (l *Ledger) Wrestler(name string) *model.WrestlerRecord {
	return l.wrestlers[name]
}

// Wrestlers returns all records sorted by name.
func (l *Ledger) Wrestlers() []*model.WrestlerRecord {
	out := make([]*model.WrestlerRecord, 0, len(l.wrestlers))
	for _, w := range l.wrestlers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ReferenceDate is the latest event date seen during replay; open reigns
// are measured up to it ("now" in dataset time).
func (l *Ledger) ReferenceDate() time.Time {
	return l.referenceDate
}

// Years returns every distinct event year in ascending order.
func (l *Ledger) Years() []int {
	out := make([]int, 0, len(l.years))
	for y := range l.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func (l *Ledger) wrestler(name string) *model.WrestlerRecord {
	if w, ok := l.wrestlers[name]; ok {
		return w
	}
	w := &model.WrestlerRecord{Name: name, Country: "un"}
	l.wrestlers[name] = w
	return w
}
