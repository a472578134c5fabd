// Package milestone guards roast milestones so each is annotated at most
// once per roast, however often the telemetry repeats it.
package milestone

import (
	"fmt"
	"math"

	"roast_monitor/internal/models"
)

type info struct {
	code   string
	detail string
}

var kinds = map[models.MilestoneKind]info{
	models.MilestoneCharge:       {"C", "Charge"},
	models.MilestoneTurningPoint: {"TP", "Turning Point"},
	models.MilestoneDryEnd:       {"DE", "Dry End"},
	models.MilestoneFirstCrack:   {"FC", "First Crack"},
	models.MilestoneSecondCrack:  {"SC", "Second Crack"},
	models.MilestoneDrop:         {"D", "Dropped"},
}

// Known reports whether k is a recognised milestone kind.
func Known(k models.MilestoneKind) bool {
	_, ok := kinds[k]
	return ok
}

// Code returns the short code drawn on the chart, e.g. "FC".
func Code(k models.MilestoneKind) string {
	return kinds[k].code
}

// Detail returns the long description, e.g. "First Crack".
func Detail(k models.MilestoneKind) string {
	return kinds[k].detail
}

// Label combines the short code with the rounded bean temperature: "C (205)".
func Label(k models.MilestoneKind, beanTemp float64) string {
	return fmt.Sprintf("%s (%.0f)", Code(k), math.Round(beanTemp))
}

type key struct {
	roastID string
	kind    models.MilestoneKind
}

// Tracker records which milestones have been marked for each roast.
type Tracker struct {
	marks map[key]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{marks: make(map[key]struct{})}
}

// TryMark records (roastID, kind) and returns true the first time it is
// called for that pair. Later calls return false and change nothing.
func (t *Tracker) TryMark(roastID string, kind models.MilestoneKind) bool {
	k := key{roastID: roastID, kind: kind}
	if _, seen := t.marks[k]; seen {
		return false
	}
	t.marks[k] = struct{}{}
	return true
}

// Marked reports whether (roastID, kind) has been marked.
func (t *Tracker) Marked(roastID string, kind models.MilestoneKind) bool {
	_, ok := t.marks[key{roastID: roastID, kind: kind}]
	return ok
}

// Reset clears every mark for roastID.
func (t *Tracker) Reset(roastID string) {
	for k := range t.marks {
		if k.roastID == roastID {
			delete(t.marks, k)
		}
	}
}
