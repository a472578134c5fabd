package synchronizer

import (
	"roast_monitor/internal/lifecycle"
	"roast_monitor/internal/models"
)

// effect is a side effect produced by a handler and applied by the
// Synchronizer in order.
type effect interface{ isEffect() }

type setConnected struct{ connected bool }

type blankReadouts struct{}

type setReadout struct{ key, text string }

// applyGating sets every gated control from the lifecycle state current at
// the time the effect is applied.
type applyGating struct{}

type setToggle struct {
	id      string
	pending bool
	label   string
}

type setSliderValue struct {
	id    string
	value float64
}

type setSliderEnabled struct {
	id      string
	enabled bool
}

type setMonitoring struct{ on bool }

type appendPoint struct {
	series string
	x, y   float64
}

// annotate is applied only if the tracker has not yet marked kind for the
// current roast.
type annotate struct {
	kind     models.MilestoneKind
	x        float64
	beanTemp float64
}

// sampleApplied records the time of the last sample drawn on the charts.
type sampleApplied struct{ time float64 }

// applyTitle pushes the operator's chart title to the sink and renderer.
type applyTitle struct{}

type setProperties struct{ props map[string]any }

// resetSession tears down the roast session: series, annotations, marks.
type resetSession struct{}

type reportIncident struct {
	kind        string
	description string
	meta        any
}

func (setConnected) isEffect()     {}
func (blankReadouts) isEffect()    {}
func (setReadout) isEffect()       {}
func (applyGating) isEffect()      {}
func (setToggle) isEffect()        {}
func (setSliderValue) isEffect()   {}
func (setSliderEnabled) isEffect() {}
func (setMonitoring) isEffect()    {}
func (appendPoint) isEffect()      {}
func (annotate) isEffect()         {}
func (sampleApplied) isEffect()    {}
func (applyTitle) isEffect()       {}
func (setProperties) isEffect()    {}
func (resetSession) isEffect()     {}
func (reportIncident) isEffect()   {}

// outcome is what a handler returns: lifecycle events are applied first,
// then effects in order.
type outcome struct {
	transitions []lifecycle.Event
	effects     []effect
}

func (o *outcome) transition(ev lifecycle.Event) {
	o.transitions = append(o.transitions, ev)
}

func (o *outcome) add(e ...effect) {
	o.effects = append(o.effects, e...)
}

func (o *outcome) anomaly(description string, meta any) {
	o.add(reportIncident{kind: models.IncidentProtocolAnomaly, description: description, meta: meta})
}
