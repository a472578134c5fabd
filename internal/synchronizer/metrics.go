package synchronizer

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the synchronizer does. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	events              *prom.CounterVec
	milestones          *prom.CounterVec
	duplicateMilestones *prom.CounterVec
	dataQualityWarnings *prom.CounterVec
	commands            *prom.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prom.Registerer) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		events: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "roast_monitor",
			Name:      "events_total",
			Help:      "Inbound device events processed, by event name",
		}, []string{"event"}),
		milestones: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "roast_monitor",
			Name:      "milestones_annotated_total",
			Help:      "Milestone annotations drawn, by kind",
		}, []string{"kind"}),
		duplicateMilestones: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "roast_monitor",
			Name:      "milestones_suppressed_total",
			Help:      "Repeated milestone data suppressed by the tracker, by kind",
		}, []string{"kind"}),
		dataQualityWarnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "roast_monitor",
			Name:      "data_quality_warnings_total",
			Help:      "Out-of-order samples, ignored transitions and protocol anomalies",
		}, []string{"reason"}),
		commands: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "roast_monitor",
			Name:      "commands_total",
			Help:      "Outbound commands, by command and result",
		}, []string{"command", "result"}),
	}
	reg.MustRegister(m.events, m.milestones, m.duplicateMilestones, m.dataQualityWarnings, m.commands)
	return m
}

// unknownEventLabel counts every event name missing from the dispatch table.
const unknownEventLabel = "unknown"

func (m *Metrics) event(name string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(name).Inc()
}

func (m *Metrics) milestone(kind string) {
	if m == nil {
		return
	}
	m.milestones.WithLabelValues(kind).Inc()
}

func (m *Metrics) duplicateMilestone(kind string) {
	if m == nil {
		return
	}
	m.duplicateMilestones.WithLabelValues(kind).Inc()
}

func (m *Metrics) dataQuality(reason string) {
	if m == nil {
		return
	}
	m.dataQualityWarnings.WithLabelValues(reason).Inc()
}

func (m *Metrics) command(name string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.commands.WithLabelValues(name, result).Inc()
}
