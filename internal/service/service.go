package service

import (
	"context"
	"time"

	"roast_monitor/internal/models"
	"roast_monitor/internal/series"
	"roast_monitor/internal/ui"
)

// Dashboard exposes read-only snapshots of the synchronized session.
type Dashboard interface {
	Controls(ctx context.Context) (models.DashboardSnapshot, error)
	Chart(ctx context.Context) (models.ChartSnapshot, error)
}

// Operator turns operator input into queued actions.
type Operator interface {
	Do(ctx context.Context, a models.Action) error
}

// Incidents records and lists error events, anomalies and warnings.
type Incidents interface {
	Report(ctx context.Context, kind, description string, metadata any)
	List(ctx context.Context, f LogFilter) ([]models.Incident, error)
}

// LogFilter narrows the incident log. Zero times mean no bound.
type LogFilter struct {
	From time.Time // inclusive
	To   time.Time // inclusive
	Kind string    // "", "ERROR_EVENT", "PROTOCOL_ANOMALY", "DATA_QUALITY", "COMMAND_FAILED"
}

// SessionSource reports the current roast session.
type SessionSource interface {
	Session() models.RoastSession
}

// ActionQueue accepts operator actions for the synchronizer loop.
type ActionQueue interface {
	Submit(ctx context.Context, a models.Action) error
}

// Deps are the in-memory session parts the services read from.
type Deps struct {
	Board    *ui.Board
	Sink     *series.Sink
	Sessions SessionSource
	Actions  ActionQueue
}

type Service struct {
	Dashboard
	Operator
	Incidents
}

// NewService wires the services. incidents is created first because the
// synchronizer behind d.Sessions reports to it.
func NewService(incidents Incidents, d Deps) *Service {
	return &Service{
		Dashboard: NewDashboardService(d.Board, d.Sink, d.Sessions),
		Operator:  NewOperatorService(d.Board, d.Actions),
		Incidents: incidents,
	}
}
