package service

import (
	"context"

	"roast_monitor/internal/models"
	"roast_monitor/internal/series"
	"roast_monitor/internal/ui"
)

type DashboardService struct {
	board    *ui.Board
	sink     *series.Sink
	sessions SessionSource
}

func NewDashboardService(board *ui.Board, sink *series.Sink, sessions SessionSource) *DashboardService {
	return &DashboardService{board: board, sink: sink, sessions: sessions}
}

// Controls returns the panel together with the roast session it belongs to.
func (s *DashboardService) Controls(ctx context.Context) (models.DashboardSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.DashboardSnapshot{}, err
	}
	return models.DashboardSnapshot{
		Session: s.sessions.Session(),
		Panel:   s.board.Snapshot(),
	}, nil
}

// Chart returns a copy of every series and annotation.
func (s *DashboardService) Chart(ctx context.Context) (models.ChartSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.ChartSnapshot{}, err
	}
	return s.sink.Snapshot(), nil
}
