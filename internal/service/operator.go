package service

import (
	"context"
	"errors"

	"roast_monitor/internal/models"
	"roast_monitor/internal/synchronizer"
	"roast_monitor/internal/ui"
)

var ErrControlDisabled = errors.New("control is disabled in the current roast state")

type OperatorService struct {
	board   *ui.Board
	actions ActionQueue
}

func NewOperatorService(board *ui.Board, actions ActionQueue) *OperatorService {
	return &OperatorService{board: board, actions: actions}
}

// Do validates a and queues it. Actions from disabled controls are refused
// the way a disabled button would refuse a click. A toggle without an explicit
// Pending uses the action the panel currently offers.
func (s *OperatorService) Do(ctx context.Context, a models.Action) error {
	if a.Kind == models.ActionToggle && a.Pending == "" {
		if c, ok := s.board.ControlState(a.Control); ok {
			a.Pending = c.PendingAction
		}
	}
	if err := synchronizer.ValidateAction(a); err != nil {
		return err
	}
	if !s.enabled(a) {
		return ErrControlDisabled
	}
	return s.actions.Submit(ctx, a)
}

func (s *OperatorService) enabled(a models.Action) bool {
	id := synchronizer.ControlFor(a)
	if id == "" {
		return true
	}
	if a.Kind == models.ActionSlide {
		sl, ok := s.board.SliderState(id)
		return ok && sl.Enabled
	}
	c, ok := s.board.ControlState(id)
	return ok && c.Enabled
}
