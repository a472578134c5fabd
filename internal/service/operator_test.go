package service

import (
	"context"
	"errors"
	"testing"

	"roast_monitor/internal/models"
	"roast_monitor/internal/series"
	"roast_monitor/internal/synchronizer"
	"roast_monitor/internal/ui"
)

type fakeQueue struct {
	got []models.Action
	err error
}

func (f *fakeQueue) Submit(_ context.Context, a models.Action) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, a)
	return nil
}

type fakeSessions struct{ s models.RoastSession }

func (f fakeSessions) Session() models.RoastSession { return f.s }

func TestOperatorService_Do_QueuesValidAction(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	svc := NewOperatorService(ui.NewBoard(), q)

	if err := svc.Do(context.Background(), models.Action{Kind: models.ActionFirstCrack}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(q.got) != 1 || q.got[0].Kind != models.ActionFirstCrack {
		t.Fatalf("unexpected queue: %+v", q.got)
	}
}

func TestOperatorService_Do_ToggleUsesPanelPending(t *testing.T) {
	t.Parallel()

	board := ui.NewBoard()
	board.Control(models.ControlCoolingMotor).SetPendingAction("false")
	q := &fakeQueue{}
	svc := NewOperatorService(board, q)

	err := svc.Do(context.Background(), models.Action{Kind: models.ActionToggle, Control: models.ControlCoolingMotor})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if q.got[0].Pending != "false" {
		t.Fatalf("pending: got %q, want %q", q.got[0].Pending, "false")
	}
}

func TestOperatorService_Do_RejectsDisabledControl(t *testing.T) {
	t.Parallel()

	board := ui.NewBoard()
	board.Control(models.ControlShutdown).SetEnabled(false)
	board.Slider(models.SliderFan).SetEnabled(false)
	q := &fakeQueue{}
	svc := NewOperatorService(board, q)

	for _, a := range []models.Action{
		{Kind: models.ActionShutdown},
		{Kind: models.ActionSlide, Control: models.SliderFan, Value: 3},
	} {
		if err := svc.Do(context.Background(), a); !errors.Is(err, ErrControlDisabled) {
			t.Fatalf("%s: expected ErrControlDisabled, got %v", a.Kind, err)
		}
	}
	if len(q.got) != 0 {
		t.Fatalf("nothing should be queued, got %+v", q.got)
	}
}

func TestOperatorService_Do_ValidationError(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	svc := NewOperatorService(ui.NewBoard(), q)

	err := svc.Do(context.Background(), models.Action{Kind: models.ActionSlide, Control: "volume"})
	if !errors.Is(err, synchronizer.ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
}

func TestOperatorService_Do_ChartTitleAlwaysAllowed(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	svc := NewOperatorService(ui.NewBoard(), q)

	if err := svc.Do(context.Background(), models.Action{Kind: models.ActionChartTitle, Title: "Huila"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestOperatorService_Do_QueueError(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{err: synchronizer.ErrStopped}
	svc := NewOperatorService(ui.NewBoard(), q)

	if err := svc.Do(context.Background(), models.Action{Kind: models.ActionMock}); !errors.Is(err, synchronizer.ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestDashboardService(t *testing.T) {
	t.Parallel()

	board := ui.NewBoard()
	board.SetReadout(models.SeriesBeanTemp, "190.10")
	sink := series.NewSink()
	sink.AppendPoint(models.SeriesBeanTemp, 30, 190.1)
	session := models.RoastSession{RoastID: "r-9", Lifecycle: "roasting_recording", Recording: true}

	svc := NewService(nil, Deps{Board: board, Sink: sink, Sessions: fakeSessions{s: session}})

	controls, err := svc.Controls(context.Background())
	if err != nil {
		t.Fatalf("Controls: %v", err)
	}
	if controls.Session.RoastID != "r-9" || controls.Panel.Readouts[models.SeriesBeanTemp] != "190.10" {
		t.Fatalf("unexpected controls: %+v", controls)
	}

	chart, err := svc.Chart(context.Background())
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if got := chart.Series[models.SeriesBeanTemp]; len(got) != 1 || got[0].Y != 190.1 {
		t.Fatalf("unexpected chart: %+v", chart)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Chart(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOperatorService_Do_RejectsOutOfRangeLevel(t *testing.T) {
	t.Parallel()

	board := ui.NewBoard()
	board.Slider(models.SliderHeater).SetEnabled(true)
	q := &fakeQueue{}
	svc := NewOperatorService(board, q)

	err := svc.Do(context.Background(), models.Action{Kind: models.ActionSlide, Control: models.SliderHeater, Value: 250})
	if !errors.Is(err, synchronizer.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if len(q.got) != 0 {
		t.Fatalf("nothing should be queued, got %+v", q.got)
	}
}
