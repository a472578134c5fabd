package synchronizer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"roast_monitor/internal/lifecycle"
	"roast_monitor/internal/milestone"
	"roast_monitor/internal/models"
	"roast_monitor/internal/series"
	"roast_monitor/internal/ui"

	"github.com/goccy/go-json"
	prom "github.com/prometheus/client_golang/prometheus"
)

type emitted struct {
	event string
	data  any
}

type fakeCommands struct {
	mu   sync.Mutex
	sent []emitted
	err  error
}

func (f *fakeCommands) Emit(event string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, emitted{event: event, data: data})
	return nil
}

func (f *fakeCommands) all() []emitted {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emitted(nil), f.sent...)
}

type incident struct {
	kind        string
	description string
}

type fakeIncidents struct {
	mu  sync.Mutex
	got []incident
}

func (f *fakeIncidents) Report(_ context.Context, kind, description string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, incident{kind: kind, description: description})
}

func (f *fakeIncidents) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.got))
	for _, i := range f.got {
		out = append(out, i.kind)
	}
	return out
}

type fakeRenderer struct {
	points      map[string][]models.Point
	annotations []models.Annotation
	title       string
	subtitle    string
	clears      int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{points: make(map[string][]models.Point)}
}

func (r *fakeRenderer) AppendPoint(id string, p models.Point) {
	r.points[id] = append(r.points[id], p)
}

func (r *fakeRenderer) AppendAnnotation(_ string, a models.Annotation) {
	r.annotations = append(r.annotations, a)
}

func (r *fakeRenderer) SetTitle(text, subtitle string) {
	r.title, r.subtitle = text, subtitle
}

func (r *fakeRenderer) Clear() {
	r.clears++
	r.points = make(map[string][]models.Point)
	r.annotations = nil
}

type harness struct {
	sync      *Synchronizer
	sink      *series.Sink
	board     *ui.Board
	tracker   *milestone.Tracker
	commands  *fakeCommands
	incidents *fakeIncidents
	renderer  *fakeRenderer
	ids       int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sink:      series.NewSink(),
		board:     ui.NewBoard(),
		tracker:   milestone.NewTracker(),
		commands:  &fakeCommands{},
		incidents: &fakeIncidents{},
		renderer:  newFakeRenderer(),
	}
	h.sync = New(Deps{
		Lifecycle: lifecycle.NewMachine(),
		Sink:      h.sink,
		Tracker:   h.tracker,
		Panel:     h.board,
		Commands:  h.commands,
		Renderer:  h.renderer,
		Incidents: h.incidents,
		Metrics:   NewMetrics(prom.NewRegistry()),
		NewRoastID: func() string {
			h.ids++
			return fmt.Sprintf("roast-%d", h.ids)
		},
	})
	return h
}

func (h *harness) send(t *testing.T, event models.EventName, payload any) {
	t.Helper()
	h.sync.HandleEvent(context.Background(), envelope(t, event, payload))
}

func (h *harness) sendRaw(event models.EventName, raw string) {
	h.sync.HandleEvent(context.Background(), models.Envelope{Event: event, Data: json.RawMessage(raw)})
}

func (h *harness) enabled(t *testing.T, id string) bool {
	t.Helper()
	c, ok := h.board.ControlState(id)
	if !ok {
		t.Fatalf("control %s not on board", id)
	}
	return c.Enabled
}

func envelope(t *testing.T, event models.EventName, payload any) models.Envelope {
	t.Helper()
	env := models.Envelope{Event: event}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		env.Data = b
	}
	return env
}
