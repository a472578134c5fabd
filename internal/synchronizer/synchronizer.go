// Package synchronizer maps the device server's event stream onto the roast
// lifecycle, the chart series and the milestone annotations, and turns
// operator input into outbound commands.
package synchronizer

import (
	"context"
	"errors"
	"sync"

	"roast_monitor/internal/lifecycle"
	"roast_monitor/internal/logger"
	"roast_monitor/internal/milestone"
	"roast_monitor/internal/models"
	"roast_monitor/internal/series"
	"roast_monitor/internal/ui"

	"github.com/google/uuid"
)

const inboxSize = 256

// ErrStopped is returned when submitting to a synchronizer whose loop has exited.
var ErrStopped = errors.New("synchronizer stopped")

// CommandSender delivers outbound commands to the device server. Delivery is
// fire-and-forget: confirmation arrives later as an inbound event.
type CommandSender interface {
	Emit(event string, data any) error
}

// Renderer is an external consumer of chart updates.
type Renderer interface {
	AppendPoint(seriesID string, p models.Point)
	AppendAnnotation(seriesID string, a models.Annotation)
	SetTitle(text, subtitle string)
	Clear()
}

// IncidentReporter receives error events, protocol anomalies and data-quality
// warnings.
type IncidentReporter interface {
	Report(ctx context.Context, kind, description string, metadata any)
}

// Deps are the collaborators of a Synchronizer. Commands, Renderer, Incidents
// and Metrics are optional; the rest default to fresh in-memory values.
type Deps struct {
	Lifecycle *lifecycle.Machine
	Sink      *series.Sink
	Tracker   *milestone.Tracker
	Panel     ui.Panel
	Commands  CommandSender
	Renderer  Renderer
	Incidents IncidentReporter
	Metrics   *Metrics
	Log       *logger.Logger
	// NewRoastID defaults to uuid.NewString.
	NewRoastID func() string
}

type job struct {
	env    *models.Envelope
	action *models.Action
}

// Synchronizer owns the in-memory roast session. All mutation happens on the
// goroutine running Run (or the caller of HandleEvent/HandleAction in tests).
type Synchronizer struct {
	machine   *lifecycle.Machine
	sink      *series.Sink
	tracker   *milestone.Tracker
	panel     ui.Panel
	commands  CommandSender
	renderer  Renderer
	incidents IncidentReporter
	metrics   *Metrics
	log       *logger.Logger
	newID     func() string

	lastSample *float64
	title      string
	subtitle   string

	// ctx is the context of the event currently being handled.
	ctx context.Context

	mu      sync.RWMutex
	session models.RoastSession

	inbox   chan job
	stopped chan struct{}
	once    sync.Once
}

// New wires a Synchronizer and applies the Idle gating to the panel.
func New(d Deps) *Synchronizer {
	s := &Synchronizer{
		machine:   d.Lifecycle,
		sink:      d.Sink,
		tracker:   d.Tracker,
		panel:     d.Panel,
		commands:  d.Commands,
		renderer:  d.Renderer,
		incidents: d.Incidents,
		metrics:   d.Metrics,
		log:       d.Log,
		newID:     d.NewRoastID,
		ctx:       context.Background(),
		inbox:     make(chan job, inboxSize),
		stopped:   make(chan struct{}),
	}
	if s.machine == nil {
		s.machine = lifecycle.NewMachine()
	}
	if s.sink == nil {
		s.sink = series.NewSink()
	}
	if s.tracker == nil {
		s.tracker = milestone.NewTracker()
	}
	if s.panel == nil {
		s.panel = ui.NewBoard()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	s.machine.OnIgnored = func(from lifecycle.State, ev lifecycle.Event) {
		s.log.Warnw("lifecycle_event_ignored", "state", from.String(), "event", ev.String())
		s.metrics.dataQuality("ignored_transition")
	}
	s.sink.OnOutOfOrder = func(key string, prevX, x float64) {
		s.log.Warnw("sample_out_of_order", "series", key, "prev_x", prevX, "x", x)
		s.metrics.dataQuality("out_of_order")
		s.report(models.IncidentDataQuality, "out-of-order sample on "+key,
			map[string]any{"series": key, "prev_x": prevX, "x": x})
	}

	s.session = models.RoastSession{Lifecycle: s.machine.Current().String()}
	s.applyGating()
	return s
}

// Run processes queued events and actions in order until ctx is done.
func (s *Synchronizer) Run(ctx context.Context) {
	defer s.once.Do(func() { close(s.stopped) })
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.inbox:
			switch {
			case j.env != nil:
				s.HandleEvent(ctx, *j.env)
			case j.action != nil:
				if err := s.HandleAction(ctx, *j.action); err != nil {
					s.log.Warnw("operator_action_rejected", "kind", j.action.Kind, "err", err)
				}
			}
		}
	}
}

// Dispatch queues an inbound event. Events are handled in Dispatch order.
func (s *Synchronizer) Dispatch(env models.Envelope) {
	select {
	case s.inbox <- job{env: &env}:
	case <-s.stopped:
	}
}

// Submit queues an operator action behind any pending events.
func (s *Synchronizer) Submit(ctx context.Context, a models.Action) error {
	select {
	case <-s.stopped:
		return ErrStopped
	default:
	}
	select {
	case s.inbox <- job{action: &a}:
		return nil
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Session returns a copy of the current roast session.
func (s *Synchronizer) Session() models.RoastSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if s.session.Properties != nil {
		out.Properties = make(map[string]any, len(s.session.Properties))
		for k, v := range s.session.Properties {
			out.Properties[k] = v
		}
	}
	return out
}

// HandleEvent processes one inbound event synchronously.
func (s *Synchronizer) HandleEvent(ctx context.Context, env models.Envelope) {
	s.ctx = ctx

	h, ok := eventHandlers[env.Event]
	if !ok {
		s.metrics.event(unknownEventLabel)
		s.log.Warnw("unknown_event", "event", env.Event)
		s.report(models.IncidentProtocolAnomaly, "unknown event "+string(env.Event), string(env.Data))
		return
	}
	s.metrics.event(string(env.Event))
	s.apply(h(s.view(), env.Data))
}

func (s *Synchronizer) view() view {
	return view{state: s.machine.Current(), lastSample: s.lastSample}
}

func (s *Synchronizer) apply(o outcome) {
	for _, ev := range o.transitions {
		prev := s.machine.Current()
		next := s.machine.Apply(ev)
		if prev != next {
			s.log.Infow("lifecycle_transition", "from", prev.String(), "to", next.String(), "event", ev.String())
		}
		if lifecycle.StartsSession(prev, next) {
			s.beginSession()
		}
		s.syncSession()
	}
	for _, e := range o.effects {
		s.applyEffect(e)
	}
}

func (s *Synchronizer) applyEffect(e effect) {
	switch e := e.(type) {
	case setConnected:
		s.panel.SetConnected(e.connected)
	case blankReadouts:
		s.panel.BlankReadouts()
	case setReadout:
		s.panel.SetReadout(e.key, e.text)
	case applyGating:
		s.applyGating()
	case setToggle:
		c := s.panel.Control(e.id)
		c.SetPendingAction(boolText(e.pending))
		c.SetLabel(e.label)
	case setSliderValue:
		s.panel.Slider(e.id).SetValue(e.value)
	case setSliderEnabled:
		s.panel.Slider(e.id).SetEnabled(e.enabled)
	case setMonitoring:
		s.panel.SetMonitoring(e.on)
	case appendPoint:
		s.sink.AppendPoint(e.series, e.x, e.y)
		if s.renderer != nil {
			s.renderer.AppendPoint(e.series, models.Point{X: e.x, Y: e.y})
		}
	case annotate:
		s.annotate(e)
	case sampleApplied:
		t := e.time
		s.lastSample = &t
	case applyTitle:
		s.sink.SetTitle(s.title, s.subtitle)
		if s.renderer != nil {
			s.renderer.SetTitle(s.title, s.subtitle)
		}
	case setProperties:
		s.mu.Lock()
		s.session.Properties = e.props
		s.mu.Unlock()
	case resetSession:
		s.resetSession()
	case reportIncident:
		s.log.Warnw("incident", "kind", e.kind, "description", e.description)
		if e.kind == models.IncidentProtocolAnomaly {
			s.metrics.dataQuality("protocol_anomaly")
		}
		s.report(e.kind, e.description, e.meta)
	}
}

func (s *Synchronizer) annotate(e annotate) {
	roastID := s.Session().RoastID
	if !s.tracker.TryMark(roastID, e.kind) {
		s.metrics.duplicateMilestone(string(e.kind))
		return
	}
	a := models.Annotation{
		X:       e.x,
		Label:   milestone.Label(e.kind, e.beanTemp),
		Detail:  milestone.Detail(e.kind),
		Kind:    e.kind,
		RoastID: roastID,
	}
	s.sink.AppendAnnotation(models.SeriesEvents, a)
	if s.renderer != nil {
		a.SeriesKey = models.SeriesEvents
		s.renderer.AppendAnnotation(models.SeriesEvents, a)
	}
	s.metrics.milestone(string(e.kind))
	s.log.Infow("milestone_annotated", "roast_id", roastID, "kind", e.kind, "label", a.Label, "x", a.X)
}

func (s *Synchronizer) applyGating() {
	g := lifecycle.GatingFor(s.machine.Current())
	for id, on := range map[string]bool{
		models.ControlMock:         g.Mock,
		models.ControlSetup:        g.Setup,
		models.ControlShutdown:     g.Shutdown,
		models.ControlStartMonitor: g.StartMonitor,
		models.ControlStopMonitor:  g.StopMonitor,
		models.ControlReset:        g.Reset,
	} {
		s.panel.Control(id).SetEnabled(on)
	}
	for _, id := range []string{models.SliderFan, models.SliderHeater} {
		sl := s.panel.Slider(id)
		if g.ZeroSliders {
			sl.SetValue(0)
		}
		sl.SetEnabled(g.Sliders)
	}
}

// beginSession starts a new roast id without clearing the charts.
func (s *Synchronizer) beginSession() {
	id := s.newID()
	s.lastSample = nil
	s.mu.Lock()
	s.session.RoastID = id
	s.session.Properties = nil
	s.mu.Unlock()
	s.log.Infow("roast_session_started", "roast_id", id)
}

func (s *Synchronizer) resetSession() {
	old := s.Session().RoastID
	s.tracker.Reset(old)
	s.sink.Clear()
	if s.renderer != nil {
		s.renderer.Clear()
	}
	for _, id := range milestoneButtons {
		s.panel.Control(id).SetEnabled(true)
	}
	s.beginSession()
	s.syncSession()
	s.log.Infow("roast_session_reset", "previous_roast_id", old)
}

func (s *Synchronizer) syncSession() {
	st := s.machine.Current()
	s.mu.Lock()
	s.session.Lifecycle = st.String()
	s.session.Recording = st.Recording
	s.mu.Unlock()
}

func (s *Synchronizer) report(kind, description string, meta any) {
	if s.incidents == nil {
		return
	}
	s.incidents.Report(s.ctx, kind, description, meta)
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
