package synchronizer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"roast_monitor/internal/lifecycle"
	"roast_monitor/internal/models"

	"github.com/goccy/go-json"
)

// FanScale stretches the 0-10 fan level onto the heater's 0-100 axis.
const FanScale = 10

// view is the read-only state a handler may consult.
type view struct {
	state      lifecycle.State
	lastSample *float64
}

type eventHandler func(v view, data json.RawMessage) outcome

type activityHandler func(v view, p models.ActivityPayload) outcome

// eventHandlers is the inbound dispatch table.
var eventHandlers = map[models.EventName]eventHandler{
	models.EventConnect:    handleConnect,
	models.EventDisconnect: handleDisconnect,
	models.EventInit:       handleInit,
	models.EventState:      handleState,
	models.EventError:      handleError,
	models.EventActivity:   handleActivity,
}

var activityHandlers = map[string]activityHandler{
	models.ActivityDrumMotor:       toggleConfirmed(models.ControlDrumMotor),
	models.ActivityCoolingMotor:    toggleConfirmed(models.ControlCoolingMotor),
	models.ActivitySolenoid:        toggleConfirmed(models.ControlSolenoid),
	models.ActivityMainFan:         sliderConfirmed(models.SliderFan),
	models.ActivityHeater:          sliderConfirmed(models.SliderHeater),
	models.ActivityRoastStart:      handleRoastStart,
	models.ActivityRoastShutdown:   handleRoastShutdown,
	models.ActivityRoastReset:      handleRoastReset,
	models.ActivityRoastProperties: handleRoastProperties,
	models.ActivityStartMonitor:    handleStartMonitor,
	models.ActivityStopMonitor:     handleStopMonitor,
	models.ActivityDryEnd:          milestoneReached(models.MilestoneDryEnd),
	models.ActivityFirstCrack:      milestoneReached(models.MilestoneFirstCrack),
	models.ActivitySecondCrack:     milestoneReached(models.MilestoneSecondCrack),
	models.ActivityDropCoffee:      milestoneReached(models.MilestoneDrop),
}

func handleConnect(view, json.RawMessage) outcome {
	var o outcome
	o.add(setConnected{connected: true})
	return o
}

func handleDisconnect(view, json.RawMessage) outcome {
	var o outcome
	o.add(setConnected{connected: false}, blankReadouts{})
	return o
}

func handleInit(_ view, data json.RawMessage) outcome {
	var o outcome
	var p models.InitPayload
	if err := decode(data, &p); err != nil {
		o.anomaly("init: "+err.Error(), string(data))
		return o
	}

	s := p.Settings
	for _, t := range []struct {
		id string
		on models.Flag
	}{
		{models.ControlDrumMotor, s.DrumMotor},
		{models.ControlCoolingMotor, s.CoolingMotor},
		{models.ControlSolenoid, s.Solenoid},
	} {
		o.add(setToggle{id: t.id, pending: !bool(t.on), label: toggleLabel(bool(t.on))})
	}

	o.add(
		setSliderValue{id: models.SliderFan, value: valueOrZero(s.MainFan)},
		setSliderValue{id: models.SliderHeater, value: valueOrZero(s.Heater)},
		setSliderEnabled{id: models.SliderFan, enabled: false},
		setSliderEnabled{id: models.SliderHeater, enabled: false},
	)
	return o
}

func handleState(v view, data json.RawMessage) outcome {
	var o outcome
	var p models.StatePayload
	if err := decode(data, &p); err != nil {
		o.anomaly("state: "+err.Error(), string(data))
		return o
	}

	recording := p.Recording()
	live := bool(p.Roasting) || recording
	st := v.state

	step := func(ev lifecycle.Event) {
		if next, ok := lifecycle.Next(st, ev); ok {
			st = next
			o.transition(ev)
		}
	}
	switch {
	case live && (st.Phase == lifecycle.Idle || st.Phase == lifecycle.Shutdown):
		step(lifecycle.SetupAck)
	case !live && st.Phase == lifecycle.Shutdown:
		step(lifecycle.DeviceIdle)
	}
	if recording && !st.Recording {
		step(lifecycle.RecordingStarted)
	}
	if live && !recording && st.Recording {
		step(lifecycle.RecordingStopped)
	}
	o.add(applyGating{})

	keys := make([]string, 0, len(p.Config))
	for k := range p.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		text, ok := formatReadout(k, p.Config[k])
		if !ok {
			o.anomaly("state: non-scalar telemetry field "+k, p.Config[k])
			continue
		}
		o.add(setReadout{key: k, text: text})
	}

	if !recording {
		return o
	}

	if p.Roast.Charge.Valid() {
		o.add(annotate{kind: models.MilestoneCharge, x: *p.Roast.Charge.Time, beanTemp: *p.Roast.Charge.BeanTemp})
	}
	if p.Roast.TurningPoint.Valid() {
		o.add(annotate{kind: models.MilestoneTurningPoint, x: *p.Roast.TurningPoint.Time, beanTemp: *p.Roast.TurningPoint.BeanTemp})
	}

	if p.Time == nil {
		o.anomaly("state: recording sample without time", nil)
		return o
	}
	t := *p.Time
	if v.lastSample != nil && *v.lastSample == t {
		// retransmitted sample
		return o
	}

	for _, key := range []string{models.SeriesEnvironmentTemp, models.SeriesBeanTemp} {
		y, ok := number(p.Config[key])
		if !ok {
			o.anomaly("state: missing "+key, nil)
			continue
		}
		o.add(appendPoint{series: key, x: t, y: round2(y)})
	}

	if raw, present := p.Config[models.SeriesDeltaBeanTemp]; present && raw != nil {
		y, ok := number(raw)
		switch {
		case !ok:
			o.anomaly("state: non-numeric "+models.SeriesDeltaBeanTemp, raw)
		case p.AltTime == nil:
			o.anomaly("state: "+models.SeriesDeltaBeanTemp+" without alt_time", nil)
		default:
			o.add(appendPoint{series: models.SeriesDeltaBeanTemp, x: *p.AltTime, y: y})
		}
	}

	if fan, ok := number(p.Config[models.SeriesMainFan]); ok {
		o.add(appendPoint{series: models.SeriesMainFan, x: t, y: fan * FanScale})
	}
	if heat, ok := number(p.Config[models.SeriesHeater]); ok {
		o.add(appendPoint{series: models.SeriesHeater, x: t, y: heat})
	}
	o.add(sampleApplied{time: t})
	return o
}

func handleError(_ view, data json.RawMessage) outcome {
	var o outcome
	var p models.ErrorPayload
	desc := "device server error"
	if err := decode(data, &p); err == nil && (p.Code != "" || p.Message != "") {
		desc = strings.TrimSpace(p.Code + " " + p.Message)
	}
	o.add(reportIncident{kind: models.IncidentErrorEvent, description: desc, meta: string(data)})
	return o
}

func handleActivity(v view, data json.RawMessage) outcome {
	var p models.ActivityPayload
	if err := decode(data, &p); err != nil {
		var o outcome
		o.anomaly("activity: "+err.Error(), string(data))
		return o
	}
	h, ok := activityHandlers[p.Activity]
	if !ok {
		var o outcome
		o.anomaly("activity: unknown kind "+strconv.Quote(p.Activity), string(data))
		return o
	}
	return h(v, p)
}

func toggleConfirmed(id string) activityHandler {
	return func(_ view, p models.ActivityPayload) outcome {
		var o outcome
		var on models.Flag
		if err := decode(p.State, &on); err != nil {
			o.anomaly(p.Activity+": "+err.Error(), string(p.State))
			return o
		}
		label := p.Text
		if label == "" {
			label = toggleLabel(bool(on))
		}
		o.add(setToggle{id: id, pending: !bool(on), label: label})
		return o
	}
}

func sliderConfirmed(id string) activityHandler {
	return func(_ view, p models.ActivityPayload) outcome {
		var o outcome
		var level float64
		if err := decode(p.State, &level); err != nil {
			o.anomaly(p.Activity+": "+err.Error(), string(p.State))
			return o
		}
		o.add(setSliderValue{id: id, value: level})
		return o
	}
}

func handleRoastStart(view, models.ActivityPayload) outcome {
	var o outcome
	o.transition(lifecycle.RoastStart)
	o.add(applyGating{})
	return o
}

func handleRoastShutdown(view, models.ActivityPayload) outcome {
	var o outcome
	o.transition(lifecycle.RoastShutdown)
	o.add(applyTitle{}, setMonitoring{on: false}, applyGating{})
	return o
}

func handleRoastReset(view, models.ActivityPayload) outcome {
	var o outcome
	o.transition(lifecycle.RoastReset)
	o.add(resetSession{}, setMonitoring{on: false}, applyGating{})
	return o
}

func handleStartMonitor(view, models.ActivityPayload) outcome {
	var o outcome
	o.transition(lifecycle.RecordingStarted)
	o.add(setMonitoring{on: true}, applyGating{})
	return o
}

func handleStopMonitor(_ view, p models.ActivityPayload) outcome {
	var o outcome
	o.transition(lifecycle.RecordingStopped)
	o.add(setMonitoring{on: false}, applyGating{})
	if props, ok := properties(p.State); ok {
		o.add(setProperties{props: props})
	}
	return o
}

func handleRoastProperties(_ view, p models.ActivityPayload) outcome {
	var o outcome
	props, ok := properties(p.State)
	if !ok {
		o.anomaly(p.Activity+": properties must be an object", string(p.State))
		return o
	}
	o.add(setProperties{props: props})
	return o
}

func milestoneReached(kind models.MilestoneKind) activityHandler {
	return func(_ view, p models.ActivityPayload) outcome {
		var o outcome
		var rec models.RoastRecord
		if err := decode(p.State, &rec); err != nil {
			o.anomaly(p.Activity+": "+err.Error(), string(p.State))
			return o
		}
		if !rec.Last.Valid() {
			o.anomaly(p.Activity+": no last sample", string(p.State))
			return o
		}
		o.add(annotate{kind: kind, x: *rec.Last.Time, beanTemp: *rec.Last.BeanTemp})
		return o
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty payload")
	}
	return json.Unmarshal(data, v)
}

func properties(data json.RawMessage) (map[string]any, bool) {
	var props map[string]any
	if len(data) == 0 || json.Unmarshal(data, &props) != nil || props == nil {
		return nil, false
	}
	return props, true
}

func toggleLabel(on bool) string {
	if on {
		return models.LabelTurnOff
	}
	return models.LabelTurnOn
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatReadout renders a telemetry value: temperatures with two decimals,
// everything else as sent. ok is false for values that are not scalars.
func formatReadout(key string, v any) (string, bool) {
	if n, ok := number(v); ok {
		if strings.HasSuffix(key, "_temp") {
			return strconv.FormatFloat(n, 'f', 2, 64), true
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}
