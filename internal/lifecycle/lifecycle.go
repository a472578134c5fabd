// Package lifecycle tracks where the roaster is in a roast and which
// operator controls that allows.
package lifecycle

import "fmt"

// Phase is the coarse lifecycle position.
type Phase int

const (
	Idle Phase = iota
	SetupReady
	Roasting
	Shutdown
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case SetupReady:
		return "setup_ready"
	case Roasting:
		return "roasting"
	case Shutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a Phase plus the recording flag, which only matters while Roasting.
type State struct {
	Phase     Phase
	Recording bool
}

func (s State) String() string {
	if s.Phase == Roasting && s.Recording {
		return "roasting_recording"
	}
	return s.Phase.String()
}

// Event drives a transition.
type Event int

const (
	SetupAck Event = iota
	RoastStart
	RecordingStarted
	RecordingStopped
	RoastShutdown
	RoastReset
	DeviceIdle
)

func (e Event) String() string {
	switch e {
	case SetupAck:
		return "setup_ack"
	case RoastStart:
		return "roast_start"
	case RecordingStarted:
		return "recording_started"
	case RecordingStopped:
		return "recording_stopped"
	case RoastShutdown:
		return "roast_shutdown"
	case RoastReset:
		return "roast_reset"
	case DeviceIdle:
		return "device_idle"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

var (
	stateIdle       = State{Phase: Idle}
	stateSetupReady = State{Phase: SetupReady}
	stateRoasting   = State{Phase: Roasting}
	stateRecording  = State{Phase: Roasting, Recording: true}
	stateShutdown   = State{Phase: Shutdown}
)

type transitionKey struct {
	from State
	ev   Event
}

// transitions lists every defined (state, event) pair. RoastReset is
// handled separately since it applies from any state.
var transitions = map[transitionKey]State{
	{stateIdle, SetupAck}:     stateSetupReady,
	{stateShutdown, SetupAck}: stateSetupReady,

	{stateIdle, RoastStart}:       stateRoasting,
	{stateShutdown, RoastStart}:   stateRoasting,
	{stateSetupReady, RoastStart}: stateRoasting,

	{stateSetupReady, RecordingStarted}: stateRecording,
	{stateRoasting, RecordingStarted}:   stateRecording,
	{stateRecording, RecordingStopped}:  stateRoasting,

	{stateSetupReady, RoastShutdown}: stateShutdown,
	{stateRoasting, RoastShutdown}:   stateShutdown,
	{stateRecording, RoastShutdown}:  stateShutdown,

	{stateShutdown, DeviceIdle}: stateIdle,
}

// Next is the pure transition function. ok is false when the pair is not
// defined, in which case the returned state equals from.
func Next(from State, ev Event) (State, bool) {
	if from.Phase != Roasting {
		from.Recording = false
	}
	if ev == RoastReset {
		return stateIdle, true
	}
	to, ok := transitions[transitionKey{from: from, ev: ev}]
	if !ok {
		return from, false
	}
	return to, true
}

// Machine holds the current lifecycle state. It is owned by a single writer.
type Machine struct {
	current State
	// OnIgnored, if set, is called for every undefined (state, event) pair.
	OnIgnored func(from State, ev Event)
}

// NewMachine returns a machine in Idle.
func NewMachine() *Machine {
	return &Machine{current: stateIdle}
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Apply transitions on ev and returns the resulting state. Undefined pairs
// leave the state unchanged.
func (m *Machine) Apply(ev Event) State {
	next, ok := Next(m.current, ev)
	if !ok && m.OnIgnored != nil {
		m.OnIgnored(m.current, ev)
	}
	m.current = next
	return next
}

// StartsSession reports whether moving from -> to begins a new roast.
func StartsSession(from, to State) bool {
	fresh := from.Phase == Idle || from.Phase == Shutdown
	live := to.Phase == SetupReady || to.Phase == Roasting
	return fresh && live
}
