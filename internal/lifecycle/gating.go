package lifecycle

// Gating is the set of operator controls a lifecycle state allows.
type Gating struct {
	Mock         bool
	Setup        bool
	Shutdown     bool
	StartMonitor bool
	StopMonitor  bool
	Reset        bool
	Sliders      bool
	ZeroSliders  bool // move both sliders back to 0
}

// GatingFor returns the control gating for s.
func GatingFor(s State) Gating {
	switch s.Phase {
	case SetupReady:
		return liveGating
	case Roasting:
		if s.Recording {
			return Gating{StopMonitor: true, Sliders: true}
		}
		return liveGating
	case Shutdown:
		return Gating{Mock: true, Setup: true, Reset: true, ZeroSliders: true}
	default:
		return Gating{Mock: true, Setup: true, ZeroSliders: true}
	}
}

var liveGating = Gating{
	Shutdown:     true,
	StartMonitor: true,
	StopMonitor:  true,
	Reset:        true,
	Sliders:      true,
}
