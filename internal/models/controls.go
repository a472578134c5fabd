package models

// Action buttons.
const (
	ControlMock         = "mock"
	ControlSetup        = "setup"
	ControlShutdown     = "shutdown"
	ControlStartMonitor = "start-monitor"
	ControlStopMonitor  = "stop-monitor"
	ControlReset        = "reset"
	ControlDryEnd       = "dry-end"
	ControlFirstCrack   = "first-crack"
	ControlSecondCrack  = "second-crack"
	ControlDrop         = "drop"
)

// Device toggles. The id doubles as the outbound command name.
const (
	ControlDrumMotor    = "drum-motor"
	ControlCoolingMotor = "cooling-motor"
	ControlSolenoid     = "solenoid"
)

// Sliders.
const (
	SliderFan    = "fan"
	SliderHeater = "heater"
)

// Toggle labels sent by the server.
const (
	LabelTurnOn  = "Turn On"
	LabelTurnOff = "Turn Off"
)

// ControlState is what an operator control currently shows.
type ControlState struct {
	ID            string `json:"id"`
	Enabled       bool   `json:"enabled"`
	Label         string `json:"label,omitempty"`
	PendingAction string `json:"pending_action,omitempty"` // value the next click sends
}

// SliderState is a slider position and whether it accepts input.
type SliderState struct {
	ID      string  `json:"id"`
	Value   float64 `json:"value"`
	Enabled bool    `json:"enabled"`
}

// PanelSnapshot is a copy of the operator panel.
type PanelSnapshot struct {
	Connected  bool                    `json:"connected"`
	Monitoring bool                    `json:"monitoring"`
	Controls   map[string]ControlState `json:"controls"`
	Sliders    map[string]SliderState  `json:"sliders"`
	Readouts   map[string]string       `json:"readouts"`
}

// RoastSession identifies one physical roast from setup until reset.
type RoastSession struct {
	RoastID    string         `json:"roast_id"`
	Lifecycle  string         `json:"lifecycle"`
	Recording  bool           `json:"recording"`
	Properties map[string]any `json:"properties,omitempty"`
}

// DashboardSnapshot is the combined view served to operators.
type DashboardSnapshot struct {
	Session RoastSession  `json:"session"`
	Panel   PanelSnapshot `json:"panel"`
}
