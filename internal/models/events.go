package models

import (
	"github.com/goccy/go-json"
)

// EventName identifies a transport event, inbound or outbound.
type EventName string

// Inbound events.
const (
	EventConnect    EventName = "connect"
	EventDisconnect EventName = "disconnect"
	EventInit       EventName = "init"
	EventState      EventName = "state"
	EventError      EventName = "error"
	EventActivity   EventName = "activity"
)

// Envelope is one frame on the device connection.
type Envelope struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// InitPayload is sent by the device server right after a client connects.
type InitPayload struct {
	State    Flag           `json:"state"` // serial link open
	Settings DeviceSettings `json:"settings"`
}

// DeviceSettings is the last configuration pushed to the roaster.
type DeviceSettings struct {
	Heater       *float64 `json:"heater,omitempty"`
	Fan          *float64 `json:"fan,omitempty"`
	MainFan      *float64 `json:"main_fan,omitempty"`
	DrumMotor    Flag     `json:"drum_motor"`
	CoolingMotor Flag     `json:"cooling_motor"`
	Solenoid     Flag     `json:"solenoid"`
}

// StatePayload is one telemetry sample plus the server's view of the roast.
type StatePayload struct {
	Config   map[string]any `json:"config"`
	Roasting Flag           `json:"roasting"`
	Roast    *RoastRecord   `json:"roast,omitempty"`
	Time     *float64       `json:"time,omitempty"`     // minutes since monitoring began
	AltTime  *float64       `json:"alt_time,omitempty"` // x for the delta series
}

// Recording reports whether the server is recording the roast.
func (p StatePayload) Recording() bool {
	return p.Roast != nil && bool(p.Roast.Record)
}

// RoastRecord carries the server-side roast properties. Milestone readings
// persist in every payload once set.
type RoastRecord struct {
	Record       Flag     `json:"record"`
	Charge       *Reading `json:"charge,omitempty"`
	TurningPoint *Reading `json:"turning_point,omitempty"`
	Last         *Reading `json:"last,omitempty"`

	Name     string `json:"name,omitempty"`
	Coffee   string `json:"coffee,omitempty"`
	Operator string `json:"operator,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Reading is a timestamped bean temperature, used for milestone markers.
type Reading struct {
	Time     *float64 `json:"time,omitempty"`
	BeanTemp *float64 `json:"bean_temp,omitempty"`
}

// Valid reports whether both coordinates are present.
func (r *Reading) Valid() bool {
	return r != nil && r.Time != nil && r.BeanTemp != nil
}

// Activity kinds emitted by the device server.
const (
	ActivityDrumMotor       = "DRUM_MOTOR"
	ActivityCoolingMotor    = "COOLING_MOTOR"
	ActivitySolenoid        = "SOLENOID"
	ActivityMainFan         = "MAIN_FAN"
	ActivityHeater          = "HEATER"
	ActivityRoastStart      = "ROAST_START"
	ActivityRoastShutdown   = "ROAST_SHUTDOWN"
	ActivityRoastReset      = "ROAST_RESET"
	ActivityRoastProperties = "ROAST_PROPERTIES"
	ActivityStartMonitor    = "START_MONITOR"
	ActivityStopMonitor     = "STOP_MONITOR"
	ActivityDryEnd          = "DRY_END"
	ActivityFirstCrack      = "FIRST_CRACK"
	ActivitySecondCrack     = "SECOND_CRACK"
	ActivityDropCoffee      = "DROP_COFFEE"
)

// ActivityPayload is a discrete notification. State is polymorphic: a bool
// for toggles, a number for fan/heater, the roast record for milestones.
type ActivityPayload struct {
	Activity string          `json:"activity"`
	State    json.RawMessage `json:"state,omitempty"`
	Text     string          `json:"text,omitempty"`
}

// ErrorPayload is a transport-level error reported by the server.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
