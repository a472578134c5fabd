package models

// ActionKind is an operator input.
type ActionKind string

// Button actions map 1:1 onto the outbound command of the same name.
const (
	ActionMock        ActionKind = "mock"
	ActionSetup       ActionKind = "roaster-setup"
	ActionShutdown    ActionKind = "roaster-shutdown"
	ActionStartMon    ActionKind = "start-monitor"
	ActionStopMon     ActionKind = "stop-monitor"
	ActionDryEnd      ActionKind = "dry-end"
	ActionFirstCrack  ActionKind = "first-crack"
	ActionSecondCrack ActionKind = "second-crack"
	ActionDrop        ActionKind = "drop"
	ActionReset       ActionKind = "reset"

	ActionToggle     ActionKind = "toggle"      // Control + Pending
	ActionSlide      ActionKind = "slide"       // Control + Value
	ActionChartTitle ActionKind = "chart-title" // local only
)

// Action is a single operator input.
type Action struct {
	Kind       ActionKind     `json:"kind"`
	Control    string         `json:"control,omitempty"`
	Pending    string         `json:"pending,omitempty"`
	Value      float64        `json:"value,omitempty"`
	Title      string         `json:"title,omitempty"`
	Subtitle   string         `json:"subtitle,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}
