// Package ui holds the operator panel state: buttons, toggles, sliders,
// numeric readouts and status indicators.
package ui

import (
	"sort"
	"sync"

	"roast_monitor/internal/models"
)

// Control is a button or toggle on the panel.
type Control interface {
	SetEnabled(enabled bool)
	SetLabel(text string)
	SetPendingAction(action string)
}

// Slider is a numeric input with a readout.
type Slider interface {
	SetValue(v float64)
	SetEnabled(enabled bool)
}

// Panel is everything the synchronizer writes to.
type Panel interface {
	Control(id string) Control
	Slider(id string) Slider
	SetReadout(key, text string)
	BlankReadouts()
	SetConnected(connected bool)
	SetMonitoring(monitoring bool)
}

var defaultButtons = []string{
	models.ControlMock,
	models.ControlSetup,
	models.ControlShutdown,
	models.ControlStartMonitor,
	models.ControlStopMonitor,
	models.ControlReset,
	models.ControlDryEnd,
	models.ControlFirstCrack,
	models.ControlSecondCrack,
	models.ControlDrop,
}

var defaultToggles = []string{
	models.ControlDrumMotor,
	models.ControlCoolingMotor,
	models.ControlSolenoid,
}

// Board is the in-memory Panel. Writes come from one goroutine; snapshots
// may be taken from any.
type Board struct {
	mu         sync.RWMutex
	controls   map[string]*models.ControlState
	sliders    map[string]*models.SliderState
	readouts   map[string]string
	connected  bool
	monitoring bool
}

// NewBoard returns a board with the standard controls registered.
func NewBoard() *Board {
	b := &Board{
		controls: make(map[string]*models.ControlState),
		sliders:  make(map[string]*models.SliderState),
		readouts: make(map[string]string),
	}
	for _, id := range defaultButtons {
		b.controls[id] = &models.ControlState{ID: id, Enabled: true}
	}
	for _, id := range defaultToggles {
		b.controls[id] = &models.ControlState{ID: id, Enabled: true, Label: models.LabelTurnOn, PendingAction: "true"}
	}
	for _, id := range []string{models.SliderFan, models.SliderHeater} {
		b.sliders[id] = &models.SliderState{ID: id}
	}
	return b
}

type controlHandle struct {
	b  *Board
	id string
}

func (h controlHandle) update(fn func(c *models.ControlState)) {
	h.b.mu.Lock()
	defer h.b.mu.Unlock()
	c, ok := h.b.controls[h.id]
	if !ok {
		c = &models.ControlState{ID: h.id}
		h.b.controls[h.id] = c
	}
	fn(c)
}

func (h controlHandle) SetEnabled(enabled bool) {
	h.update(func(c *models.ControlState) { c.Enabled = enabled })
}

func (h controlHandle) SetLabel(text string) {
	h.update(func(c *models.ControlState) { c.Label = text })
}

func (h controlHandle) SetPendingAction(action string) {
	h.update(func(c *models.ControlState) { c.PendingAction = action })
}

type sliderHandle struct {
	b  *Board
	id string
}

func (h sliderHandle) update(fn func(s *models.SliderState)) {
	h.b.mu.Lock()
	defer h.b.mu.Unlock()
	s, ok := h.b.sliders[h.id]
	if !ok {
		s = &models.SliderState{ID: h.id}
		h.b.sliders[h.id] = s
	}
	fn(s)
}

func (h sliderHandle) SetValue(v float64) {
	h.update(func(s *models.SliderState) { s.Value = v })
}

func (h sliderHandle) SetEnabled(enabled bool) {
	h.update(func(s *models.SliderState) { s.Enabled = enabled })
}

// Control returns a handle to the control id, creating it on first write.
func (b *Board) Control(id string) Control {
	return controlHandle{b: b, id: id}
}

// Slider returns a handle to the slider id, creating it on first write.
func (b *Board) Slider(id string) Slider {
	return sliderHandle{b: b, id: id}
}

// SetReadout sets the text of a numeric readout.
func (b *Board) SetReadout(key, text string) {
	b.mu.Lock()
	b.readouts[key] = text
	b.mu.Unlock()
}

// BlankReadouts empties every readout, keeping the keys.
func (b *Board) BlankReadouts() {
	b.mu.Lock()
	for k := range b.readouts {
		b.readouts[k] = ""
	}
	b.mu.Unlock()
}

// SetConnected sets the connectivity indicator.
func (b *Board) SetConnected(connected bool) {
	b.mu.Lock()
	b.connected = connected
	b.mu.Unlock()
}

// SetMonitoring sets the monitor indicator.
func (b *Board) SetMonitoring(monitoring bool) {
	b.mu.Lock()
	b.monitoring = monitoring
	b.mu.Unlock()
}

// ControlState returns one control by value.
func (b *Board) ControlState(id string) (models.ControlState, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.controls[id]
	if !ok {
		return models.ControlState{}, false
	}
	return *c, true
}

// SliderState returns one slider by value.
func (b *Board) SliderState(id string) (models.SliderState, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.sliders[id]
	if !ok {
		return models.SliderState{}, false
	}
	return *s, true
}

// Readout returns the text of one readout.
func (b *Board) Readout(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readouts[key]
}

// ReadoutKeys returns the readout keys in sorted order.
func (b *Board) ReadoutKeys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.readouts))
	for k := range b.readouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot copies the board.
func (b *Board) Snapshot() models.PanelSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := models.PanelSnapshot{
		Connected:  b.connected,
		Monitoring: b.monitoring,
		Controls:   make(map[string]models.ControlState, len(b.controls)),
		Sliders:    make(map[string]models.SliderState, len(b.sliders)),
		Readouts:   make(map[string]string, len(b.readouts)),
	}
	for id, c := range b.controls {
		out.Controls[id] = *c
	}
	for id, s := range b.sliders {
		out.Sliders[id] = *s
	}
	for k, v := range b.readouts {
		out.Readouts[k] = v
	}
	return out
}
