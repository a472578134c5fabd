package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"roast_monitor/internal/models"
)

// Outbound command names.
const (
	CommandMainFan = "main-fan"
	CommandHeater  = "heater"
	CommandReset   = "reset"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidPending = errors.New("toggle action must be \"true\" or \"false\"")
	ErrInvalidLevel   = errors.New("slider level out of range")
)

// buttonCommands maps each button action to the control that sent it.
var buttonCommands = map[models.ActionKind]string{
	models.ActionMock:        models.ControlMock,
	models.ActionSetup:       models.ControlSetup,
	models.ActionShutdown:    models.ControlShutdown,
	models.ActionStartMon:    models.ControlStartMonitor,
	models.ActionStopMon:     models.ControlStopMonitor,
	models.ActionDryEnd:      models.ControlDryEnd,
	models.ActionFirstCrack:  models.ControlFirstCrack,
	models.ActionSecondCrack: models.ControlSecondCrack,
	models.ActionDrop:        models.ControlDrop,
}

// milestoneButtons disable themselves on click until the session resets.
var milestoneButtons = []string{
	models.ControlDryEnd,
	models.ControlFirstCrack,
	models.ControlSecondCrack,
	models.ControlDrop,
}

var toggles = map[string]bool{
	models.ControlDrumMotor:    true,
	models.ControlCoolingMotor: true,
	models.ControlSolenoid:     true,
}

var sliderCommands = map[string]string{
	models.SliderFan:    CommandMainFan,
	models.SliderHeater: CommandHeater,
}

// sliderMax is the highest whole-number level each slider accepts; the
// lowest is 0.
var sliderMax = map[string]float64{
	models.SliderFan:    10,
	models.SliderHeater: 100,
}

// ValidateAction checks an action without applying it.
func ValidateAction(a models.Action) error {
	switch a.Kind {
	case models.ActionReset, models.ActionChartTitle:
		return nil
	case models.ActionToggle:
		if !toggles[a.Control] {
			return fmt.Errorf("%w: %q", ErrUnknownControl, a.Control)
		}
		if a.Pending != "true" && a.Pending != "false" {
			return ErrInvalidPending
		}
		return nil
	case models.ActionSlide:
		if _, ok := sliderCommands[a.Control]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownControl, a.Control)
		}
		limit := sliderMax[a.Control]
		v := a.Value
		if math.IsNaN(v) || v < 0 || v > limit || v != math.Trunc(v) {
			return fmt.Errorf("%w: %s must be a whole number from 0 to %g, got %g", ErrInvalidLevel, a.Control, limit, v)
		}
		return nil
	}
	if _, ok := buttonCommands[a.Kind]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

// ControlFor returns the panel control or slider an action comes from, or ""
// for actions with no control of their own.
func ControlFor(a models.Action) string {
	switch a.Kind {
	case models.ActionToggle, models.ActionSlide:
		return a.Control
	case models.ActionReset:
		return models.ControlReset
	}
	return buttonCommands[a.Kind]
}

// IsToggle reports whether id is a device toggle.
func IsToggle(id string) bool {
	return toggles[id]
}

// HandleAction translates one operator action into its outbound command.
// The panel only changes for the local guards: slider readouts follow the
// drag and milestone buttons disable themselves. Everything else waits for
// the server's confirmation.
func (s *Synchronizer) HandleAction(ctx context.Context, a models.Action) error {
	s.ctx = ctx
	if err := ValidateAction(a); err != nil {
		return err
	}

	switch a.Kind {
	case models.ActionChartTitle:
		s.title, s.subtitle = a.Title, a.Subtitle
		return nil
	case models.ActionReset:
		props := a.Properties
		if props == nil {
			props = map[string]any{}
		}
		s.emit(CommandReset, props)
		return nil
	case models.ActionToggle:
		s.emit(a.Control, a.Pending)
		return nil
	case models.ActionSlide:
		level := int(a.Value)
		s.panel.Slider(a.Control).SetValue(float64(level))
		s.emit(sliderCommands[a.Control], level)
		return nil
	}

	s.emit(string(a.Kind), nil)
	if id := buttonCommands[a.Kind]; isMilestoneButton(id) {
		s.panel.Control(id).SetEnabled(false)
	}
	return nil
}

func (s *Synchronizer) emit(command string, data any) {
	if s.commands == nil {
		s.log.Warnw("command_dropped_no_transport", "command", command)
		s.metrics.command(command, false)
		return
	}
	if err := s.commands.Emit(command, data); err != nil {
		s.log.Errorw("command_emit_failed", "command", command, "err", err)
		s.metrics.command(command, false)
		s.report(models.IncidentCommandFailed, "emit "+command+": "+err.Error(), map[string]any{"command": command})
		return
	}
	s.metrics.command(command, true)
	s.log.Debugw("command_emitted", "command", command, "data", data)
}

func isMilestoneButton(id string) bool {
	for _, m := range milestoneButtons {
		if m == id {
			return true
		}
	}
	return false
}
