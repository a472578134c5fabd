package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"roast_monitor/internal/models"

	"github.com/gin-gonic/gin"
)

const statusQueued = "queued"

// ResetRequest carries the roast properties sent with a reset.
type ResetRequest struct {
	Properties map[string]any `json:"properties,omitempty"`
}

// ControlRequest toggles a device output. An empty action uses the one the
// panel currently offers.
type ControlRequest struct {
	Action string `json:"action" example:"true"`
}

// SliderRequest sets a slider level: a whole number, 0-10 for fan and
// 0-100 for heater.
type SliderRequest struct {
	Value *float64 `json:"value" binding:"required" example:"5"`
}

// @Summary      Press a button
// @Description  mock, roaster-setup, roaster-shutdown, start-monitor, stop-monitor, dry-end, first-crack, second-crack, drop or reset
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        action  path      string        true   "Action"  Enums(mock,roaster-setup,roaster-shutdown,start-monitor,stop-monitor,dry-end,first-crack,second-crack,drop,reset)
// @Param        body    body      ResetRequest  false  "Roast properties (reset only)"
// @Success      202     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Router       /api/v1/actions/{action} [post]
func (h *Handler) postAction(c *gin.Context) {
	kind := models.ActionKind(strings.TrimSpace(c.Param("action")))
	switch kind {
	case models.ActionToggle, models.ActionSlide, models.ActionChartTitle:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action: " + string(kind)})
		return
	}

	a := models.Action{Kind: kind}
	if kind == models.ActionReset {
		var req ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
		a.Properties = req.Properties
	}
	h.submit(c, a)
}

// @Summary      Toggle a device output
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        control  path      string          true   "Control"  Enums(drum-motor,cooling-motor,solenoid)
// @Param        body     body      ControlRequest  false  "Requested state"
// @Success      202      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/v1/controls/{control} [post]
func (h *Handler) postControl(c *gin.Context) {
	var req ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.submit(c, models.Action{
		Kind:    models.ActionToggle,
		Control: c.Param("control"),
		Pending: strings.ToLower(strings.TrimSpace(req.Action)),
	})
}

// @Summary      Move a slider
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        slider  path      string         true  "Slider"  Enums(fan,heater)
// @Param        body    body      SliderRequest  true  "Level"
// @Success      202     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Router       /api/v1/sliders/{slider} [post]
func (h *Handler) postSlider(c *gin.Context) {
	var req SliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.submit(c, models.Action{Kind: models.ActionSlide, Control: c.Param("slider"), Value: *req.Value})
}

func (h *Handler) submit(c *gin.Context, a models.Action) {
	if err := h.services.Operator.Do(c.Request.Context(), a); err != nil {
		code := statusForActionError(err)
		if code == http.StatusInternalServerError {
			h.logAndJSONError(c, code, "failed to queue action", "action_submit_failed", err, "kind", a.Kind)
			return
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": statusQueued, "action": string(a.Kind)})
}
