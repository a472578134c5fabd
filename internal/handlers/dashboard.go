package handlers

import (
	"net/http"

	"roast_monitor/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errGetDashboard    = "failed to load dashboard"
	errGetChart        = "failed to load chart"
	errInvalidBodyPref = "invalid body: "
)

// ChartTitleRequest sets the title applied to the chart when the roast shuts down.
type ChartTitleRequest struct {
	Title    string `json:"title" example:"Ethiopia Guji"`
	Subtitle string `json:"subtitle,omitempty" example:"batch 12"`
}

// @Summary      Dashboard
// @Description  Roast session, control gating, slider values and readouts
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.DashboardSnapshot
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	snap, err := h.services.Dashboard.Controls(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetDashboard, "dashboard_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Chart
// @Description  Every series and milestone annotation of the current roast
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.ChartSnapshot
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/chart [get]
func (h *Handler) getChart(c *gin.Context) {
	snap, err := h.services.Dashboard.Chart(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetChart, "chart_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Set chart title
// @Description  Stored locally; applied when the roaster shuts down
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      ChartTitleRequest  true  "Title payload"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/chart/title [put]
func (h *Handler) setChartTitle(c *gin.Context) {
	var req ChartTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.submit(c, models.Action{Kind: models.ActionChartTitle, Title: req.Title, Subtitle: req.Subtitle})
}
