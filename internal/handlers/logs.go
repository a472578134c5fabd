package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"roast_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeInvalid = "'from' must be <= 'to'"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List incidents
// @Description  Error events, protocol anomalies, data-quality warnings and failed commands of this process. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2025-08-31)
// @Param        kind  query   string  false  "Incident kind"  Enums(ERROR_EVENT,PROTOCOL_ANOMALY,DATA_QUALITY,COMMAND_FAILED)
// @Success      200   {object}  map[string]interface{}  "count, incidents"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	from, to, msg := parseRange(c.Query("from"), c.Query("to"))
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	kind := strings.ToUpper(strings.TrimSpace(c.Query("kind")))

	incidents, err := h.services.Incidents.List(c.Request.Context(), service.LogFilter{
		From: from,
		To:   to,
		Kind: kind,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load logs", "logs_list_failed", err,
			"from", from, "to", to, "kind", kind)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(incidents),
		"incidents": incidents,
	})
}

// parseRange parses the optional bounds. A date-only 'to' covers that whole
// day. msg is the client error, empty on success.
func parseRange(fromQS, toQS string) (from, to time.Time, msg string) {
	var err error
	if fromQS != "" {
		if from, err = parseQueryTime(fromQS); err != nil {
			return time.Time{}, time.Time{}, errFromInvalid
		}
	}
	if toQS != "" {
		if to, err = parseQueryTime(toQS); err != nil {
			return time.Time{}, time.Time{}, errToInvalid
		}
		if isDateOnly(toQS) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, errRangeInvalid
	}
	return from, to, ""
}

// parseQueryTime accepts RFC3339, 'YYYY-MM-DD HH:MM:SS' and 'YYYY-MM-DD', in UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
