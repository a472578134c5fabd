package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roast_monitor/internal/models"
	"roast_monitor/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	incidents := []models.Incident{
		{ID: "i1", OccurredAt: now, Kind: models.IncidentDataQuality, Description: "out-of-order sample on bean_temp"},
		{ID: "i2", OccurredAt: now.Add(time.Second), Kind: models.IncidentDataQuality, Description: "out-of-order sample on environment_temp"},
	}
	logs := &mockIncidents{resp: incidents}
	r := newTestRouter(&service.Service{Incidents: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=notatime", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&kind=data_quality"
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, q, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count     int               `json:"count"`
		Incidents []models.Incident `json:"incidents"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Incidents) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastKind != models.IncidentDataQuality {
		t.Fatalf("expected lastKind DATA_QUALITY, got %q", logs.lastKind)
	}
	if !logs.lastFrom.Equal(now) {
		t.Fatalf("from: got %v, want %v", logs.lastFrom, now)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockIncidents{}
	r := newTestRouter(&service.Service{Incidents: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2025-08-01&to=2025-08-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := time.Date(2025, 8, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("to: got %v, want %v", logs.lastTo, want)
	}
}

func TestLogsHandler_RangeAndServiceErrors(t *testing.T) {
	logs := &mockIncidents{err: errors.New("db down")}
	r := newTestRouter(&service.Service{Incidents: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2025-08-02&to=2025-08-01", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?to=yesterday", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'to', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on service error, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	for _, s := range []string{"2025-08-27T15:04:05Z", "2025-08-27 15:04:05", "2025-08-27"} {
		if _, err := parseQueryTime(s); err != nil {
			t.Fatalf("parseQueryTime(%q): %v", s, err)
		}
	}
	if _, err := parseQueryTime("27/08/2025"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}
