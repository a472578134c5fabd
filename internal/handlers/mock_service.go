package handlers

import (
	"context"
	"time"

	"roast_monitor/internal/models"
	"roast_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDashboard struct {
	snap     models.DashboardSnapshot
	chart    models.ChartSnapshot
	err      error
	chartErr error
}

func (m *mockDashboard) Controls(ctx context.Context) (models.DashboardSnapshot, error) {
	return m.snap, m.err
}
func (m *mockDashboard) Chart(ctx context.Context) (models.ChartSnapshot, error) {
	return m.chart, m.chartErr
}

type mockOperator struct {
	err     error
	actions []models.Action
}

func (m *mockOperator) Do(ctx context.Context, a models.Action) error {
	m.actions = append(m.actions, a)
	return m.err
}

type mockIncidents struct {
	resp     []models.Incident
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastKind string
}

func (m *mockIncidents) Report(ctx context.Context, kind, description string, metadata any) {}

func (m *mockIncidents) List(ctx context.Context, f service.LogFilter) ([]models.Incident, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastKind = f.Kind
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
