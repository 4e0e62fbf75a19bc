package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/api"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) Snapshot() dashboard.Snapshot {
	args := m.Called()
	return args.Get(0).(dashboard.Snapshot)
}

func readySnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		State: domain.StateReady,
		Report: &domain.AuditReport{
			Summary: domain.Summary{TotalMonthlySavings: 1234.5, ZombieCount: 1, Timestamp: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
			Instances: []domain.Instance{
				{ID: "i-1", Type: "m5.large", Owner: "ops", Rate: 1.5, Status: domain.StatusZombie, Platform: "AWS"},
			},
		},
		UpdatedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
}

func newTestHandler(snap dashboard.Snapshot) (*Handler, *mockSnapshots) {
	m := new(mockSnapshots)
	m.On("Snapshot").Return(snap)
	h := NewHandler(m, view.Renderer{})
	h.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 1, 0, time.UTC) }
	return h, m
}

func TestGetDashboard(t *testing.T) {
	h, m := newTestHandler(readySnapshot())

	rec := httptest.NewRecorder()
	h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var tree view.Tree
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tree))
	assert.Equal(t, view.KindDashboard, tree.Kind)
	require.NotNil(t, tree.Dashboard)
	assert.Equal(t, "$1,234.50", tree.Dashboard.Summary.MonthlyRecovery)
	assert.Equal(t, "$1,080", tree.Dashboard.Anomalies[0].MonthlyWaste)
	m.AssertExpectations(t)
}

func TestGetReport(t *testing.T) {
	h, _ := newTestHandler(readySnapshot())

	rec := httptest.NewRecorder()
	h.GetReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var report api.AuditReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.NotNil(t, report.Summary)
	assert.Equal(t, 1234.5, report.Summary.TotalMonthlySavings)
	assert.Equal(t, "2025-01-01T12:00:00Z", report.Summary.Timestamp)
	require.Len(t, report.Instances, 1)
	assert.Equal(t, "i-1", report.Instances[0].Id)
}

func TestGetReport_NoReport(t *testing.T) {
	h, _ := newTestHandler(dashboard.Snapshot{State: domain.StateFatal, Err: "GET http://backend/api/report: unexpected status 502"})

	rec := httptest.NewRecorder()
	h.GetReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "GET http://backend/api/report: unexpected status 502", body.Error)
}

func TestGetLogs(t *testing.T) {
	h, _ := newTestHandler(readySnapshot())

	rec := httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))

	var body api.LogsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Synthetic)
	require.Len(t, body.Entries, 3)
	assert.Equal(t, api.LogEntry{Time: "09:00:01", Tag: "SYSTEM", Msg: "engine initialized"}, body.Entries[0])
	assert.Equal(t, "target i-1 classified as ZOMBIE", body.Entries[2].Msg)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(readySnapshot())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body api.Health
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "READY", body.State)
	assert.Equal(t, "2026-10-19T09:00:00Z", body.UpdatedAt)
}
