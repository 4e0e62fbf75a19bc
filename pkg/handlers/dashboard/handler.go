package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/adapters"
	"github.com/de-tools/cloudcull-console/pkg/models/api"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/view"
	"github.com/rs/zerolog"
)

type SnapshotProvider interface {
	Snapshot() dashboard.Snapshot
}

type Handler struct {
	snapshots SnapshotProvider
	renderer  view.Renderer
	now       func() time.Time
}

func NewHandler(snapshots SnapshotProvider, renderer view.Renderer) *Handler {
	return &Handler{
		snapshots: snapshots,
		renderer:  renderer,
		now:       time.Now,
	}
}

// GetDashboard returns the rendered view tree of the latest snapshot.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	tree := h.renderer.Render(h.snapshots.Snapshot(), h.now())
	writeJSON(w, r, http.StatusOK, tree)
}

// GetReport returns the held report in the backend wire format. Without a
// report it answers 404 with an error document.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Snapshot()
	if snap.Report == nil {
		msg := "no report received yet"
		if snap.Err != "" {
			msg = snap.Err
		}
		writeJSON(w, r, http.StatusNotFound, api.ErrorResponse{Error: msg})
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapAuditReportDomainToApi(*snap.Report))
}

// GetLogs returns the log the console currently displays, real or
// synthesized.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Snapshot()
	writeJSON(w, r, http.StatusOK, api.LogsResponse{
		Synthetic: snap.Synthetic(),
		Entries:   adapters.MapLogEntriesDomainToApi(snap.LogEntries(h.now())),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Snapshot()
	writeJSON(w, r, http.StatusOK, api.Health{
		State:     snap.State.String(),
		UpdatedAt: snap.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
