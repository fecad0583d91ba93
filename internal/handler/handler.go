// Package handler exposes the dashboard over HTTP: JSON APIs for metrics
// and the staff network, gesture and relayout endpoints that drive the
// server-held scene and trend figure, and the dashboard page itself.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
	"github.com/TNKompanska19/Visualization-Group-25/internal/figure"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
	"github.com/TNKompanska19/Visualization-Group-25/internal/service"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// DashboardHandler handles dashboard API requests
type DashboardHandler struct {
	svc   *service.DashboardService
	bus   *service.EventBus
	graph *scene.Graph

	mu        sync.Mutex
	filter    service.Filter
	fig       figure.Figure
	highlight [2]float64
}

// defaultHighlight spans the full year
var defaultHighlight = [2]float64{figure.WeekDomainLo, figure.WeekDomainHi}

// NewDashboardHandler creates a handler over the given service and the
// server-held scene graph.
func NewDashboardHandler(svc *service.DashboardService, bus *service.EventBus, graph *scene.Graph) *DashboardHandler {
	h := &DashboardHandler{
		svc:       svc,
		bus:       bus,
		graph:     graph,
		highlight: defaultHighlight,
	}
	h.fig = figure.NewTrendFigure(svc.Services(h.filter), h.highlight, svc.Markers())
	return h
}

// GetMetrics returns the weekly metrics matching the current filter plus
// any query-string overrides.
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	f := h.currentFilter()
	overrideFilter(&f, r)
	writeJSON(w, h.svc.Services(f), http.StatusOK)
}

// GetSummaries returns per-department aggregates
func (h *DashboardHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	f := h.currentFilter()
	overrideFilter(&f, r)
	writeJSON(w, h.svc.Summaries(f), http.StatusOK)
}

// GetPatients returns the admission records matching the current filter
// plus any query-string overrides.
func (h *DashboardHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	f := h.currentFilter()
	overrideFilter(&f, r)
	writeJSON(w, h.svc.Patients(f), http.StatusOK)
}

// GetStays returns per-department length-of-stay aggregates
func (h *DashboardHandler) GetStays(w http.ResponseWriter, r *http.Request) {
	f := h.currentFilter()
	overrideFilter(&f, r)
	writeJSON(w, h.svc.StaySummaries(f), http.StatusOK)
}

// GetMarkers returns the calendar event markers
func (h *DashboardHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Markers(), http.StatusOK)
}

// GetDepartments returns the distinct department names
func (h *DashboardHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Departments(), http.StatusOK)
}

// PutFilters replaces the dashboard filter and rebuilds the trend figure
func (h *DashboardHandler) PutFilters(w http.ResponseWriter, r *http.Request) {
	var f service.Filter
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if f.WeekFrom < 0 || f.WeekTo < 0 || (f.WeekTo > 0 && f.WeekFrom > f.WeekTo) {
		writeError(w, "Invalid week range", "", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.filter = f
	h.fig = figure.NewTrendFigure(h.svc.Services(f), h.highlight, h.svc.Markers())
	h.mu.Unlock()

	h.svc.PublishFilters(f)
	writeJSON(w, f, http.StatusOK)
}

// GetFigure returns the current trend figure
func (h *DashboardHandler) GetFigure(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	fig := h.fig
	h.mu.Unlock()
	writeJSON(w, fig, http.StatusOK)
}

// PostHighlight applies a relayout payload to the trend figure. Responds
// 204 when the payload carries no usable x-range.
func (h *DashboardHandler) PostHighlight(w http.ResponseWriter, r *http.Request) {
	var payload figure.Relayout
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	updated, changed := figure.SyncHighlight(payload, h.fig, h.highlight)
	if !changed {
		h.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.fig = updated
	if lo, hi, ok := shapeRange(updated); ok {
		h.highlight = [2]float64{lo, hi}
	}
	highlight := h.highlight
	h.mu.Unlock()

	h.bus.Publish(service.Event{
		Type:    service.EventHighlightMoved,
		Payload: map[string]float64{"lo": highlight[0], "hi": highlight[1]},
	})
	writeJSON(w, updated, http.StatusOK)
}

// shapeRange reads the highlight window back out of the figure's first shape
func shapeRange(fig figure.Figure) (lo, hi float64, ok bool) {
	shapes := fig.Shapes()
	if len(shapes) == 0 {
		return 0, 0, false
	}
	shape, isMap := shapes[0].(map[string]any)
	if !isMap {
		return 0, 0, false
	}
	lo, okLo := shape["x0"].(float64)
	hi, okHi := shape["x1"].(float64)
	return lo, hi, okLo && okHi
}

// GraphSnapshot is the JSON shape of the staff network
type GraphSnapshot struct {
	Nodes     []*domain.Node             `json:"nodes"`
	Edges     []*domain.Edge             `json:"edges"`
	Positions map[string]domain.Position `json:"positions"`
}

// GetGraph returns the current staff network with positions
func (h *DashboardHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.snapshot(), http.StatusOK)
}

func (h *DashboardHandler) snapshot() GraphSnapshot {
	return GraphSnapshot{
		Nodes:     h.graph.Nodes(),
		Edges:     h.graph.Edges(),
		Positions: h.graph.Positions(),
	}
}

// NetworkRequest selects the department-week shown in the network widget
type NetworkRequest struct {
	Department string `json:"department"`
	Week       int    `json:"week"`
}

// PostNetwork rebuilds the staff network for a department-week. Weeks with
// corrupted source data snap to the nearest clean week.
func (h *DashboardHandler) PostNetwork(w http.ResponseWriter, r *http.Request) {
	var req NetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Department == "" {
		writeError(w, "Department required", "", http.StatusBadRequest)
		return
	}
	if req.Week < 1 || req.Week > 52 {
		writeError(w, "Week out of range", "", http.StatusBadRequest)
		return
	}

	week := domain.NearestValidWeek(req.Week)
	if week != req.Week {
		log.Debugf("week %d is corrupted, snapping to %d", req.Week, week)
	}

	if err := h.svc.BuildNetwork(h.graph, req.Department, week); err != nil {
		writeError(w, "Failed to build network", err.Error(), http.StatusNotFound)
		return
	}

	h.bus.Publish(service.Event{
		Type:    service.EventPositionsUpdated,
		Payload: h.graph.Positions(),
	})
	writeJSON(w, h.snapshot(), http.StatusOK)
}

// GestureRequest is one pointer gesture on a network node
type GestureRequest struct {
	Name   string           `json:"name"`
	NodeID string           `json:"node_id"`
	Pos    *domain.Position `json:"pos,omitempty"`
}

// PostGesture feeds a pointer gesture into the scene. The drag controller
// attached to the scene turns these into group moves.
func (h *DashboardHandler) PostGesture(w http.ResponseWriter, r *http.Request) {
	var req GestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.NodeID == "" {
		writeError(w, "Node ID required", "", http.StatusBadRequest)
		return
	}

	ev := scene.Event{Name: req.Name, NodeID: req.NodeID}
	if req.Pos != nil {
		ev.Pos = *req.Pos
	}

	switch req.Name {
	case scene.EventGrab, scene.EventFree:
		h.graph.Emit(ev)
	case scene.EventDrag:
		if req.Pos == nil {
			writeError(w, "Drag requires a position", "", http.StatusBadRequest)
			return
		}
		h.graph.SetPosition(req.NodeID, *req.Pos)
		h.graph.Emit(ev)
	default:
		writeError(w, "Unknown gesture", req.Name, http.StatusBadRequest)
		return
	}

	h.bus.Publish(service.Event{
		Type:    service.EventPositionsUpdated,
		Payload: h.graph.Positions(),
	})
	writeJSON(w, h.snapshot(), http.StatusOK)
}

// currentFilter returns a copy of the active filter
func (h *DashboardHandler) currentFilter() service.Filter {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.filter
	f.Departments = append([]string(nil), f.Departments...)
	return f
}

// overrideFilter applies query-string overrides on top of the stored filter
func overrideFilter(f *service.Filter, r *http.Request) {
	q := r.URL.Query()
	if depts, ok := q["department"]; ok {
		f.Departments = depts
	}
	if v := q.Get("week_from"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.WeekFrom = n
		}
	}
	if v := q.Get("week_to"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.WeekTo = n
		}
	}
	if v := q.Get("hide_anomalies"); v != "" {
		f.HideAnomalies = v == "1" || v == "true"
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("encode json: %v", err)
	}
}

func writeError(w http.ResponseWriter, msg, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Details: details}); err != nil {
		log.Errorf("encode error response: %v", err)
	}
}
