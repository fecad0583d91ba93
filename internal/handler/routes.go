package handler

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes assembles the HTTP router. events handles the SSE stream.
func Routes(h *DashboardHandler, events http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsMiddleware)

	r.Get("/", h.Page)
	r.Handle("/events", events)

	r.Route("/api", func(r chi.Router) {
		r.Get("/metrics", h.GetMetrics)
		r.Get("/summaries", h.GetSummaries)
		r.Get("/patients", h.GetPatients)
		r.Get("/stays", h.GetStays)
		r.Get("/events", h.GetMarkers)
		r.Get("/departments", h.GetDepartments)
		r.Put("/filters", h.PutFilters)
		r.Get("/figure", h.GetFigure)
		r.Post("/highlight", h.PostHighlight)
		r.Get("/graph", h.GetGraph)
		r.Post("/network", h.PostNetwork)
		r.Post("/gesture", h.PostGesture)
	})

	return r
}

// requestLogger logs one line per request
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debugf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// corsMiddleware allows the dashboard to be embedded during development
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
