// Package api declares the JSON and monitoring routes of the front-end.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/heroes/internal/view"
)

// Views is what the JSON handlers need from the view runtime.
type Views interface {
	View(ctx context.Context, id string) (view.State, error)
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	viewsHandler  *ViewsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(views Views, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		viewsHandler:  NewViewsHandler(views),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/views/{id}", MetricsMiddleware(s.viewsHandler.HandleGetView, "api_view"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
