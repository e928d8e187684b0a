package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pulseops/regionpulse/internal/happiness"
)

// Server is the agent's diagnostic API: liveness plus read-only views
// of the happiness tracker.
type Server struct {
	router  *chi.Mux
	srv     *http.Server
	tracker *happiness.Tracker
}

func NewServer(port int, tracker *happiness.Tracker) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
		tracker: tracker,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/agent/status", s.status)
	router.Get("/api/v1/agent/regions", s.regions)

	return s
}

func (s *Server) Start() error {
	slog.Info("agent API server starting", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	snaps := s.tracker.Snapshots()
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":   "regionpulse",
		"status":  "polling",
		"regions": len(snaps),
	})
}

// regions exposes deep-copied tracker state, so serving a response
// while the cycle writes scores is safe.
func (s *Server) regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Snapshots())
}
