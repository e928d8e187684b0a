package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pulseops/regionpulse/internal/report"
	"github.com/pulseops/regionpulse/internal/store"
)

// ReporterServer exposes the report sink over HTTP: agents POST
// submissions to / and the dashboard reads the buffer from /reports.
type ReporterServer struct {
	router *chi.Mux
	srv    *http.Server
	store  *store.Store
	logger *slog.Logger
}

func NewReporterServer(port int, st *store.Store, logger *slog.Logger) *ReporterServer {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors)

	s := &ReporterServer{
		router: router,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
		store:  st,
		logger: logger,
	}

	router.Post("/", s.ingest)
	router.Get("/reports", s.list)
	router.Get("/health", s.health)
	router.Options("/*", s.preflight)

	return s
}

// cors keeps the dashboard (a browser client on another origin) able to
// read the buffer.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func (s *ReporterServer) Start() error {
	s.logger.Info("reporter server starting", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *ReporterServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// ingest accepts one submission per call. Undecodable JSON or a payload
// missing its region or action is rejected without touching the store.
func (s *ReporterServer) ingest(w http.ResponseWriter, r *http.Request) {
	var sub report.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.logger.Warn("rejected report payload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": fmt.Sprintf("invalid JSON: %v", err),
		})
		return
	}
	if sub.Region == "" || sub.Decision.Action == "" {
		s.logger.Warn("rejected report payload", "region", sub.Region, "action", sub.Decision.Action)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "region and decision.action are required",
		})
		return
	}

	stored := s.store.Ingest(sub)
	s.logger.Info("report received",
		"id", stored.ID,
		"region", stored.Region,
		"action", stored.Decision.Action,
	)

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Report received",
	})
}

func (s *ReporterServer) list(w http.ResponseWriter, r *http.Request) {
	reports := s.store.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"count":   len(reports),
		"reports": reports,
	})
}

func (s *ReporterServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *ReporterServer) preflight(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
