package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// FeedServer serves the latest batch as a JSON array on GET /, the
// contract the agent's feed client polls.
type FeedServer struct {
	router *chi.Mux
	srv    *http.Server
	holder *Holder
	logger *slog.Logger
}

func NewFeedServer(port int, holder *Holder, logger *slog.Logger) *FeedServer {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &FeedServer{
		router: router,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
		holder: holder,
		logger: logger,
	}

	router.Get("/", s.latest)
	router.Get("/health", s.health)

	return s
}

func (s *FeedServer) Start() error {
	s.logger.Info("feed server starting", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *FeedServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *FeedServer) latest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(s.holder.Latest())
}

func (s *FeedServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
