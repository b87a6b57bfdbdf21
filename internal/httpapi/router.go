// Package httpapi wires the HTTP surface of the journal service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/journal/internal/service/entry"
)

// Server wires handlers and middleware using Chi around an entry service
// bound to one storage backend.
type Server struct {
	svc   entry.Service
	store entry.Store
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(store entry.Store, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		svc:   entry.New(store),
		store: store,
		rt:    r,
		log:   logger,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.With(s.parseCreateEntry()).Post("/entries", s.createEntry)
	// Original clients post with a trailing slash; accept both.
	s.rt.With(s.parseCreateEntry()).Post("/entries/", s.createEntry)
	s.rt.Get("/entries", s.listEntries)
	s.rt.Get("/entries/{id}", s.getEntry)
	s.rt.With(s.parseUpdateEntry()).Patch("/entries/{id}", s.updateEntry)
	s.rt.Delete("/entries/{id}", s.deleteEntry)
	s.rt.Delete("/entries", s.deleteAllEntries)
	// Health and metrics
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
