// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/filmdeck are allowed to import net/http server primitives.
  - The UI websocket is the one route outside the request timeout.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/config"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
	"github.com/taibuivan/filmdeck/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all configured deps are healthy.
	Readiness http.HandlerFunc

	// UI serves the page shell and the session patch protocol.
	UI *UIHandler

	// Catalog re-serves the film source in the remote service's schema.
	Catalog *film.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context, middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, cfg.AllowedOriginSuffix))
	r.Use(chimw.CleanPath)

	// # Live Channel
	// Long-lived, so it stays out of the timeout group.
	r.Get("/ui/sessions/{sessionID}/ws", h.UI.Stream)

	r.Group(func(timed chi.Router) {
		timed.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		// # Infrastructure Endpoints
		timed.Get("/health", h.Liveness)
		timed.Get("/ready", h.Readiness)

		// # Catalogue API
		timed.Mount("/api/v1", h.Catalog.Routes())

		// # User Interface
		timed.Mount("/", h.UI.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			// WriteTimeout stays zero: it would cut websocket streams.
		},
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// # Origin Policy

// SameOriginOrAllowed accepts websocket upgrades from the page's own host,
// any origin in development, and origins ending in the configured suffix.
func SameOriginOrAllowed(cfg *config.Config) func(*http.Request) bool {
	return func(request *http.Request) bool {
		origin := request.Header.Get(constants.HeaderOrigin)
		if origin == "" || cfg.IsDevelopment() {
			return true
		}
		parsed, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return parsed.Host == request.Host || strings.HasSuffix(parsed.Host, cfg.AllowedOriginSuffix)
	}
}
