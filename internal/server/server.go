package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 30 * time.Second

// Config holds server configuration.
type Config struct {
	Port          int
	SiteDir       string   // directory served as static assets
	StaticExclude []string // doublestar globs hidden from the static mount
	AllowAll      bool     // allow all CORS origins
}

// Server serves the portfolio page, its assets and the JSON/websocket APIs.
type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server. root renders the root document; it answers "/"
// and every GET that matches no route and no static file.
func New(cfg Config, root http.Handler) *Server {
	s := &Server{cfg: cfg}
	s.router = s.buildRouter(root)
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter(root http.Handler) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Feature routes are registered by their packages via RegisterRoutes,
	// JSON endpoints through API and the websocket directly on Router.

	static := newStaticHandler(s.cfg.SiteDir, s.cfg.StaticExclude, root)
	r.Method(http.MethodGet, "/", root)
	r.Method(http.MethodHead, "/", root)
	r.NotFound(static.ServeHTTP)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// API registers JSON routes behind a request timeout. Websocket routes
// must go on Router instead.
func (s *Server) API(fn func(r chi.Router)) {
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		fn(r)
	})
}

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("portfolio server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
