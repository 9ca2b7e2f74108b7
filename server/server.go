// Package server exposes the layout pipeline over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ByLCY/sitelen/pipeline"
	canvasrenderer "github.com/ByLCY/sitelen/renderer/canvas"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Render canvasrenderer.Options
	// Timeout bounds the layout work of one request. Zero means no limit.
	Timeout time.Duration
}

// Server is the HTTP API server for sitelen.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	opts   Options
	log    *log.Logger
}

// NewServer creates and configures the HTTP server. A nil logger falls back to
// log.Default().
func NewServer(runner *pipeline.Runner, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		opts:   opts,
		log:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RenderID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(Deadline(s.opts.Timeout))
		r.Post("/parse", s.handleParse)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
