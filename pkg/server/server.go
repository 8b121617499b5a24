package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/pipeline"
)

const (
	// DefaultMaxSessions bounds the number of live sessions; the least
	// recently used one is evicted when a new one is created.
	DefaultMaxSessions = 64

	// DefaultSessionTTL is how long an unused session survives.
	DefaultSessionTTL = 30 * time.Minute
)

// Options configures a [Server].
type Options struct {
	// Pipeline holds the default render options for static endpoints and
	// the configuration used by sessions.
	Pipeline    pipeline.Options
	Logger      *log.Logger
	MaxSessions int
	SessionTTL  time.Duration
	// Now is the session clock. It defaults to time.Now.
	Now func() time.Time
}

// Server serves one document.
type Server struct {
	runner *pipeline.Runner
	doc    *pipeline.Document
	opts   Options
	logger *log.Logger
	router chi.Router

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a server for doc. Rendering goes through runner so that
// static endpoints share its cache.
func New(runner *pipeline.Runner, doc *pipeline.Document, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pipeline.Logger == nil {
		opts.Pipeline.Logger = opts.Logger
	}
	if err := opts.Pipeline.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	s := &Server{
		runner:   runner,
		doc:      doc,
		opts:     opts,
		logger:   opts.Logger,
		sessions: make(map[string]*session),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/steps", func(r chi.Router) {
		r.Get("/", s.handleSteps)
		r.Get("/{n:[0-9]+}/layout", s.handleStepFormat(pipeline.FormatJSON, "application/json"))
		r.Get("/{n:[0-9]+}.svg", s.handleStepFormat(pipeline.FormatSVG, "image/svg+xml"))
		r.Get("/{n:[0-9]+}.png", s.handleStepFormat(pipeline.FormatPNG, "image/png"))
		r.Get("/{n:[0-9]+}/tree.svg", s.handleStepFormat(pipeline.FormatTree, "image/svg+xml"))
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleSessionState))
			r.Get("/scene.svg", s.withSession(s.handleSessionSVG))
			r.Post("/next", s.withSession(s.handleNavigate(navNext)))
			r.Post("/prev", s.withSession(s.handleNavigate(navPrev)))
			r.Post("/restart", s.withSession(s.handleNavigate(navRestart)))
			r.Post("/skip", s.withSession(s.handleSkip))
			r.Post("/goto/{n:[0-9]+}", s.withSession(s.handleNavigate(navGoTo)))
			r.Post("/resize", s.withSession(s.handleResize))
			r.Delete("/", s.handleDeleteSession)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "steps", s.doc.Steps())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps coded errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	var status int
	switch errors.CategoryOf(err) {
	case errors.CategoryLookup:
		status = http.StatusNotFound
	case errors.CategoryConfiguration, errors.CategorySemantic:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "err", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}
