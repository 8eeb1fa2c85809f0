package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/leetmommy/leetmommy"
)

// ShutdownTimeout is the time given for outstanding requests to finish before shutdown.
const ShutdownTimeout = 5 * time.Second

// HealthChecker reports whether the index engine is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server represents the JSON API server. It wraps all HTTP functionality
// used by the application so that dependent packages don't need to refer
// to net/http directly.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *http.ServeMux

	// Bind address to open.
	Addr string

	// Cohorts accepted by every cohort-scoped endpoint.
	Cohorts leetmommy.Cohorts

	// Services used by the various HTTP routes.
	Indexer leetmommy.CohortIndexer
	Search  leetmommy.SearchService
	Runs    leetmommy.CrawlRunService
	Health  HealthChecker

	Logger *slog.Logger
}

// NewServer returns a new instance of Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		router: http.NewServeMux(),
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server = &http.Server{Handler: s}

	s.router.HandleFunc("GET /{$}", s.handlePing)
	s.router.HandleFunc("GET /ping", s.handlePing)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("POST /scrape", s.handleScrape)
	s.router.HandleFunc("GET /search", s.handleSearch)
	s.router.HandleFunc("GET /autocomplete", s.handleAutocomplete)
	s.router.HandleFunc("GET /crawls", s.handleCrawls)

	return s
}

// Open validates the server options and begins listening on the bind address.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP handles a request through the CORS and logging middleware.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logRequests(allowCORS(s.router)).ServeHTTP(w, r)
}

// allowCORS permits cross-origin requests from any origin.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests logs every request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
