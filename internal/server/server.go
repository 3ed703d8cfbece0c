// package server contains middleware & handlers for the dashboard JSON API
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers that own a set of routes.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

const shutdownTimeout = 5 * time.Second

// Server runs an [http.Server] until its context is cancelled.
type Server struct {
	http   *http.Server
	logger *log.Logger
}

// NewServer creates a [Server] listening on addr.
func NewServer(addr string, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: shared.WithLogger(logger, "component", "server"),
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("error shutting down server", "error", err)
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
