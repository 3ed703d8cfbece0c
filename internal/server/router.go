package server

import (
	"net/http"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for routing.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the router's stack, applied in the order it's added.
//
// Middleware only wraps handlers registered after the call.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method and path, wrapped with all registered middleware.
//
// An empty method matches every method.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	pattern := path
	if method != "" {
		pattern = strings.ToUpper(method) + " " + path
	}
	r.mux.Handle(pattern, r.Apply(handler))
}

// Handler registers a custom Handler implementation under each of its [Handler.Routes].
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}
