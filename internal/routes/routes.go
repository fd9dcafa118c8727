// Package routes collects the service's HTTP endpoints and mounted
// applications and builds them into a single handler.
package routes

import (
	"log/slog"
	"net/http"
	"strings"
)

// Route is a single service endpoint.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// System defines route registration and handler building.
type System interface {
	RegisterRoute(route Route)
	Mount(prefix string, handler http.Handler)
	Routes() []Route
	Build() http.Handler
}

type mount struct {
	prefix  string
	handler http.Handler
}

type routes struct {
	routes []Route
	mounts []mount
	logger *slog.Logger
}

// New creates a route system with the specified logger.
func New(logger *slog.Logger) System {
	return &routes{
		logger: logger,
		routes: []Route{},
	}
}

func (r *routes) Routes() []Route {
	return r.routes
}

// RegisterRoute adds a route to the route system.
func (r *routes) RegisterRoute(route Route) {
	r.routes = append(r.routes, route)
}

// Mount serves handler for every path under prefix, with the prefix
// stripped. The bare prefix is served as the handler's root. An empty
// prefix mounts at the root and catches everything no registered route
// claims.
func (r *routes) Mount(prefix string, handler http.Handler) {
	r.mounts = append(r.mounts, mount{prefix: strings.TrimRight(prefix, "/"), handler: handler})
}

// Build constructs an http.Handler from all registered routes and mounts.
func (r *routes) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range r.routes {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
		r.logger.Debug("route registered", "method", route.Method, "pattern", route.Pattern)
	}

	for _, m := range r.mounts {
		if m.prefix == "" {
			mux.Handle("/", m.handler)
		} else {
			mux.Handle(m.prefix+"/", http.StripPrefix(m.prefix, m.handler))
			mux.Handle(m.prefix, atRoot(m.handler))
		}
		r.logger.Debug("handler mounted", "prefix", m.prefix+"/")
	}

	return mux
}

// atRoot serves the bare mount prefix as "/" so it is not redirected to
// the slash form, which TrimSlash would then redirect back.
func atRoot(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/"
		r2.URL.RawPath = ""
		h.ServeHTTP(w, r2)
	})
}
