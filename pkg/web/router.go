package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/householdservices/portal/pkg/routes"
)

// RouterConfig wires a Router to its route table and templates.
type RouterConfig struct {
	Routes    *routes.Router[View]
	Templates *TemplateSet
	Layout    string
	NotFound  View
	Logger    *slog.Logger
	Metrics   *Metrics
}

// Router is the navigation host for a route table. Auxiliary handlers
// registered with Handle take precedence; every other GET or HEAD request is
// resolved against the table and rendered, redirected, or answered with the
// not-found view.
type Router struct {
	mux       *http.ServeMux
	routes    *routes.Router[View]
	templates *TemplateSet
	layout    string
	notFound  View
	logger    *slog.Logger
	metrics   *Metrics
}

// NewRouter verifies that every view referenced by the table, and the
// not-found view, has a parsed template.
func NewRouter(cfg RouterConfig) (*Router, error) {
	if cfg.Routes == nil {
		return nil, errors.New("web: router requires a route table")
	}
	if cfg.Templates == nil {
		return nil, errors.New("web: router requires templates")
	}

	for _, e := range cfg.Routes.Entries() {
		if e.IsRedirect() {
			continue
		}
		if !cfg.Templates.Has(e.Component.Template) {
			return nil, fmt.Errorf("web: route %s: template %q not loaded", e.Path, e.Component.Template)
		}
	}
	if !cfg.Templates.Has(cfg.NotFound.Template) {
		return nil, fmt.Errorf("web: not-found template %q not loaded", cfg.NotFound.Template)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Router{
		mux:       http.NewServeMux(),
		routes:    cfg.Routes,
		templates: cfg.Templates,
		layout:    cfg.Layout,
		notFound:  cfg.NotFound,
		logger:    logger,
		metrics:   cfg.Metrics,
	}, nil
}

// Handle registers an auxiliary handler, such as static assets, that is
// consulted before the route table.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers an auxiliary handler function.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Routes returns the route table the router resolves against.
func (r *Router) Routes() *routes.Router[View] {
	return r.routes
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, pattern := r.mux.Handler(req); pattern != "" {
		h.ServeHTTP(w, req)
		return
	}

	start := time.Now()

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		r.metrics.observe("", OutcomeMethodNotAllowed, time.Since(start))
		return
	}

	match, err := r.routes.Resolve(req.URL.EscapedPath())
	if err != nil {
		r.renderNotFound(w, req)
		r.metrics.observe("", OutcomeNotFound, time.Since(start))
		return
	}

	entry := match.Entry

	if entry.IsRedirect() {
		target := r.templates.BasePath() + entry.Redirect
		if req.URL.RawQuery != "" {
			target += "?" + req.URL.RawQuery
		}
		http.Redirect(w, req, target, http.StatusMovedPermanently)
		r.metrics.observe(entry.Path, OutcomeRedirect, time.Since(start))
		return
	}

	data := ViewData{
		Title: entry.Component.Title,
		Path:  req.URL.Path,
		Props: match.Props(),
	}

	if err := r.templates.Render(w, http.StatusOK, r.layout, entry.Component.Template, data); err != nil {
		r.logger.Error("render failed", "route", entry.Path, "view", entry.Component.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		r.metrics.observe(entry.Path, OutcomeError, time.Since(start))
		return
	}

	r.logger.Debug("view rendered", "route", entry.Path, "name", entry.Name, "path", req.URL.Path)
	r.metrics.observe(entry.Path, OutcomeRender, time.Since(start))
}

// Navigate redirects the client to the named route with 303 See Other.
// An unknown name renders the not-found view; a missing parameter is a
// bad request.
func (r *Router) Navigate(w http.ResponseWriter, req *http.Request, name string, params map[string]string) {
	u, err := r.routes.URL(name, params)
	if err != nil {
		r.logger.Warn("navigation failed", "name", name, "error", err)
		status := MapHTTPStatus(err)
		if status == http.StatusNotFound {
			r.renderNotFound(w, req)
			return
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Redirect(w, req, r.templates.BasePath()+u, http.StatusSeeOther)
}

func (r *Router) renderNotFound(w http.ResponseWriter, req *http.Request) {
	data := ViewData{Title: r.notFound.Title, Path: req.URL.Path}
	if err := r.templates.Render(w, http.StatusNotFound, r.layout, r.notFound.Template, data); err != nil {
		r.logger.Error("render not-found failed", "path", req.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
