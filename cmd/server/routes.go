package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/householdservices/portal/internal/config"
	"github.com/householdservices/portal/internal/routes"
	"github.com/householdservices/portal/pkg/handlers"
	pkgroutes "github.com/householdservices/portal/pkg/routes"
	"github.com/householdservices/portal/pkg/web"
)

// routeInfo describes one route table entry for inspection.
type routeInfo struct {
	Path     string `json:"path"`
	Name     string `json:"name,omitempty"`
	View     string `json:"view,omitempty"`
	Title    string `json:"title,omitempty"`
	Props    bool   `json:"props,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, svc *Service, cfg *config.Config, registry *prometheus.Registry) {
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, svc)
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/api/routes",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondJSON(w, http.StatusOK, describeRoutes(svc))
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/api/routes/{name}",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleRouteLookup(w, r, svc)
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/api/routes/{name}/url",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleRouteURL(w, r, svc, cfg.Web.BasePath)
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/go/{name}",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			svc.app.Navigate(w, r, r.PathValue("name"), queryParams(r))
		},
	})

	if cfg.Metrics.IsEnabled() {
		r.RegisterRoute(routes.Route{
			Method:  "GET",
			Pattern: cfg.Metrics.Path,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP,
		})
	}

	r.Mount(cfg.Web.BasePath, svc.app.Handler())
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, "OK")
}

func handleReadinessCheck(w http.ResponseWriter, svc *Service) {
	if !svc.Ready() {
		handlers.RespondText(w, http.StatusServiceUnavailable, "NOT READY")
		return
	}
	handlers.RespondText(w, http.StatusOK, "READY")
}

// handleRouteLookup returns the entry registered under the path's name.
func handleRouteLookup(w http.ResponseWriter, r *http.Request, svc *Service) {
	name := r.PathValue("name")
	e, ok := svc.app.Routes().Lookup(name)
	if !ok {
		handlers.RespondError(w, svc.logger, http.StatusNotFound, fmt.Errorf("%w: %q", pkgroutes.ErrUnknownRoute, name))
		return
	}
	handlers.RespondJSON(w, http.StatusOK, toRouteInfo(e))
}

// handleRouteURL builds the URL of a named route, taking parameter values
// from the query string.
func handleRouteURL(w http.ResponseWriter, r *http.Request, svc *Service, basePath string) {
	u, err := svc.app.Routes().URL(r.PathValue("name"), queryParams(r))
	if err != nil {
		handlers.RespondError(w, svc.logger, web.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"url": basePath + u})
}

// queryParams takes the first value of each query parameter as a route param.
func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func describeRoutes(svc *Service) []routeInfo {
	entries := svc.app.Routes().Entries()
	out := make([]routeInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRouteInfo(e))
	}
	return out
}

func toRouteInfo(e pkgroutes.Entry[web.View]) routeInfo {
	return routeInfo{
		Path:     e.Path,
		Name:     e.Name,
		View:     e.Component.Template,
		Title:    e.Component.Title,
		Props:    e.Props,
		Redirect: e.Redirect,
	}
}
