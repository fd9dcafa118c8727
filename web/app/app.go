// Package app provides the household-services page application: its route
// table, embedded view templates and static assets.
package app

import (
	"embed"
	"html/template"
	"log/slog"
	"maps"
	"net/http"

	"github.com/householdservices/portal/pkg/routes"
	"github.com/householdservices/portal/pkg/web"
)

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app.html"

// NotFound is rendered, with status 404, for paths no route matches.
var NotFound = web.View{Template: "404.html", Title: "Not Found"}

// Table returns the application route table in match order.
// Each call returns a fresh slice.
func Table() []routes.Entry[web.View] {
	return []routes.Entry[web.View]{
		{Path: "/", Name: "Home", Component: web.View{Template: "home.html", Title: "Home"}},
		{Path: "/login", Name: "Login", Component: web.View{Template: "login.html", Title: "Login"}},
		{Path: "/registor/customer", Name: "CustomerSignUp", Component: web.View{Template: "customer-signup.html", Title: "Customer Registration"}},
		{Path: "/registor/professional", Name: "ProfessionalSignUp", Component: web.View{Template: "professional-signup.html", Title: "Professional Registration"}},
		{Path: "/admin/dashboard", Name: "AdminDashboard", Component: web.View{Template: "admin-dashboard.html", Title: "Admin Dashboard"}},
		{Path: "/admin/services", Name: "AdminServices", Component: web.View{Template: "admin-services.html", Title: "Services"}},
		{Path: "/admin/service/update/:id", Name: "AdminUpdateService", Component: web.View{Template: "admin-service-update.html", Title: "Update Service"}, Props: true},
		{Path: "/admin/customers", Name: "AdminCustomers", Component: web.View{Template: "admin-customers.html", Title: "Customers"}},
		{Path: "/admin/professionals", Name: "AdminProfessionals", Component: web.View{Template: "admin-professionals.html", Title: "Professionals"}},
		{Path: "/customer/dashboard", Name: "CustomerDashboard", Component: web.View{Template: "customer-dashboard.html", Title: "Services"}},

		// Earlier revisions registered customers at /signup.
		{Path: "/signup", Redirect: "/registor/customer"},
	}
}

// Options configures NewModule.
type Options struct {
	BasePath string
	Title    string
	Logger   *slog.Logger
	Metrics  *web.Metrics
}

// Module is the page application mounted by the service.
type Module struct {
	router *web.Router
}

// NewModule compiles the route table, parses every view template and wires
// the view router. Any invalid route or template fails here.
func NewModule(opts Options) (*Module, error) {
	rt, err := routes.New(Table())
	if err != nil {
		return nil, err
	}

	funcs := web.Funcs(rt, opts.BasePath)
	maps.Copy(funcs, template.FuncMap{
		"site": func() string { return opts.Title },
	})

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		opts.BasePath,
		views(rt),
		funcs,
	)
	if err != nil {
		return nil, err
	}

	router, err := web.NewRouter(web.RouterConfig{
		Routes:    rt,
		Templates: ts,
		Layout:    layout,
		NotFound:  NotFound,
		Logger:    opts.Logger,
		Metrics:   opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	router.Handle("GET /public/", web.Static(publicFS, "public", "/public/"))

	return &Module{router: router}, nil
}

// Handler returns the module's HTTP handler. Paths are relative to the
// base path; callers mounting under a prefix strip it first.
func (m *Module) Handler() http.Handler {
	return m.router
}

// Routes returns the compiled route table.
func (m *Module) Routes() *routes.Router[web.View] {
	return m.router.Routes()
}

// Navigate redirects to the named route.
func (m *Module) Navigate(w http.ResponseWriter, r *http.Request, name string, params map[string]string) {
	m.router.Navigate(w, r, name, params)
}

func views(rt *routes.Router[web.View]) []web.View {
	out := []web.View{NotFound}
	for _, e := range rt.Entries() {
		if !e.IsRedirect() {
			out = append(out, e.Component)
		}
	}
	return out
}
