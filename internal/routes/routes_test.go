package routes_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/householdservices/portal/internal/routes"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestRegisterRoute(t *testing.T) {
	sys := routes.New(slog.New(slog.DiscardHandler))

	sys.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		},
	})

	if len(sys.Routes()) != 1 {
		t.Fatalf("Routes() length = %d, want 1", len(sys.Routes()))
	}

	rec := httptest.NewRecorder()
	sys.Build().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("got %d %q, want 200 %q", rec.Code, rec.Body.String(), "OK")
	}
}

func TestMount_Root(t *testing.T) {
	sys := routes.New(slog.New(slog.DiscardHandler))
	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("health"))
	}})
	sys.Mount("", http.HandlerFunc(echoPath))

	handler := sys.Build()

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "health"},
		{"/admin/dashboard", "/admin/dashboard"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestMount_Prefix(t *testing.T) {
	sys := routes.New(slog.New(slog.DiscardHandler))
	sys.Mount("/portal/", http.HandlerFunc(echoPath))

	handler := sys.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/login", nil))
	if rec.Body.String() != "/login" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "/login")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/", nil))
	if rec.Body.String() != "/" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "/")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "/" {
		t.Errorf("bare prefix: got %d %q, want 200 %q", rec.Code, rec.Body.String(), "/")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d outside prefix", rec.Code, http.StatusNotFound)
	}
}
