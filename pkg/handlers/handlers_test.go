package handlers_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/householdservices/portal/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"map", http.StatusOK, map[string]string{"message": "hello"}, `{"message":"hello"}`},
		{"slice", http.StatusOK, []int{1, 2}, `[1,2]`},
		{"created", http.StatusCreated, struct {
			Path string `json:"path"`
		}{"/login"}, `{"path":"/login"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondJSON(w, tt.status, tt.data)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	w := httptest.NewRecorder()
	handlers.RespondError(w, logger, http.StatusNotFound, errors.New("route not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"route not found"}` {
		t.Errorf("body = %q", got)
	}
	if !strings.Contains(buf.String(), "handler error") {
		t.Errorf("error not logged: %s", buf.String())
	}
}

func TestRespondText(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondText(w, http.StatusServiceUnavailable, "NOT READY")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if w.Body.String() != "NOT READY" {
		t.Errorf("body = %q, want %q", w.Body.String(), "NOT READY")
	}
}
