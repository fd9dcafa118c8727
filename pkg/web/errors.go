package web

import (
	"errors"
	"net/http"

	"github.com/householdservices/portal/pkg/routes"
)

// MapHTTPStatus maps route resolution errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, routes.ErrNotFound), errors.Is(err, routes.ErrUnknownRoute):
		return http.StatusNotFound
	case errors.Is(err, routes.ErrMissingParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
