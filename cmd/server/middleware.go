package main

import (
	"log/slog"

	"github.com/householdservices/portal/internal/config"
	"github.com/householdservices/portal/pkg/middleware"
)

// buildMiddleware creates the middleware stack: request ids, request logging
// and canonical (slash-free) page URLs.
func buildMiddleware(logger *slog.Logger, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.RequestID())
	middlewareSys.Use(middleware.Logger(logger))
	middlewareSys.Use(middleware.TrimSlash(cfg.Web.BasePath + "/public/"))
	return middlewareSys
}
