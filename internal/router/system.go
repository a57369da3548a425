package router

import (
	"github.com/deppfellow/employee-directory/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// employee API: info, health and docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Info.GetInfo)
	r.GET("/health", h.Health.CheckHealth)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.StaticFS("/static", handler.StaticFiles())
}
