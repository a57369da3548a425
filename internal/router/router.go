// Package router builds the echo instance: it installs the middleware
// chain and the error handler and maps paths onto handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/employee-directory/internal/handler"
	"github.com/deppfellow/employee-directory/internal/middleware"
	"github.com/deppfellow/employee-directory/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the fully wired echo instance.
//
// Middleware order matters: the request id must exist before the context
// logger is built, and the New Relic transaction must exist before the
// tracing and context middleware read it. Recover runs innermost so a
// panic is logged with the request logger and reaches the error handler.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerEmployeeRoutes(router.Group("/api/employees"), h)

	return router
}

func registerEmployeeRoutes(g *echo.Group, h *handler.Handlers) {
	e := h.Employee

	g.GET("", handler.Handle(e.Handler, e.SearchEmployees, http.StatusOK))
	g.POST("", handler.Handle(e.Handler, e.CreateEmployee, http.StatusCreated))
	g.GET("/export", handler.HandleFile(e.Handler, e.ExportEmployees, http.StatusOK))
	g.GET("/:employee_id", handler.Handle(e.Handler, e.GetEmployee, http.StatusOK))
}
