package handler

import (
	"net/http"

	"github.com/deppfellow/employee-directory/internal/server"
	"github.com/labstack/echo/v4"
)

// Version is the API version reported by GET /.
const Version = "1.0.0"

type APIInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

type InfoHandler struct {
	Handler
}

func NewInfoHandler(s *server.Server) *InfoHandler {
	return &InfoHandler{Handler: NewHandler(s)}
}

// GetInfo points clients at the docs and health endpoints.
func (h *InfoHandler) GetInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, APIInfo{
		Message: "Employee Directory API",
		Version: Version,
		Docs:    "/docs",
		Health:  "/health",
	})
}
