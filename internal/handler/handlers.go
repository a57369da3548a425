package handler

import (
	"github.com/deppfellow/employee-directory/internal/server"
	"github.com/deppfellow/employee-directory/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	Info     *InfoHandler
	OpenAPI  *OpenAPIHandler
	Employee *EmployeeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Info:     NewInfoHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Employee: NewEmployeeHandler(s, services.Employee),
	}
}
