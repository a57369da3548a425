// Package repository handles all interactions with the database.
//
// It contains the raw SQL and the query builder that turn search filters
// into parameterized statements, keeping SQL out of the service layer.
package repository

import (
	"github.com/deppfellow/employee-directory/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Employee *EmployeeRepository
}

// NewRepositories builds every repository on top of the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Employee: NewEmployeeRepository(s.DB.Pool),
	}
}
