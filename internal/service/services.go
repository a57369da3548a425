// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// shape-validated input from the handlers, enforces the business rules,
// runs repository calls inside store sessions and classifies every
// failure into an errs.Error.
package service

import (
	"github.com/deppfellow/employee-directory/internal/database"
	"github.com/deppfellow/employee-directory/internal/lib/job"
	"github.com/deppfellow/employee-directory/internal/repository"
	"github.com/deppfellow/employee-directory/internal/server"
)

type Services struct {
	Employee *EmployeeService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	var tx TransactionManager
	if s.DB != nil {
		tx = database.NewTransactionManager(s.DB.Pool)
	}

	return &Services{
		Employee: NewEmployeeService(repos.Employee, tx, notifier, s.Logger),
		Job:      s.Job,
	}, nil
}
