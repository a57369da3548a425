package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/deppfellow/employee-directory/internal/errs"
	"github.com/deppfellow/employee-directory/internal/lib/export"
	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/deppfellow/employee-directory/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	MinLimit        = 1
	MaxLimit        = 100
	MinSearchLength = 2
	MaxSearchLength = 100

	// exportPageSize is the page size used when walking every match for an export.
	exportPageSize = MaxLimit
)

// EmployeeRepository is the data access the employee service depends on.
type EmployeeRepository interface {
	Search(ctx context.Context, filter repository.SearchFilter) ([]model.Employee, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Employee, int, error)
	GetByID(ctx context.Context, id int64) (model.Employee, error)
	GetByEmail(ctx context.Context, email string) (model.Employee, error)
	Create(ctx context.Context, fields model.EmployeeFields) (model.Employee, error)
}

// TransactionManager scopes a unit of work to one store session.
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// Notifier is told about newly created employees.
type Notifier interface {
	NotifyEmployeeCreated(ctx context.Context, e model.Employee) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// EmployeeService enforces the directory's business rules.
//
// Every error it returns is an *errs.Error. Store failures become
// errs.KindInternal with the original cause attached for logging.
type EmployeeService struct {
	repo     EmployeeRepository
	tx       TransactionManager
	notifier Notifier
	logger   *zerolog.Logger
}

// NewEmployeeService wires the service. tx and notifier may be nil.
func NewEmployeeService(repo EmployeeRepository, tx TransactionManager, notifier Notifier, logger *zerolog.Logger) *EmployeeService {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &EmployeeService{repo: repo, tx: tx, notifier: notifier, logger: logger}
}

// normalizeSearch trims the term and validates its length.
// A nil or blank term means "no filter" and yields "".
func normalizeSearch(search *string) (string, error) {
	if search == nil {
		return "", nil
	}

	term := strings.TrimSpace(*search)
	if term == "" {
		return "", nil
	}

	n := utf8.RuneCountInString(term)
	if n < MinSearchLength {
		return "", errs.InvalidArgumentf("Search term must be at least %d characters", MinSearchLength)
	}
	if n > MaxSearchLength {
		return "", errs.InvalidArgumentf("Search term must not exceed %d characters", MaxSearchLength)
	}
	return term, nil
}

func validatePage(limit, offset int) error {
	if limit < MinLimit || limit > MaxLimit {
		return errs.InvalidArgumentf("Limit must be between %d and %d", MinLimit, MaxLimit)
	}
	if offset < 0 {
		return errs.InvalidArgument("Offset must be non-negative")
	}
	return nil
}

// SearchEmployees returns one page of employees whose name or department
// contains search, or of all employees when search is nil or blank.
// Results are ordered by name, then id.
func (s *EmployeeService) SearchEmployees(ctx context.Context, search *string, limit, offset int) (model.EmployeeList, error) {
	if err := validatePage(limit, offset); err != nil {
		return model.EmployeeList{}, err
	}

	term, err := normalizeSearch(search)
	if err != nil {
		return model.EmployeeList{}, err
	}

	var (
		employees []model.Employee
		total     int
	)

	err = s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if term == "" {
			employees, total, err = s.repo.ListAll(ctx, limit, offset)
		} else {
			employees, total, err = s.repo.Search(ctx, repository.SearchFilter{
				Term:    term,
				Limit:   limit,
				Offset:  offset,
				OrderBy: repository.OrderByName,
			})
		}
		return err
	})
	if err != nil {
		return model.EmployeeList{}, errs.Internal(errors.Wrap(err, "search employees"))
	}

	if employees == nil {
		employees = []model.Employee{}
	}

	return model.EmployeeList{
		Employees: employees,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// GetEmployeeByID returns the employee with the given id.
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id int64) (model.Employee, error) {
	if id < 1 {
		return model.Employee{}, errs.InvalidArgument("Invalid employee ID")
	}

	var employee model.Employee
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		employee, err = s.repo.GetByID(ctx, id)
		return err
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return model.Employee{}, errs.NotFoundf("Employee with ID %d not found", id)
	case err != nil:
		return model.Employee{}, errs.Internal(errors.Wrapf(err, "get employee %d", id))
	}

	return employee, nil
}

// CreateEmployee stores a new employee after checking that the email is unused.
//
// The check and the insert are not atomic; when a concurrent create wins the
// race, the store's unique constraint rejects the insert and the caller still
// receives a Conflict.
func (s *EmployeeService) CreateEmployee(ctx context.Context, fields model.EmployeeFields) (model.Employee, error) {
	fields = normalizeFields(fields)
	conflict := errs.Conflictf("Employee with email %s already exists", fields.Email)

	var created model.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		_, err := s.repo.GetByEmail(ctx, fields.Email)
		switch {
		case err == nil:
			return conflict
		case !errors.Is(err, repository.ErrNotFound):
			return errors.Wrap(err, "check employee email")
		}

		created, err = s.repo.Create(ctx, fields)
		if err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return conflict
			}
			return errors.Wrap(err, "create employee")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return model.Employee{}, conflict
		}
		return model.Employee{}, errs.Internal(err)
	}

	s.logger.Info().
		Int64("employee_id", created.ID).
		Str("department", created.Department).
		Msg("employee created")

	s.notifyCreated(ctx, created)

	return created, nil
}

// notifyCreated is best effort: a failure is logged and never surfaces.
func (s *EmployeeService) notifyCreated(ctx context.Context, e model.Employee) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyEmployeeCreated(ctx, e); err != nil {
		s.logger.Warn().
			Err(err).
			Int64("employee_id", e.ID).
			Msg("failed to schedule welcome email")
	}
}

func normalizeFields(f model.EmployeeFields) model.EmployeeFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Department = strings.TrimSpace(f.Department)
	f.Designation = strings.TrimSpace(f.Designation)
	return f
}

// ExportEmployees renders every employee matching search (all employees
// when search is blank) into an xlsx workbook, in listing order.
func (s *EmployeeService) ExportEmployees(ctx context.Context, search *string) (*export.Workbook, error) {
	term, err := normalizeSearch(search)
	if err != nil {
		return nil, err
	}

	wb, err := export.NewWorkbook()
	if err != nil {
		return nil, errs.Internal(errors.Wrap(err, "create workbook"))
	}

	err = s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		for offset := 0; ; offset += exportPageSize {
			page, total, err := s.repo.Search(ctx, repository.SearchFilter{
				Term:    term,
				Limit:   exportPageSize,
				Offset:  offset,
				OrderBy: repository.OrderByName,
			})
			if err != nil {
				return err
			}
			if err := wb.Append(page); err != nil {
				return err
			}
			if len(page) < exportPageSize || offset+len(page) >= total {
				return nil
			}
		}
	})
	if err != nil {
		_ = wb.Close()
		return nil, errs.Internal(errors.Wrap(err, "export employees"))
	}

	return wb, nil
}
