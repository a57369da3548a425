package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/employee-directory/internal/database"
	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/deppfellow/employee-directory/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when no employee matches a lookup.
var ErrNotFound = errors.New("employee not found")

// EmployeeRepository reads and writes the employees table.
//
// Every method runs against the transaction carried by ctx when there is
// one (see database.TransactionManager), otherwise against the pool.
type EmployeeRepository struct {
	db database.Queryer
}

func NewEmployeeRepository(db database.Queryer) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Designation, &e.DateOfJoining)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Employee{}, ErrNotFound
	}
	return e, err
}

// Search returns one page of employees whose name or department contains
// the filter term (case-insensitively), plus the total number of matches.
func (r *EmployeeRepository) Search(ctx context.Context, filter SearchFilter) ([]model.Employee, int, error) {
	exec := database.QueryerFromContext(ctx, r.db)

	countSQL, countArgs := filter.CountQuery()

	var total int
	if err := exec.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	pageSQL, pageArgs := filter.PageQuery()

	rows, err := exec.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]model.Employee, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, total, nil
}

// ListAll is Search without a term.
func (r *EmployeeRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Employee, int, error) {
	return r.Search(ctx, SearchFilter{Limit: limit, Offset: offset, OrderBy: OrderByName})
}

// GetByID returns ErrNotFound when no employee has the id.
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)

	e, err := scanEmployee(exec.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return model.Employee{}, fmt.Errorf("get employee %d: %w", id, err)
	}
	return e, err
}

// GetByEmail returns ErrNotFound when no employee has the exact email.
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)

	e, err := scanEmployee(exec.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return model.Employee{}, fmt.Errorf("get employee by email: %w", err)
	}
	return e, err
}

// Create inserts a new employee and returns it with its assigned id.
//
// A unique violation on email is returned as an errs.KindConflict error;
// any other failure is returned as-is for the caller to classify.
func (r *EmployeeRepository) Create(ctx context.Context, fields model.EmployeeFields) (model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)

	created, err := scanEmployee(exec.QueryRow(ctx, `
		INSERT INTO employees (name, email, department, designation, date_of_joining)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+employeeColumns,
		fields.Name,
		fields.Email,
		fields.Department,
		fields.Designation,
		fields.DateOfJoining,
	))
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return model.Employee{}, sqlerr.HandleError(err)
		}
		return model.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return created, nil
}

// CreateMany bulk-loads employees with COPY and returns the number of rows
// written. It is meant for seeding: a duplicate email fails the whole batch.
func (r *EmployeeRepository) CreateMany(ctx context.Context, fields []model.EmployeeFields) (int64, error) {
	exec := database.QueryerFromContext(ctx, r.db)

	n, err := exec.CopyFrom(ctx,
		pgx.Identifier{"employees"},
		[]string{"name", "email", "department", "designation", "date_of_joining"},
		pgx.CopyFromSlice(len(fields), func(i int) ([]any, error) {
			f := fields[i]
			return []any{f.Name, f.Email, f.Department, f.Designation, f.DateOfJoining}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy employees: %w", sqlerr.HandleError(err))
	}
	return n, nil
}

// Count returns the number of stored employees.
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	exec := database.QueryerFromContext(ctx, r.db)

	var total int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}
