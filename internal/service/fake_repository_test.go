package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/deppfellow/employee-directory/internal/errs"
	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/deppfellow/employee-directory/internal/repository"
)

// memoryRepository is an in-memory EmployeeRepository with the same
// matching, ordering and uniqueness rules as the PostgreSQL one.
type memoryRepository struct {
	mu     sync.Mutex
	rows   []model.Employee
	nextID int64

	// failWith makes every call fail.
	failWith error
	// hideEmails makes GetByEmail miss, simulating a concurrent insert
	// that lands between the pre-check and the insert.
	hideEmails bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1}
}

func (r *memoryRepository) sorted(match func(model.Employee) bool) []model.Employee {
	out := make([]model.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func page(all []model.Employee, limit, offset int) []model.Employee {
	if offset >= len(all) {
		return []model.Employee{}
	}
	end := min(offset+limit, len(all))
	return append([]model.Employee{}, all[offset:end]...)
}

func (r *memoryRepository) Search(_ context.Context, f repository.SearchFilter) ([]model.Employee, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, 0, r.failWith
	}

	term := strings.ToLower(strings.TrimSpace(f.Term))
	all := r.sorted(func(e model.Employee) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Department), term)
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *memoryRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Employee, int, error) {
	return r.Search(ctx, repository.SearchFilter{Limit: limit, Offset: offset})
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return model.Employee{}, r.failWith
	}
	for _, e := range r.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Employee{}, repository.ErrNotFound
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return model.Employee{}, r.failWith
	}
	if !r.hideEmails {
		for _, e := range r.rows {
			if e.Email == email {
				return e, nil
			}
		}
	}
	return model.Employee{}, repository.ErrNotFound
}

func (r *memoryRepository) Create(_ context.Context, f model.EmployeeFields) (model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return model.Employee{}, r.failWith
	}
	for _, e := range r.rows {
		if e.Email == f.Email {
			return model.Employee{}, errs.Conflict("An Employee with this Email already exists")
		}
	}

	e := model.Employee{
		ID:            r.nextID,
		Name:          f.Name,
		Email:         f.Email,
		Department:    f.Department,
		Designation:   f.Designation,
		DateOfJoining: f.DateOfJoining,
	}
	r.nextID++
	r.rows = append(r.rows, e)
	return e, nil
}

func (r *memoryRepository) seed(n int, department string) {
	for i := 0; i < n; i++ {
		_, _ = r.Create(context.Background(), model.EmployeeFields{
			Name:          fmt.Sprintf("%s Person %02d", department, i),
			Email:         fmt.Sprintf("%s.%d@example.com", strings.ToLower(department), i),
			Department:    department,
			Designation:   "Staff",
			DateOfJoining: model.NewDate(2020, 1, 1),
		})
	}
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []model.Employee
	err     error
}

func (n *recordingNotifier) NotifyEmployeeCreated(_ context.Context, e model.Employee) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, e)
	return n.err
}

type countingTx struct {
	readOnly, readWrite int
}

func (c *countingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	c.readOnly++
	return fn(ctx)
}

func (c *countingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	c.readWrite++
	return fn(ctx)
}

var errStoreDown = errors.New("store unavailable")
