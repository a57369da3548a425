package handler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/employee-directory/internal/errs"
	"github.com/deppfellow/employee-directory/internal/lib/export"
	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/deppfellow/employee-directory/internal/server"
	"github.com/deppfellow/employee-directory/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// DefaultLimit is the page size used when the client does not send one.
	DefaultLimit = 50

	exportFileLayout = "20060102-150405"
)

// EmployeeService is the business layer behind the employee routes.
type EmployeeService interface {
	SearchEmployees(ctx context.Context, search *string, limit, offset int) (model.EmployeeList, error)
	GetEmployeeByID(ctx context.Context, id int64) (model.Employee, error)
	CreateEmployee(ctx context.Context, fields model.EmployeeFields) (model.Employee, error)
	ExportEmployees(ctx context.Context, search *string) (*export.Workbook, error)
}

// bindSearch reads the optional search query parameter. A blank value
// means no filter.
func bindSearch(b *echo.ValueBinder) *string {
	var search string
	b.String("search", &search)

	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	return &search
}

// rejectBlank fails when a numeric query parameter is sent without a value,
// as in ?limit=. An absent parameter keeps its default.
func rejectBlank(c echo.Context, names ...string) error {
	query := c.QueryParams()
	for _, name := range names {
		values, ok := query[name]
		if ok && (len(values) == 0 || strings.TrimSpace(values[0]) == "") {
			return echo.NewBindingError(name, values, "empty value", nil)
		}
	}
	return nil
}

// SearchEmployeesRequest is GET /api/employees.
type SearchEmployeesRequest struct {
	Search *string `query:"search" validate:"omitempty,min=2,max=100"`
	Limit  int     `query:"limit" validate:"min=1,max=100"`
	Offset int     `query:"offset" validate:"min=0"`
}

func (r *SearchEmployeesRequest) Bind(c echo.Context) error {
	r.Limit = DefaultLimit

	if err := rejectBlank(c, "limit", "offset"); err != nil {
		return err
	}

	b := echo.QueryParamsBinder(c)
	r.Search = bindSearch(b)
	return b.
		Int("limit", &r.Limit).
		Int("offset", &r.Offset).
		BindError()
}

func (r *SearchEmployeesRequest) Validate() error {
	return validation.Struct(r)
}

// GetEmployeeRequest is GET /api/employees/:employee_id.
type GetEmployeeRequest struct {
	EmployeeID int64 `param:"employee_id"`
}

func (r *GetEmployeeRequest) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).
		MustInt64("employee_id", &r.EmployeeID).
		BindError()
}

// Validate accepts any integer; the range check belongs to the service.
func (r *GetEmployeeRequest) Validate() error {
	return nil
}

// CreateEmployeeRequest is the body of POST /api/employees.
type CreateEmployeeRequest struct {
	Name          string      `json:"name" validate:"required,max=100"`
	Email         string      `json:"email" validate:"required,email,max=150"`
	Department    string      `json:"department" validate:"required,max=100"`
	Designation   string      `json:"designation" validate:"required,max=100"`
	DateOfJoining *model.Date `json:"date_of_joining" validate:"required"`
}

// Bind decodes the JSON body and trims every text field, so whitespace
// alone never satisfies "required".
func (r *CreateEmployeeRequest) Bind(c echo.Context) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, r); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Department = strings.TrimSpace(r.Department)
	r.Designation = strings.TrimSpace(r.Designation)
	return nil
}

func (r *CreateEmployeeRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateEmployeeRequest) Fields() model.EmployeeFields {
	f := model.EmployeeFields{
		Name:        r.Name,
		Email:       r.Email,
		Department:  r.Department,
		Designation: r.Designation,
	}
	if r.DateOfJoining != nil {
		f.DateOfJoining = *r.DateOfJoining
	}
	return f
}

// ExportEmployeesRequest is GET /api/employees/export.
type ExportEmployeesRequest struct {
	Search *string `query:"search" validate:"omitempty,min=2,max=100"`
}

func (r *ExportEmployeesRequest) Bind(c echo.Context) error {
	b := echo.QueryParamsBinder(c)
	r.Search = bindSearch(b)
	return b.BindError()
}

func (r *ExportEmployeesRequest) Validate() error {
	return validation.Struct(r)
}

// EmployeeHandler serves the /api/employees routes.
type EmployeeHandler struct {
	Handler
	service EmployeeService
}

func NewEmployeeHandler(s *server.Server, service EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		Handler: NewHandler(s),
		service: service,
	}
}

func (h *EmployeeHandler) SearchEmployees(c echo.Context, req *SearchEmployeesRequest) (model.EmployeeList, error) {
	return h.service.SearchEmployees(detach(c), req.Search, req.Limit, req.Offset)
}

func (h *EmployeeHandler) GetEmployee(c echo.Context, req *GetEmployeeRequest) (model.Employee, error) {
	return h.service.GetEmployeeByID(detach(c), req.EmployeeID)
}

func (h *EmployeeHandler) CreateEmployee(c echo.Context, req *CreateEmployeeRequest) (model.Employee, error) {
	return h.service.CreateEmployee(detach(c), req.Fields())
}

// ExportEmployees answers with an xlsx workbook of every matching employee.
func (h *EmployeeHandler) ExportEmployees(c echo.Context, req *ExportEmployeesRequest) (*File, error) {
	wb, err := h.service.ExportEmployees(detach(c), req.Search)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		return nil, errs.Internal(errors.Wrap(err, "write workbook"))
	}

	return &File{
		Name:        fmt.Sprintf("employees-%s.xlsx", time.Now().UTC().Format(exportFileLayout)),
		ContentType: export.ContentType,
		Data:        buf.Bytes(),
	}, nil
}
