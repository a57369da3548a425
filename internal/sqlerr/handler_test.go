package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/employee-directory/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_UniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "employees_email_key"`,
		TableName:      "employees",
		ConstraintName: "employees_email_key",
	}

	err := HandleError(fmt.Errorf("insert employee: %w", pgErr))

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindConflict, appErr.Kind)
	assert.Equal(t, "An Employee with this Email already exists", appErr.Message)
	assert.Equal(t, "EMPLOYEE_ALREADY_EXISTS", appErr.Code)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	t.Parallel()

	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "employees", ColumnName: "date_of_joining"})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindInvalidArgument, appErr.Kind)
	assert.Equal(t, "The Date Of Joining is required", appErr.Message)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "date_of_joining", appErr.Fields[0].Field)
}

func TestHandleError_NoRows(t *testing.T) {
	t.Parallel()

	err := HandleError(fmt.Errorf("get employee: %w", pgx.ErrNoRows))
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestHandleError_Internal(t *testing.T) {
	t.Parallel()

	cause := &pgconn.PgError{Code: "08006", Severity: "FATAL", Message: "connection failure"}
	err := HandleError(cause)

	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	assert.Equal(t, ConnectionFailure, ErrCode(err))

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)

	plain := errors.New("boom")
	assert.ErrorIs(t, HandleError(plain), plain)
	assert.Nil(t, HandleError(nil))
}

func TestHandleError_PassesClassifiedThrough(t *testing.T) {
	t.Parallel()

	in := errs.NotFound("Employee with ID 3 not found")
	assert.Same(t, in, HandleError(in))
}

func TestMapCode(t *testing.T) {
	t.Parallel()

	cases := map[string]Code{
		"23505": UniqueViolation,
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23514": CheckViolation,
		"22001": StringDataTruncation,
		"40001": SerializationFailure,
		"08001": ConnectionFailure,
		"XX000": Other,
	}

	for in, want := range cases {
		assert.Equal(t, want, MapCode(in), in)
	}

	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email", extractColumnForUniqueViolation("employees_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_employees_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("employees_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
