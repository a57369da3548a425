package seed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

type fakeStore struct {
	existing int
	countErr error
	written  []model.EmployeeFields
}

func (f *fakeStore) Count(context.Context) (int, error) {
	return f.existing, f.countErr
}

func (f *fakeStore) CreateMany(_ context.Context, fields []model.EmployeeFields) (int64, error) {
	f.written = append(f.written, fields...)
	return int64(len(fields)), nil
}

func newSeeder(store Store) *Seeder {
	logger := zerolog.Nop()
	return NewSeeder(store, NewGenerator(42, today), &logger)
}

func TestGenerator_UniqueEmails(t *testing.T) {
	t.Parallel()

	// Far more employees than name combinations forces numbered emails.
	employees := NewGenerator(1, today).Generate(1000)
	require.Len(t, employees, 1000)

	seen := make(map[string]bool, len(employees))
	for _, e := range employees {
		assert.False(t, seen[e.Email], e.Email)
		seen[e.Email] = true
	}
}

func TestGenerator_ValidFields(t *testing.T) {
	t.Parallel()

	oldest := today.AddDate(0, 0, -joiningWindowDays)
	for _, e := range NewGenerator(7, today).Generate(200) {
		assert.NotEmpty(t, e.Name)
		assert.True(t, strings.HasSuffix(e.Email, "@"+DefaultDomain), e.Email)
		assert.Contains(t, designations[e.Department], e.Designation)
		assert.False(t, e.DateOfJoining.After(today), e.DateOfJoining)
		assert.False(t, e.DateOfJoining.Before(oldest), e.DateOfJoining)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewGenerator(9, today).Generate(20), NewGenerator(9, today).Generate(20))
}

func TestSeeder_EmptyDirectory(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	n, err := newSeeder(store).Seed(context.Background(), 25, false)

	require.NoError(t, err)
	assert.Equal(t, int64(25), n)
	assert.Len(t, store.written, 25)
}

func TestSeeder_SkipsPopulatedDirectory(t *testing.T) {
	t.Parallel()

	store := &fakeStore{existing: 3}
	n, err := newSeeder(store).Seed(context.Background(), 25, false)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, store.written)
}

func TestSeeder_ForceUsesFreshDomain(t *testing.T) {
	t.Parallel()

	store := &fakeStore{existing: 3}
	n, err := newSeeder(store).Seed(context.Background(), 5, true)

	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	for _, e := range store.written {
		assert.True(t, strings.HasSuffix(e.Email, "@batch3.company.com"), e.Email)
	}
}

func TestSeeder_Errors(t *testing.T) {
	t.Parallel()

	_, err := newSeeder(&fakeStore{}).Seed(context.Background(), 0, false)
	assert.Error(t, err)

	countErr := errors.New("connection refused")
	_, err = newSeeder(&fakeStore{countErr: countErr}).Seed(context.Background(), 5, false)
	assert.ErrorIs(t, err, countErr)
}
