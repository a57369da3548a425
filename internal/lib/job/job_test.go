package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/employee-directory/internal/lib/email"
	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type fakeSender struct {
	to   string
	data email.WelcomeData
	err  error
}

func (f *fakeSender) SendWelcomeEmail(to string, data email.WelcomeData) error {
	f.to, f.data = to, data
	return f.err
}

var created = model.Employee{
	ID:            9,
	Name:          "Ada Lovelace",
	Email:         "ada@example.com",
	Department:    "Research",
	Designation:   "Analyst",
	DateOfJoining: model.NewDate(2023, time.April, 1),
}

func TestNotifyEmployeeCreated(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	enq := &fakeEnqueuer{}
	svc := NewJobServiceWith(enq, &fakeSender{}, &log)

	require.NoError(t, svc.NotifyEmployeeCreated(context.Background(), created))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskWelcome, enq.tasks[0].Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, int64(9), p.EmployeeID)
	assert.Equal(t, "ada@example.com", p.To)
	assert.Equal(t, "2023-04-01", p.DateOfJoining)
}

func TestNotifyEmployeeCreated_EnqueueFailure(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	svc := NewJobServiceWith(&fakeEnqueuer{err: errors.New("redis down")}, &fakeSender{}, &log)

	assert.ErrorContains(t, svc.NotifyEmployeeCreated(context.Background(), created), "redis down")
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	sender := &fakeSender{}
	svc := NewJobServiceWith(&fakeEnqueuer{}, sender, &log)

	task, err := NewWelcomeEmailTask(created)
	require.NoError(t, err)

	require.NoError(t, svc.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, "ada@example.com", sender.to)
	assert.Equal(t, "Ada Lovelace", sender.data.Name)
	assert.Equal(t, "Research", sender.data.Department)
}

func TestHandleWelcomeEmailTask_BadPayload(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	svc := NewJobServiceWith(&fakeEnqueuer{}, &fakeSender{}, &log)

	err := svc.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTask_SendFailureRetries(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	svc := NewJobServiceWith(&fakeEnqueuer{}, &fakeSender{err: errors.New("smtp")}, &log)

	task, err := NewWelcomeEmailTask(created)
	require.NoError(t, err)

	err = svc.handleWelcomeEmailTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
