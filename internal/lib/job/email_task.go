package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/hibiken/asynq"
)

// TaskWelcome is the task type of the welcome email.
const TaskWelcome = "email:welcome"

// WelcomeEmailPayload is stored in Redis as JSON.
type WelcomeEmailPayload struct {
	EmployeeID    int64  `json:"employee_id"`
	To            string `json:"to"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	DateOfJoining string `json:"date_of_joining"`
}

// NewWelcomeEmailTask builds the welcome email task for a created employee.
func NewWelcomeEmailTask(e model.Employee) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		EmployeeID:    e.ID,
		To:            e.Email,
		Name:          e.Name,
		Department:    e.Department,
		Designation:   e.Designation,
		DateOfJoining: e.DateOfJoining.String(),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyEmployeeCreated enqueues the welcome email for e.
func (j *JobService) NotifyEmployeeCreated(ctx context.Context, e model.Employee) error {
	task, err := NewWelcomeEmailTask(e)
	if err != nil {
		return fmt.Errorf("failed to build welcome email task: %w", err)
	}

	info, err := j.Client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue welcome email: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Int64("employee_id", e.ID).
		Msg("enqueued welcome email")
	return nil
}
