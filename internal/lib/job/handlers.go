package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/employee-directory/internal/lib/email"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "welcome").
		Int64("employee_id", p.EmployeeID).
		Logger()

	log.Info().Msg("Processing welcome email task")

	err := j.email.SendWelcomeEmail(p.To, email.WelcomeData{
		Name:          p.Name,
		Department:    p.Department,
		Designation:   p.Designation,
		DateOfJoining: p.DateOfJoining,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Msg("Successfully sent welcome email")
	return nil
}
