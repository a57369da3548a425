// Package job provides background job processing using Asynq.
//
// Tasks are enqueued into Redis by asynq.Client and executed by the
// asynq.Server workers started alongside the HTTP server.
package job

import (
	"github.com/deppfellow/employee-directory/internal/config"
	"github.com/deppfellow/employee-directory/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer is the producer side of asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// WelcomeSender delivers the welcome email.
type WelcomeSender interface {
	SendWelcomeEmail(to string, data email.WelcomeData) error
}

// JobService owns the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client Enqueuer

	server *asynq.Server
	closer interface{ Close() error }
	email  WelcomeSender
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: newAsynqLogger(logger),
	})

	return &JobService{
		Client: client,
		server: server,
		closer: client,
		email:  email.NewClient(cfg, logger),
		logger: logger,
	}
}

// NewJobServiceWith assembles a JobService from explicit collaborators.
// It has no worker server; Start and Stop only touch what is present.
func NewJobServiceWith(client Enqueuer, sender WelcomeSender, logger *zerolog.Logger) *JobService {
	return &JobService{Client: client, email: sender, logger: logger}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the workers in the background. It does not block.
func (j *JobService) Start() error {
	if j.server == nil {
		return nil
	}

	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")

	if j.server != nil {
		j.server.Shutdown()
	}
	if j.closer != nil {
		if err := j.closer.Close(); err != nil {
			j.logger.Warn().Err(err).Msg("failed to close job client")
		}
	}
}
