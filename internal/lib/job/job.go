// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client
//   - a server runs workers that process them (consumer) with asynq.Server
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/config"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/lib/email"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
)

// Mailer sends the notification emails triggered by tasks.
type Mailer interface {
	SendPostCreatedEmail(to string, postID int64, title string) error
}

// Enqueuer is the producer side of asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client Enqueuer

	server *asynq.Server
	logger *zerolog.Logger

	// mailer is nil when notifications are not configured.
	mailer   Mailer
	notifyTo string
}

// NewJobService creates a JobService backed by the Redis instance from cfg.
//
// Queue weights give "critical" tasks the larger share of the 10 workers:
// critical 6, default 3, low 1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	j := &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}

	if cfg.Integration.NotificationsEnabled() {
		j.mailer = email.NewClient(cfg, logger)
		j.notifyTo = cfg.Integration.NotifyEmail
	}

	return j
}

// NotifyPostCreated enqueues a TaskPostCreated task for post.
func (j *JobService) NotifyPostCreated(ctx context.Context, post model.Post) error {
	task, err := NewPostCreatedTask(post)
	if err != nil {
		return fmt.Errorf("building post created task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing post created task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("post_id", post.ID).
		Msg("Enqueued post created task")

	return nil
}

// Start registers the task handlers and starts the worker server. It
// returns once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPostCreated, j.handlePostCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("Failed to close job client")
	}
}
