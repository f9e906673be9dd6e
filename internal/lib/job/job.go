// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API enqueues tasks through the client; the worker server started next to
// the HTTP server consumes them.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/mobile-api/internal/config"
	"github.com/deppfellow/mobile-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type notifier interface {
	SendFeedbackNotification(to string, data email.FeedbackReceivedData) error
}

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	client enqueuer
	server *asynq.Server
	logger *zerolog.Logger

	emails        notifier
	feedbackInbox string
}

// NewJobService creates the client and worker server for cfg.Redis.
//
// Worker share is split across queues by weight: critical 6, default 3, low 1.
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

	return &JobService{
		client:        asynq.NewClient(redisOpt),
		server:        server,
		logger:        logger,
		emails:        email.NewClient(cfg, logger),
		feedbackInbox: cfg.Integration.FeedbackInbox,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskFeedbackReceived, j.handleFeedbackReceivedTask)
	return mux
}

// Start registers the task handlers and starts the workers in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}
	return nil
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if err := j.client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// EnqueueFeedbackNotification schedules the inbox email for one feedback item.
// A duplicate enqueue for the same feedback id is not an error.
func (j *JobService) EnqueueFeedbackNotification(ctx context.Context, p FeedbackReceivedPayload) error {
	task, err := NewFeedbackReceivedTask(p)
	if err != nil {
		return fmt.Errorf("failed to build feedback task: %w", err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue feedback task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("feedback_id", p.FeedbackID).
		Msg("enqueued feedback notification")
	return nil
}
