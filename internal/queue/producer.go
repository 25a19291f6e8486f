// Package queue moves digest-run tasks through a redis stream with a consumer
// group and a dead-letter stream for tasks that exhaust their attempts.
package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RunTask asks the worker to build and deliver one digest for one user.
type RunTask struct {
	RunID   int64
	UserID  int64
	TraceID *string
	Attempt int
}

type Producer interface {
	Enqueue(ctx context.Context, task RunTask) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, task RunTask) error {
	attempt := task.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	fields := map[string]any{
		"run_id":  task.RunID,
		"user_id": task.UserID,
		"attempt": attempt,
	}

	if task.TraceID != nil && *task.TraceID != "" {
		fields["trace_id"] = *task.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue run: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued digest run", "run_id", task.RunID, "user_id", task.UserID, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
