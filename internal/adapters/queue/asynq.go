// internal/adapters/queue/asynq.go
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/config"
)

// Queue names, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type inspector interface {
	Queues() ([]string, error)
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// AsynqQueue implements ports.TaskQueue on top of an asynq client and
// inspector sharing one Redis connection.
type AsynqQueue struct {
	client    enqueuer
	inspector inspector
	retryMax  int
	retention time.Duration
	logger    *slog.Logger
}

var _ ports.TaskQueue = (*AsynqQueue)(nil)

// NewAsynqQueue creates a queue backed by the Redis instance in cfg
func NewAsynqQueue(cfg config.AsynqConfig, logger *slog.Logger) (*AsynqQueue, func() error) {
	opt := RedisOpt(cfg)
	client := asynq.NewClient(opt)
	insp := asynq.NewInspector(opt)

	q := newAsynqQueue(client, insp, cfg.RetryMax, cfg.TaskRetention, logger)
	closeFn := func() error {
		return errors.Join(client.Close(), insp.Close())
	}
	return q, closeFn
}

func newAsynqQueue(client enqueuer, insp inspector, retryMax int, retention time.Duration, logger *slog.Logger) *AsynqQueue {
	return &AsynqQueue{
		client:    client,
		inspector: insp,
		retryMax:  retryMax,
		retention: retention,
		logger:    logger.With(slog.String("adapter", "asynq_queue")),
	}
}

// RedisOpt builds the asynq connection option from configuration
func RedisOpt(cfg config.AsynqConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// QueueFor routes a task type to its queue. Expiry passes jump the line,
// imports and reports run normally and housekeeping runs last.
func QueueFor(taskType string) string {
	switch {
	case strings.HasPrefix(taskType, "expiry:"):
		return QueueCritical
	case strings.HasPrefix(taskType, "import:"), strings.HasPrefix(taskType, "report:"):
		return QueueDefault
	default:
		return QueueLow
	}
}

// Enqueue serializes payload and schedules it for immediate processing
func (q *AsynqQueue) Enqueue(ctx context.Context, taskType string, payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	opts := []asynq.Option{
		asynq.TaskID(uuid.New().String()),
		asynq.Queue(QueueFor(taskType)),
		asynq.MaxRetry(q.retryMax),
	}
	if q.retention > 0 {
		opts = append(opts, asynq.Retention(q.retention))
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, b), opts...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.InfoContext(ctx, "task enqueued",
		slog.String("task_id", info.ID),
		slog.String("task_type", taskType),
		slog.String("queue", info.Queue))

	return info.ID, nil
}

// Status looks the task up in every known queue
func (q *AsynqQueue) Status(ctx context.Context, taskID string) (*ports.JobStatus, error) {
	queues, err := q.inspector.Queues()
	if err != nil {
		return nil, fmt.Errorf("failed to list queues: %w", err)
	}

	for _, name := range queues {
		info, err := q.inspector.GetTaskInfo(name, taskID)
		if err != nil {
			if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get task info: %w", err)
		}
		return toJobStatus(info), nil
	}

	return nil, ports.ErrJobNotFound
}

func toJobStatus(info *asynq.TaskInfo) *ports.JobStatus {
	st := &ports.JobStatus{
		ID:        info.ID,
		Type:      info.Type,
		Queue:     info.Queue,
		State:     info.State.String(),
		Retried:   info.Retried,
		LastError: info.LastErr,
	}
	if len(info.Result) > 0 && json.Valid(info.Result) {
		st.Result = json.RawMessage(info.Result)
	}
	if !info.CompletedAt.IsZero() {
		completed := info.CompletedAt.UTC()
		st.CompletedAt = &completed
	}
	return st
}
