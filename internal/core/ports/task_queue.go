// internal/core/ports/task_queue.go
package ports

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrJobNotFound is returned when a task id is unknown to the queue
var ErrJobNotFound = errors.New("job not found")

// TaskQueue enqueues background work and reports its progress
type TaskQueue interface {
	// Enqueue serializes payload as JSON and returns the task id
	Enqueue(ctx context.Context, taskType string, payload interface{}) (string, error)
	Status(ctx context.Context, taskID string) (*JobStatus, error)
}

// JobStatus is a snapshot of a background task
type JobStatus struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Queue       string          `json:"queue"`
	State       string          `json:"state"`
	Retried     int             `json:"retried"`
	LastError   string          `json:"last_error,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
