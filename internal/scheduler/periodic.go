// internal/scheduler/periodic.go
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"

	"github.com/ammerola/medstock-be/internal/adapters/queue"
	"github.com/ammerola/medstock-be/internal/pkg/config"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
	"github.com/ammerola/medstock-be/internal/workers"
)

const cleanupSpec = "@hourly"

type periodicEntry struct {
	spec     string
	taskType string
}

type registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// NewAsynqScheduler returns an asynq scheduler that enqueues into the
// worker's Redis in the configured timezone.
func NewAsynqScheduler(cfg config.AsynqConfig, sched config.SchedulerConfig, log *slog.Logger) (*asynq.Scheduler, error) {
	loc, err := sched.Location()
	if err != nil {
		return nil, err
	}

	log = log.With(slog.String("component", "scheduler"))
	return asynq.NewScheduler(queue.RedisOpt(cfg), &asynq.SchedulerOpts{
		Location: loc,
		Logger:   logger.NewAsynqLogger(log),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error("failed to enqueue periodic task", slog.String("error", err.Error()))
				return
			}
			log.Debug("periodic task enqueued",
				slog.String("task_type", info.Type),
				slog.String("job_id", info.ID))
		},
	}), nil
}

// RegisterPeriodic registers the expiry pass on the configured cron spec,
// the analytics warm-up every refresh interval and the upload cleanup hourly.
// It returns the entry ids.
func RegisterPeriodic(r registrar, sched config.SchedulerConfig, analytics config.AnalyticsConfig, retention time.Duration) ([]string, error) {
	if _, err := cron.ParseStandard(sched.CronSpec); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", sched.CronSpec, err)
	}

	entries := []periodicEntry{{sched.CronSpec, workers.TypeExpiryReconcile}}
	if analytics.RefreshInterval > 0 {
		entries = append(entries, periodicEntry{"@every " + analytics.RefreshInterval.String(), workers.TypeAnalyticsRefresh})
	}
	if retention > 0 {
		entries = append(entries, periodicEntry{cleanupSpec, workers.TypeUploadsCleanup})
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		id, err := r.Register(e.spec, asynq.NewTask(e.taskType, nil), asynq.Queue(queue.QueueFor(e.taskType)))
		if err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", e.taskType, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
