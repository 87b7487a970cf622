// internal/workers/server.go
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/pkg/logger"
)

// TaskObserver records task outcomes
type TaskObserver interface {
	ObserveTask(taskType string, err error)
}

// Processors groups the task handlers registered on the worker mux
type Processors struct {
	Analytics *AnalyticsProcessor
	Report    *ReportProcessor
	Excel     *ExcelProcessor
	PDF       *PDFProcessor
	Cleanup   *CleanupProcessor
}

// NewServeMux registers every task type. observer may be nil.
func NewServeMux(p Processors, observer TaskObserver, log *slog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(instrument(observer, log))

	mux.HandleFunc(TypeExpiryReconcile, p.Analytics.Reconcile)
	mux.HandleFunc(TypeAnalyticsRefresh, p.Analytics.RefreshAnalytics)
	mux.HandleFunc(TypeImportXLSX, p.Excel.ProcessExcel)
	mux.HandleFunc(TypeImportPDF, p.PDF.ProcessPDF)
	mux.HandleFunc(TypeUploadsCleanup, p.Cleanup.CleanupUploads)
	if p.Report != nil {
		mux.HandleFunc(TypeStockReport, p.Report.GenerateStockReport)
	}

	return mux
}

// instrument tags the context for logging and records each task outcome
func instrument(observer TaskObserver, log *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()

			ctx = logger.WithValue(ctx, logger.ContextKeyTaskType, t.Type())
			if id, ok := asynq.GetTaskID(ctx); ok {
				ctx = logger.WithValue(ctx, logger.ContextKeyJobID, id)
			}

			err := next.ProcessTask(ctx, t)

			if observer != nil {
				observer.ObserveTask(t.Type(), err)
			}
			if err != nil {
				log.ErrorContext(ctx, "task failed",
					slog.String("task_type", t.Type()),
					slog.Duration("took", time.Since(start)),
					slog.String("error", err.Error()))
				return err
			}

			log.DebugContext(ctx, "task completed",
				slog.String("task_type", t.Type()),
				slog.Duration("took", time.Since(start)))
			return nil
		})
	}
}
