// internal/workers/analytics_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/core/ports"
)

// AnalyticsProcessor handles the expiry pass and analytics warm-up tasks
type AnalyticsProcessor struct {
	service ports.MedicineService
	logger  *slog.Logger
}

// NewAnalyticsProcessor creates a new analytics processor
func NewAnalyticsProcessor(service ports.MedicineService, logger *slog.Logger) *AnalyticsProcessor {
	return &AnalyticsProcessor{
		service: service,
		logger:  logger.With(slog.String("processor", "analytics")),
	}
}

// Reconcile runs one bulk expiry pass. Store failures are returned so asynq
// retries the task.
func (p *AnalyticsProcessor) Reconcile(ctx context.Context, t *asynq.Task) error {
	result, err := p.service.ReconcileNow(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile expiry status: %w", err)
	}

	writeResult(ctx, t, result, p.logger)
	return nil
}

// RefreshAnalytics recomputes the dashboard metrics and rewrites the cache
func (p *AnalyticsProcessor) RefreshAnalytics(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "refreshing analytics")

	a, err := p.service.RefreshAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh analytics: %w", err)
	}

	writeResult(ctx, t, a, p.logger)

	p.logger.InfoContext(ctx, "analytics refreshed successfully",
		slog.Int64("total_medicines", a.TotalMedicines),
		slog.Int64("soon_to_expire", a.SoonToExpire))
	return nil
}
