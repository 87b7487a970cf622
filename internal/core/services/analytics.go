// internal/core/services/analytics.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

const (
	analyticsCachePrefix   = "analytics"
	analyticsGenerationKey = analyticsCachePrefix + ":generation"
)

// AnalyticsAggregator computes dashboard metrics from the stored status of
// each record. It does not re-derive status, so results reflect any lag
// until the next reconciliation pass.
type AnalyticsAggregator struct {
	store      ports.MedicineStore
	windowDays int
	logger     *slog.Logger
}

// NewAnalyticsAggregator creates an aggregator with a soon-to-expire window
// of windowDays; non-positive values use the default of 30 days.
func NewAnalyticsAggregator(store ports.MedicineStore, windowDays int, logger *slog.Logger) *AnalyticsAggregator {
	if windowDays <= 0 {
		windowDays = domain.DefaultExpiryWindowDays
	}
	return &AnalyticsAggregator{
		store:      store,
		windowDays: windowDays,
		logger:     logger.With(slog.String("service", "analytics")),
	}
}

// Compute folds the store's per-status aggregates into the five metrics
func (a *AnalyticsAggregator) Compute(ctx context.Context, now time.Time) (*domain.Analytics, error) {
	window := domain.NewExpiryWindow(now, a.windowDays)

	rows, err := a.store.AggregateByStatus(ctx, window)
	if err != nil {
		return nil, domain.StoreError("aggregate medicines", err)
	}

	out := &domain.Analytics{
		TotalStockValue: decimal.Zero,
		ComputedAt:      now,
	}
	for _, row := range rows {
		switch row.Status {
		case domain.StatusActive:
			out.ActiveMedicines += row.Count
			out.TotalStockValue = out.TotalStockValue.Add(row.StockValue)
			out.SoonToExpire += row.InWindow
		case domain.StatusExpired:
			out.Expired += row.Count
		default:
			a.logger.WarnContext(ctx, "skipping aggregate with unknown status",
				slog.String("status", string(row.Status)),
				slog.Int64("count", row.Count))
		}
	}
	out.TotalMedicines = out.ActiveMedicines + out.Expired
	out.TotalStockValue = out.TotalStockValue.Round(2)

	return out, nil
}

// analyticsKey scopes cached metrics to a calendar day, because the
// soon-to-expire window moves at midnight, and to a write generation.
func analyticsKey(now time.Time, generation int64) string {
	return fmt.Sprintf("%s:%s:%d", analyticsCachePrefix,
		domain.NormalizeDate(now).Format(domain.DateLayout), generation)
}

// invalidateAnalytics bumps the write generation. Metrics computed before the
// bump land under the old key even if they are stored after it, so readers
// never see them again.
func invalidateAnalytics(ctx context.Context, cache ports.CacheRepository, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if _, err := cache.Incr(ctx, analyticsGenerationKey); err != nil {
		logger.WarnContext(ctx, "failed to invalidate analytics cache",
			slog.String("error", err.Error()))
	}
}
