// internal/core/services/reconciler.go
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

// Reconciler moves active records whose expiry date has passed to expired.
// It never performs the reverse transition.
type Reconciler struct {
	store    ports.MedicineStore
	cache    ports.CacheRepository
	observer ports.Observer
	logger   *slog.Logger
}

var _ ports.ExpiryReconciler = (*Reconciler)(nil)

// NewReconciler creates a reconciler. cache and observer may be nil.
func NewReconciler(store ports.MedicineStore, cache ports.CacheRepository, observer ports.Observer, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:    store,
		cache:    cache,
		observer: observerOrNop(observer),
		logger:   logger.With(slog.String("service", "reconciler")),
	}
}

// ReconcileAll runs one bulk pass relative to the calendar date of now.
// The store applies it as a single conditional update, so a failure reports
// zero counts and nothing was committed.
func (r *Reconciler) ReconcileAll(ctx context.Context, now time.Time) (*domain.ReconciliationResult, error) {
	started := time.Now()
	cutoff := domain.NormalizeDate(now)

	matched, modified, err := r.store.ExpireBefore(ctx, cutoff)
	if err != nil {
		err = domain.StoreError("expire medicines", err)
		r.observer.ObserveReconciliation(nil, time.Since(started), err)
		r.logger.ErrorContext(ctx, "reconciliation pass failed",
			slog.Time("cutoff", cutoff),
			slog.String("error", err.Error()))
		return nil, err
	}

	result := &domain.ReconciliationResult{
		MatchedCount:  matched,
		ModifiedCount: modified,
		Cutoff:        cutoff,
		RanAt:         now,
	}
	r.observer.ObserveReconciliation(result, time.Since(started), nil)

	if modified > 0 {
		invalidateAnalytics(ctx, r.cache, r.logger)
	}

	r.logger.InfoContext(ctx, "reconciliation pass completed",
		slog.Time("cutoff", cutoff),
		slog.Int64("matched", matched),
		slog.Int64("modified", modified),
		slog.Duration("took", time.Since(started)))

	return result, nil
}
