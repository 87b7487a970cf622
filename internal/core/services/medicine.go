// internal/core/services/medicine.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

// MedicineServiceConfig tunes the analytics behaviour of the service
type MedicineServiceConfig struct {
	ExpiryWindowDays int
	AnalyticsTTL     time.Duration
}

// MedicineService handles medicine stock business logic. Every write derives
// the status from the expiry date before reaching the store.
type MedicineService struct {
	store      ports.MedicineStore
	cache      ports.CacheRepository
	clock      ports.Clock
	observer   ports.Observer
	reconciler *Reconciler
	analytics  *AnalyticsAggregator
	planner    *QueryPlanner
	ttl        time.Duration
	logger     *slog.Logger
}

// Statically assert that *MedicineService implements the MedicineService interface.
var _ ports.MedicineService = (*MedicineService)(nil)

// NewMedicineService creates a new medicine service. cache and observer may be nil.
func NewMedicineService(
	store ports.MedicineStore,
	cache ports.CacheRepository,
	clock ports.Clock,
	observer ports.Observer,
	cfg MedicineServiceConfig,
	logger *slog.Logger,
) *MedicineService {
	if cfg.AnalyticsTTL <= 0 {
		cfg.AnalyticsTTL = 5 * time.Minute
	}
	observer = observerOrNop(observer)

	return &MedicineService{
		store:      store,
		cache:      cache,
		clock:      clock,
		observer:   observer,
		reconciler: NewReconciler(store, cache, observer, logger),
		analytics:  NewAnalyticsAggregator(store, cfg.ExpiryWindowDays, logger),
		planner:    NewQueryPlanner(store),
		ttl:        cfg.AnalyticsTTL,
		logger:     logger.With(slog.String("service", "medicine")),
	}
}

// Reconciler exposes the bulk pass for schedulers and workers
func (s *MedicineService) Reconciler() *Reconciler {
	return s.reconciler
}

// Create validates the input and stores a new record with a derived status
func (s *MedicineService) Create(ctx context.Context, input ports.CreateMedicineInput) (*domain.Medicine, error) {
	m := &domain.Medicine{
		Name:       input.Name,
		Category:   input.Category,
		Quantity:   input.Quantity,
		Price:      input.Price,
		ExpiryDate: input.ExpiryDate,
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	m.PrepareForInsert(s.clock.Now())

	if err := s.store.Insert(ctx, m); err != nil {
		return nil, domain.StoreError("create medicine", err)
	}
	invalidateAnalytics(ctx, s.cache, s.logger)

	s.logger.InfoContext(ctx, "created medicine",
		slog.String("id", m.ID.String()),
		slog.String("name", m.Name),
		slog.String("status", string(m.Status)))

	return m, nil
}

// Get returns a single record
func (s *MedicineService) Get(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, domain.StoreError("get medicine", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return m, nil
}

// Update applies a partial update. The status is re-derived only when the
// expiry date changes; otherwise the stored status is kept as is.
func (s *MedicineService) Update(ctx context.Context, id uuid.UUID, patch domain.MedicinePatch) (*domain.Medicine, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return m, nil
	}

	expiryChanged := patch.Apply(m, s.clock.Now())
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.RoundPrice()

	if err := s.store.Update(ctx, m); err != nil {
		return nil, domain.StoreError("update medicine", err)
	}
	invalidateAnalytics(ctx, s.cache, s.logger)

	s.logger.InfoContext(ctx, "updated medicine",
		slog.String("id", id.String()),
		slog.Bool("expiry_changed", expiryChanged),
		slog.String("status", string(m.Status)))

	return m, nil
}

// Delete removes a record and returns it
func (s *MedicineService) Delete(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	m, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, domain.StoreError("delete medicine", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	invalidateAnalytics(ctx, s.cache, s.logger)

	s.logger.InfoContext(ctx, "deleted medicine", slog.String("id", id.String()))
	return m, nil
}

// List returns a filtered, sorted page of records
func (s *MedicineService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	return s.planner.Execute(ctx, params)
}

// GetAnalytics serves metrics from the cache, computing them on a miss. A
// cache outage degrades to computing on every call.
func (s *MedicineService) GetAnalytics(ctx context.Context) (*domain.Analytics, error) {
	now := s.clock.Now()
	if s.cache == nil {
		return s.computeAnalytics(ctx, now)
	}

	generation, err := s.cache.Counter(ctx, analyticsGenerationKey)
	if err != nil {
		s.logger.WarnContext(ctx, "analytics cache unavailable, computing directly",
			slog.String("error", err.Error()))
		return s.computeAnalytics(ctx, now)
	}

	var (
		out      domain.Analytics
		fetchErr error
	)
	err = s.cache.GetOrSet(ctx, analyticsKey(now, generation), &out, func() (interface{}, error) {
		a, err := s.computeAnalytics(ctx, now)
		fetchErr = err
		return a, err
	}, s.ttl)
	if err == nil {
		return &out, nil
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	s.logger.WarnContext(ctx, "analytics cache unavailable, computing directly",
		slog.String("error", err.Error()))
	return s.computeAnalytics(ctx, now)
}

// RefreshAnalytics recomputes metrics and overwrites the cached copy
func (s *MedicineService) RefreshAnalytics(ctx context.Context) (*domain.Analytics, error) {
	now := s.clock.Now()

	// read before computing so a write landing meanwhile outdates this copy
	var (
		generation int64
		genErr     error
	)
	if s.cache != nil {
		generation, genErr = s.cache.Counter(ctx, analyticsGenerationKey)
	}

	a, err := s.computeAnalytics(ctx, now)
	if err != nil {
		return nil, err
	}

	switch {
	case s.cache == nil:
	case genErr != nil:
		s.logger.WarnContext(ctx, "failed to read analytics generation",
			slog.String("error", genErr.Error()))
	default:
		if err := s.cache.SetWithTTL(ctx, analyticsKey(now, generation), a, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "failed to cache analytics",
				slog.String("error", err.Error()))
		}
	}
	return a, nil
}

// ReconcileNow runs a bulk pass against the service clock
func (s *MedicineService) ReconcileNow(ctx context.Context) (*domain.ReconciliationResult, error) {
	return s.reconciler.ReconcileAll(ctx, s.clock.Now())
}

func (s *MedicineService) computeAnalytics(ctx context.Context, now time.Time) (*domain.Analytics, error) {
	a, err := s.analytics.Compute(ctx, now)
	if err != nil {
		return nil, err
	}
	s.observer.ObserveAnalytics(a)
	return a, nil
}
