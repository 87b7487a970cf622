// internal/core/ports/medicine_store.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/google/uuid"
)

// MedicineStore defines the persistence port for medicine records.
// It is implemented by the postgres and sqlite adapters.
type MedicineStore interface {
	// FindByID returns nil, nil when no record has the id
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	// Find returns one page of records and the total number of matches
	Find(ctx context.Context, q domain.ListQuery) ([]domain.Medicine, int64, error)
	Insert(ctx context.Context, medicine *domain.Medicine) error
	// Update returns domain.ErrNotFound when the record no longer exists
	Update(ctx context.Context, medicine *domain.Medicine) error
	// Delete returns the removed record, or nil, nil when nothing matched
	Delete(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	DeleteAll(ctx context.Context) (int64, error)

	// ExpireBefore flips every active record with an expiry date before
	// cutoff to expired in a single statement.
	ExpireBefore(ctx context.Context, cutoff time.Time) (matched, modified int64, err error)
	// AggregateByStatus returns one row per stored status
	AggregateByStatus(ctx context.Context, window domain.ExpiryWindow) ([]domain.StatusAggregate, error)
}
