// internal/core/ports/medicine_service.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MedicineService defines the application service port for medicine stock.
type MedicineService interface {
	Create(ctx context.Context, input CreateMedicineInput) (*domain.Medicine, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.MedicinePatch) (*domain.Medicine, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	GetAnalytics(ctx context.Context) (*domain.Analytics, error)
	RefreshAnalytics(ctx context.Context) (*domain.Analytics, error)
	ReconcileNow(ctx context.Context) (*domain.ReconciliationResult, error)
}

// ExpiryReconciler runs the bulk active to expired pass
type ExpiryReconciler interface {
	ReconcileAll(ctx context.Context, now time.Time) (*domain.ReconciliationResult, error)
}

// CreateMedicineInput carries the client supplied fields of a new record.
// Status is not part of it.
type CreateMedicineInput struct {
	Name       string
	Category   string
	Quantity   int
	Price      decimal.Decimal
	ExpiryDate time.Time
}

// ListParams holds raw listing parameters as received from a caller
type ListParams struct {
	Search        string
	Category      string
	Status        string
	SortField     string
	SortDirection string
	Page          int
	PageSize      int
}

// ListResult holds one page of medicines
type ListResult struct {
	Items      []domain.Medicine `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
