// internal/core/ports/observer.go
package ports

import (
	"time"

	"github.com/ammerola/medstock-be/internal/core/domain"
)

// Observer receives the outcome of core operations. The prometheus metrics
// package implements it; services fall back to a no-op when none is given.
type Observer interface {
	ObserveReconciliation(result *domain.ReconciliationResult, took time.Duration, err error)
	ObserveAnalytics(a *domain.Analytics)
}
