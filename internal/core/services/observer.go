// internal/core/services/observer.go
package services

import (
	"time"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

type nopObserver struct{}

func (nopObserver) ObserveReconciliation(*domain.ReconciliationResult, time.Duration, error) {}
func (nopObserver) ObserveAnalytics(*domain.Analytics)                                      {}

func observerOrNop(o ports.Observer) ports.Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
