// internal/core/domain/analytics.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultExpiryWindowDays is the look-ahead used for the soon-to-expire metric
const DefaultExpiryWindowDays = 30

// Analytics holds the dashboard metrics
type Analytics struct {
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TotalMedicines  int64           `json:"total_medicines"`
	ActiveMedicines int64           `json:"active_medicines"`
	Expired         int64           `json:"expired"`
	SoonToExpire    int64           `json:"soon_to_expire"`
	ComputedAt      time.Time       `json:"computed_at"`
}

// StatusAggregate is one per-status row produced by the store: the number of
// records, their summed stock value and how many expire inside the window.
type StatusAggregate struct {
	Status     Status
	Count      int64
	StockValue decimal.Decimal
	InWindow   int64
}

// ExpiryWindow is the closed calendar date range [From, To]
type ExpiryWindow struct {
	From time.Time
	To   time.Time
}

// NewExpiryWindow returns [today, today+days]
func NewExpiryWindow(now time.Time, days int) ExpiryWindow {
	from := NormalizeDate(now)
	return ExpiryWindow{From: from, To: from.AddDate(0, 0, days)}
}

// Contains reports whether the calendar date of t is inside the window
func (w ExpiryWindow) Contains(t time.Time) bool {
	d := NormalizeDate(t)
	return !d.Before(w.From) && !d.After(w.To)
}

// ReconciliationResult reports the outcome of one bulk expiry pass
type ReconciliationResult struct {
	MatchedCount  int64     `json:"matched_count"`
	ModifiedCount int64     `json:"modified_count"`
	Cutoff        time.Time `json:"cutoff"`
	RanAt         time.Time `json:"ran_at"`
}
