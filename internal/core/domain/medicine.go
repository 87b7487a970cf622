// internal/core/domain/medicine.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the derived usability state of a medicine record
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusExpired
}

// ParseStatus parses a status filter value. The empty string is allowed and
// means "any status".
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if s == "" || s.Valid() {
		return s, nil
	}
	return "", NewValidationError("status", "Status must be either active or expired")
}

const (
	// DateLayout is the calendar date format used on the wire and in text stores
	DateLayout = "2006-01-02"

	MaxNameLength     = 200
	MaxCategoryLength = 100
	// MaxQuantity fits a Postgres INTEGER column
	MaxQuantity = 1<<31 - 1
)

// MaxPrice is the largest value a NUMERIC(12,2) price column holds
var MaxPrice = decimal.RequireFromString("9999999999.99")

// Medicine is a single stock record
type Medicine struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	ExpiryDate time.Time       `json:"expiry_date"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NormalizeDate truncates t to midnight of its calendar date. The wall clock
// date is kept and the location is dropped, so comparisons are timezone-naive.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date, falling back to RFC3339 timestamps
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, NewValidationError("expiry_date", "Expiry date must be in YYYY-MM-DD format")
	}
	return NormalizeDate(t), nil
}

// DeriveStatus returns StatusExpired iff the expiry date lies strictly before
// the calendar date of now.
func DeriveStatus(expiry, now time.Time) Status {
	if NormalizeDate(expiry).Before(NormalizeDate(now)) {
		return StatusExpired
	}
	return StatusActive
}

// StockValue is price times quantity
func (m *Medicine) StockValue() decimal.Decimal {
	return m.Price.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// Normalize trims text fields and strips the time of day from the expiry date.
// The price is left as given so Validate sees the raw sign.
func (m *Medicine) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	if !m.ExpiryDate.IsZero() {
		m.ExpiryDate = NormalizeDate(m.ExpiryDate)
	}
}

// RoundPrice rounds the price to cents. Call it only after Validate.
func (m *Medicine) RoundPrice() {
	m.Price = m.Price.Round(2)
}

// Validate checks the record against the field constraints. Values are never
// clamped or rounded into range; the first violation is returned.
func (m *Medicine) Validate() error {
	switch {
	case m.Name == "":
		return NewValidationError("name", "Medicine name is required")
	case len(m.Name) > MaxNameLength:
		return NewValidationError("name", "Medicine name is too long")
	case m.Category == "":
		return NewValidationError("category", "Category is required")
	case len(m.Category) > MaxCategoryLength:
		return NewValidationError("category", "Category is too long")
	case m.Quantity < 0:
		return NewValidationError("quantity", "Quantity cannot be negative")
	case m.Quantity > MaxQuantity:
		return NewValidationError("quantity", "Quantity is too large")
	case m.Price.IsNegative():
		return NewValidationError("price", "Price cannot be negative")
	case m.Price.Round(2).GreaterThan(MaxPrice):
		return NewValidationError("price", "Price is too large")
	case m.ExpiryDate.IsZero():
		return NewValidationError("expiry_date", "Expiry date is required")
	}
	return nil
}

// ApplyStatus overwrites the status with the one derived from the expiry date
func (m *Medicine) ApplyStatus(now time.Time) {
	m.Status = DeriveStatus(m.ExpiryDate, now)
}

// PrepareForInsert assigns identity and timestamps and derives the status
func (m *Medicine) PrepareForInsert(now time.Time) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Normalize()
	m.RoundPrice()
	m.ApplyStatus(now)
	m.CreatedAt = now.UTC()
	m.UpdatedAt = m.CreatedAt
}

// MedicinePatch holds a partial update. Nil fields are left untouched.
type MedicinePatch struct {
	Name       *string
	Category   *string
	Quantity   *int
	Price      *decimal.Decimal
	ExpiryDate *time.Time
}

// IsEmpty reports whether the patch changes nothing
func (p MedicinePatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Quantity == nil &&
		p.Price == nil && p.ExpiryDate == nil
}

// Apply merges the patch into m. The status is re-derived only when the
// expiry date actually changes; it reports whether that happened.
func (p MedicinePatch) Apply(m *Medicine, now time.Time) bool {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Quantity != nil {
		m.Quantity = *p.Quantity
	}
	if p.Price != nil {
		m.Price = *p.Price
	}

	expiryChanged := false
	if p.ExpiryDate != nil {
		next := NormalizeDate(*p.ExpiryDate)
		expiryChanged = !next.Equal(NormalizeDate(m.ExpiryDate))
		m.ExpiryDate = next
	}

	m.Normalize()
	if expiryChanged {
		m.ApplyStatus(now)
	}
	m.UpdatedAt = now.UTC()
	return expiryChanged
}
