// internal/core/domain/query.go
package domain

// SortField names a sortable medicine attribute
type SortField string

const (
	SortByName       SortField = "name"
	SortByCategory   SortField = "category"
	SortByQuantity   SortField = "quantity"
	SortByPrice      SortField = "price"
	SortByExpiryDate SortField = "expiry_date"
	SortByStatus     SortField = "status"
	SortByCreatedAt  SortField = "created_at"
	SortByUpdatedAt  SortField = "updated_at"
)

var sortFields = map[SortField]bool{
	SortByName:       true,
	SortByCategory:   true,
	SortByQuantity:   true,
	SortByPrice:      true,
	SortByExpiryDate: true,
	SortByStatus:     true,
	SortByCreatedAt:  true,
	SortByUpdatedAt:  true,
}

// Valid reports whether f is a sortable field
func (f SortField) Valid() bool {
	return sortFields[f]
}

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListQuery is a fully normalized listing request ready for a store
type ListQuery struct {
	Search    string
	Category  string
	Status    Status
	SortField SortField
	SortDir   SortDirection
	Limit     int
	Offset    int
}
