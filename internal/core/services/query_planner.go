// internal/core/services/query_planner.go
package services

import (
	"context"
	"strings"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// QueryPlanner turns raw listing parameters into a deterministic store query
type QueryPlanner struct {
	store ports.MedicineStore
}

// NewQueryPlanner creates a query planner
func NewQueryPlanner(store ports.MedicineStore) *QueryPlanner {
	return &QueryPlanner{store: store}
}

// Plan validates params and fills in defaults. It returns the store query
// and the effective page and page size.
func (p *QueryPlanner) Plan(params ports.ListParams) (domain.ListQuery, int, int, error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	status, err := domain.ParseStatus(params.Status)
	if err != nil {
		return domain.ListQuery{}, 0, 0, err
	}

	field := domain.SortField(strings.ToLower(strings.TrimSpace(params.SortField)))
	if field == "" {
		field = domain.SortByCreatedAt
	}
	if !field.Valid() {
		return domain.ListQuery{}, 0, 0, domain.NewValidationError("sort", "Unsupported sort field: "+string(field))
	}

	dir := domain.SortDirection(strings.ToLower(strings.TrimSpace(params.SortDirection)))
	switch dir {
	case "":
		dir = domain.SortDesc
	case domain.SortAsc, domain.SortDesc:
	default:
		return domain.ListQuery{}, 0, 0, domain.NewValidationError("order", "Sort order must be asc or desc")
	}

	q := domain.ListQuery{
		Search:    strings.TrimSpace(params.Search),
		Category:  strings.TrimSpace(params.Category),
		Status:    status,
		SortField: field,
		SortDir:   dir,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}
	return q, page, pageSize, nil
}

// Execute plans and runs a listing. A page past the end is an empty result.
func (p *QueryPlanner) Execute(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	q, page, pageSize, err := p.Plan(params)
	if err != nil {
		return nil, err
	}

	items, total, err := p.store.Find(ctx, q)
	if err != nil {
		return nil, domain.StoreError("list medicines", err)
	}
	if items == nil {
		items = []domain.Medicine{}
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ports.ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
