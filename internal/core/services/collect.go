// internal/core/services/collect.go
package services

import (
	"context"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

// ListAll walks every page of a listing. Exports and reports use it; records
// written while it runs may be missed or repeated.
func ListAll(ctx context.Context, svc ports.MedicineService, params ports.ListParams) ([]domain.Medicine, error) {
	params.PageSize = MaxPageSize
	params.Page = 1

	var all []domain.Medicine
	for {
		res, err := svc.List(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Items...)
		if params.Page >= res.TotalPages || len(res.Items) == 0 {
			return all, nil
		}
		params.Page++
	}
}
