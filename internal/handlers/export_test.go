package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/internal/handlers"
	"github.com/ammerola/medstock-be/test/helpers"
)

func exportFixture() []domain.Medicine {
	return []domain.Medicine{
		*helpers.CreateTestMedicine(func(m *domain.Medicine) { m.Name = "Paracetamol 500mg" }),
		*helpers.CreateTestMedicine(func(m *domain.Medicine) {
			m.Name = "Amoxicillin 250mg"
			m.Category = "Antibiotics"
		}),
	}
}

func TestExportHandler_XLSX(t *testing.T) {
	api := newTestAPI(t)
	items := exportFixture()

	api.service.EXPECT().
		List(gomock.Any(), ports.ListParams{Category: "pain", Page: 1, PageSize: services.MaxPageSize}).
		Return(&ports.ListResult{Items: items, Total: 2, Page: 1, PageSize: services.MaxPageSize, TotalPages: 1}, nil)
	api.service.EXPECT().GetAnalytics(gomock.Any()).Return(&domain.Analytics{TotalMedicines: 2}, nil)

	w := api.do(t, "GET", "/api/v1/medicines/export?category=pain&page=4&limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, spreadsheet.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="medicines_export_20250615_103000.xlsx"`, w.Header().Get("Content-Disposition"))

	data, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	records, rowErrs, err := spreadsheet.Read(data)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 2)
	assert.Equal(t, "Paracetamol 500mg", records[0].Input.Name)
	assert.Equal(t, "Antibiotics", records[1].Input.Category)
}

func TestExportHandler_JSON(t *testing.T) {
	api := newTestAPI(t)
	items := exportFixture()

	api.service.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(&ports.ListResult{Items: items, Total: 2, Page: 1, TotalPages: 1}, nil)
	// the export still succeeds without its summary
	api.service.EXPECT().GetAnalytics(gomock.Any()).Return(nil, errors.New("redis down"))

	w := api.do(t, "GET", "/api/v1/medicines/export?format=json&status=active", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp handlers.JSONExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Metadata.TotalItems)
	assert.Equal(t, map[string]string{"status": "active"}, resp.Metadata.Filters)
	assert.Nil(t, resp.Metadata.Summary)
	assert.True(t, fixedNow.Equal(resp.Metadata.ExportDate))
}

func TestExportHandler_Errors(t *testing.T) {
	t.Run("unknown_format", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(t, "GET", "/api/v1/medicines/export?format=csv", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Format must be xlsx or json", decodeError(t, w).Error)
	})

	t.Run("store_unavailable", func(t *testing.T) {
		api := newTestAPI(t)
		api.service.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

		w := api.do(t, "GET", "/api/v1/medicines/export", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "5", w.Header().Get("Retry-After"))
	})
}
