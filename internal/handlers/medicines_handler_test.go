// internal/handlers/medicines_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/handlers"
	"github.com/ammerola/medstock-be/internal/pkg/clock"
	"github.com/ammerola/medstock-be/test/helpers"
	"github.com/ammerola/medstock-be/test/mocks"
)

var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

type testAPI struct {
	service *mocks.MockMedicineService
	queue   *mocks.MockTaskQueue
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)

	api := &testAPI{
		service: mocks.NewMockMedicineService(ctrl),
		queue:   mocks.NewMockTaskQueue(ctrl),
	}

	logger := helpers.TestLogger()
	clk := clock.NewManual(fixedNow)
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Handlers{
		Medicines: handlers.NewMedicineHandler(api.service, logger),
		Analytics: handlers.NewAnalyticsHandler(api.service, logger),
		Export:    handlers.NewExportHandler(api.service, clk, logger),
		Import:    handlers.NewImportHandler(api.queue, clk, logger, 1<<20, t.TempDir()),
	})
	api.handler = mux
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestMedicineHandler_GetMedicine(t *testing.T) {
	testMedicine := helpers.CreateTestMedicine()

	tests := []struct {
		name           string
		id             string
		setupMocks     func(*mocks.MockMedicineService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successfully_retrieves_medicine",
			id:   testMedicine.ID.String(),
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().Get(gomock.Any(), testMedicine.ID).Return(testMedicine, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_uuid_format",
			id:             "not-a-uuid",
			setupMocks:     func(m *mocks.MockMedicineService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid medicine ID format",
		},
		{
			name: "medicine_not_found",
			id:   testMedicine.ID.String(),
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().Get(gomock.Any(), testMedicine.ID).
					Return(nil, fmt.Errorf("%w: %s", domain.ErrNotFound, testMedicine.ID))
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Medicine not found",
		},
		{
			name: "store_unavailable",
			id:   testMedicine.ID.String(),
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().Get(gomock.Any(), testMedicine.ID).
					Return(nil, domain.StoreError("get medicine", errors.New("connection refused")))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "Storage is temporarily unavailable",
		},
		{
			name: "unexpected_error",
			id:   testMedicine.ID.String(),
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().Get(gomock.Any(), testMedicine.ID).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to retrieve medicine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			tt.setupMocks(api.service)

			w := api.do(t, "GET", "/api/v1/medicines/"+tt.id, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
				return
			}

			var got domain.Medicine
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, testMedicine.ID, got.ID)
			assert.Equal(t, testMedicine.Name, got.Name)
			assert.True(t, testMedicine.Price.Equal(got.Price))
		})
	}
}

func TestMedicineHandler_CreateMedicine(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockMedicineService)
		expectedStatus int
		expectedField  string
	}{
		{
			name: "creates_medicine_and_ignores_client_status",
			body: map[string]interface{}{
				"name":        "Paracetamol 500mg",
				"category":    "Pain Relief",
				"quantity":    150,
				"price":       5.99,
				"expiry_date": "2025-12-31",
				"status":      "expired",
			},
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in ports.CreateMedicineInput) (*domain.Medicine, error) {
						assert.Equal(t, "Paracetamol 500mg", in.Name)
						assert.Equal(t, "Pain Relief", in.Category)
						assert.Equal(t, 150, in.Quantity)
						assert.True(t, decimal.RequireFromString("5.99").Equal(in.Price))
						assert.True(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC).Equal(in.ExpiryDate))
						return helpers.CreateTestMedicine(func(m *domain.Medicine) {
							m.Name = in.Name
						}), nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid_json",
			body:           "{not json",
			setupMocks:     func(m *mocks.MockMedicineService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing_quantity",
			body: map[string]interface{}{
				"name": "Aspirin", "category": "Cardio", "price": "1.00", "expiry_date": "2026-01-01",
			},
			setupMocks:     func(m *mocks.MockMedicineService) {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "quantity",
		},
		{
			name: "missing_expiry_date",
			body: map[string]interface{}{
				"name": "Aspirin", "category": "Cardio", "quantity": 1, "price": "1.00",
			},
			setupMocks:     func(m *mocks.MockMedicineService) {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "expiry_date",
		},
		{
			name: "malformed_expiry_date",
			body: map[string]interface{}{
				"name": "Aspirin", "category": "Cardio", "quantity": 1, "price": "1.00", "expiry_date": "31/12/2025",
			},
			setupMocks:     func(m *mocks.MockMedicineService) {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "expiry_date",
		},
		{
			name: "negative_quantity_rejected_by_service",
			body: map[string]interface{}{
				"name": "Aspirin", "category": "Cardio", "quantity": -5, "price": "1.00", "expiry_date": "2026-01-01",
			},
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewValidationError("quantity", "Quantity cannot be negative"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			tt.setupMocks(api.service)

			w := api.do(t, "POST", "/api/v1/medicines", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedField != "" {
				assert.Equal(t, tt.expectedField, decodeError(t, w).Field)
			}
		})
	}
}

func TestMedicineHandler_UpdateMedicine(t *testing.T) {
	api := newTestAPI(t)
	id := uuid.New()

	api.service.EXPECT().
		Update(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, patch domain.MedicinePatch) (*domain.Medicine, error) {
			assert.Nil(t, patch.Name)
			require.NotNil(t, patch.Quantity)
			assert.Equal(t, 0, *patch.Quantity)
			require.NotNil(t, patch.ExpiryDate)
			assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(*patch.ExpiryDate))
			return helpers.CreateTestMedicine(func(m *domain.Medicine) {
				m.ID = id
				m.Status = domain.StatusExpired
			}), nil
		})

	w := api.do(t, "PUT", "/api/v1/medicines/"+id.String(), map[string]interface{}{
		"quantity":    0,
		"expiry_date": "2024-01-01",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Medicine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusExpired, got.Status)
}

func TestMedicineHandler_UpdateMedicine_NotFound(t *testing.T) {
	api := newTestAPI(t)
	id := uuid.New()

	api.service.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil, domain.ErrNotFound)

	w := api.do(t, "PUT", "/api/v1/medicines/"+id.String(), map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMedicineHandler_DeleteMedicine(t *testing.T) {
	api := newTestAPI(t)
	removed := helpers.CreateTestMedicine()

	api.service.EXPECT().Delete(gomock.Any(), removed.ID).Return(removed, nil)
	w := api.do(t, "DELETE", "/api/v1/medicines/"+removed.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Medicine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, removed.ID, got.ID)

	api.service.EXPECT().Delete(gomock.Any(), removed.ID).Return(nil, domain.ErrNotFound)
	w = api.do(t, "DELETE", "/api/v1/medicines/"+removed.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMedicineHandler_ListMedicines(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockMedicineService)
		expectedStatus int
	}{
		{
			name:  "passes_query_to_service",
			query: "?page=3&limit=10&search=para&category=relief&status=active&sort=name&order=asc",
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().List(gomock.Any(), ports.ListParams{
					Search:        "para",
					Category:      "relief",
					Status:        "active",
					SortField:     "name",
					SortDirection: "asc",
					Page:          3,
					PageSize:      10,
				}).Return(&ports.ListResult{
					Items:      []domain.Medicine{*helpers.CreateTestMedicine()},
					Total:      25,
					Page:       3,
					PageSize:   10,
					TotalPages: 3,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "defaults_left_to_service",
			query: "",
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().List(gomock.Any(), ports.ListParams{}).Return(&ports.ListResult{Items: []domain.Medicine{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non_numeric_page",
			query:          "?page=abc",
			setupMocks:     func(m *mocks.MockMedicineService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "invalid_status_from_service",
			query: "?status=recalled",
			setupMocks: func(m *mocks.MockMedicineService) {
				m.EXPECT().List(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewValidationError("status", "Status must be either active or expired"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			tt.setupMocks(api.service)

			w := api.do(t, "GET", "/api/v1/medicines"+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				for _, key := range []string{"items", "total", "page", "page_size", "total_pages"} {
					assert.Contains(t, body, key)
				}
			}
		})
	}
}

func TestAnalyticsHandler(t *testing.T) {
	api := newTestAPI(t)

	api.service.EXPECT().GetAnalytics(gomock.Any()).Return(&domain.Analytics{
		TotalStockValue: decimal.RequireFromString("20.00"),
		TotalMedicines:  2,
		ActiveMedicines: 1,
		Expired:         1,
	}, nil)

	w := api.do(t, "GET", "/api/v1/medicines/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Analytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, decimal.RequireFromString("20").Equal(got.TotalStockValue))
	assert.Equal(t, int64(2), got.TotalMedicines)

	api.service.EXPECT().GetAnalytics(gomock.Any()).Return(nil, domain.ErrStoreUnavailable)
	w = api.do(t, "GET", "/api/v1/medicines/analytics", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalyticsHandler_CheckExpiry(t *testing.T) {
	api := newTestAPI(t)

	api.service.EXPECT().ReconcileNow(gomock.Any()).Return(&domain.ReconciliationResult{
		MatchedCount:  3,
		ModifiedCount: 3,
		RanAt:         fixedNow,
	}, nil)

	w := api.do(t, "POST", "/api/v1/medicines/check-expiry", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got handlers.CheckExpiryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Expiry check completed", got.Message)
	assert.Equal(t, int64(3), got.MatchedCount)
	assert.Equal(t, int64(3), got.ModifiedCount)
}
