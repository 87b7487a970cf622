package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/test/helpers"
	"github.com/ammerola/medstock-be/test/mocks"
)

func TestAnalyticsAggregator_Compute(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	window := domain.ExpiryWindow{
		From: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		rows     []domain.StatusAggregate
		expected domain.Analytics
	}{
		{
			name: "empty_store_yields_zeroes",
			rows: nil,
			expected: domain.Analytics{
				TotalStockValue: decimal.Zero,
			},
		},
		{
			name: "expired_stock_is_not_valued",
			rows: []domain.StatusAggregate{
				{Status: domain.StatusActive, Count: 1, StockValue: decimal.RequireFromString("20.00")},
				{Status: domain.StatusExpired, Count: 1, StockValue: decimal.RequireFromString("500.00"), InWindow: 0},
			},
			expected: domain.Analytics{
				TotalStockValue: decimal.RequireFromString("20.00"),
				TotalMedicines:  2,
				ActiveMedicines: 1,
				Expired:         1,
			},
		},
		{
			name: "soon_to_expire_only_counts_active",
			rows: []domain.StatusAggregate{
				{Status: domain.StatusActive, Count: 5, StockValue: decimal.RequireFromString("123.45"), InWindow: 2},
				{Status: domain.StatusExpired, Count: 3, StockValue: decimal.RequireFromString("10"), InWindow: 3},
			},
			expected: domain.Analytics{
				TotalStockValue: decimal.RequireFromString("123.45"),
				TotalMedicines:  8,
				ActiveMedicines: 5,
				Expired:         3,
				SoonToExpire:    2,
			},
		},
		{
			name: "unknown_status_is_skipped",
			rows: []domain.StatusAggregate{
				{Status: domain.StatusActive, Count: 1, StockValue: decimal.NewFromInt(1)},
				{Status: domain.Status("archived"), Count: 7},
			},
			expected: domain.Analytics{
				TotalStockValue: decimal.NewFromInt(1),
				TotalMedicines:  1,
				ActiveMedicines: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockMedicineStore(ctrl)
			store.EXPECT().AggregateByStatus(gomock.Any(), window).Return(tt.rows, nil)

			agg := services.NewAnalyticsAggregator(store, 30, helpers.TestLogger())
			got, err := agg.Compute(context.Background(), now)
			require.NoError(t, err)

			assert.True(t, tt.expected.TotalStockValue.Equal(got.TotalStockValue),
				"stock value: want %s, got %s", tt.expected.TotalStockValue, got.TotalStockValue)
			assert.Equal(t, tt.expected.TotalMedicines, got.TotalMedicines)
			assert.Equal(t, tt.expected.ActiveMedicines, got.ActiveMedicines)
			assert.Equal(t, tt.expected.Expired, got.Expired)
			assert.Equal(t, tt.expected.SoonToExpire, got.SoonToExpire)

			assert.Equal(t, got.ActiveMedicines+got.Expired, got.TotalMedicines)
			assert.LessOrEqual(t, got.SoonToExpire, got.ActiveMedicines)
		})
	}
}

func TestAnalyticsAggregator_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockMedicineStore(ctrl)
	store.EXPECT().AggregateByStatus(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	agg := services.NewAnalyticsAggregator(store, 0, helpers.TestLogger())
	_, err := agg.Compute(context.Background(), time.Now())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestAnalyticsAggregator_DefaultWindow(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	store := mocks.NewMockMedicineStore(ctrl)
	store.EXPECT().
		AggregateByStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w domain.ExpiryWindow) ([]domain.StatusAggregate, error) {
			assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), w.From)
			assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), w.To)
			return nil, nil
		})

	agg := services.NewAnalyticsAggregator(store, -1, helpers.TestLogger())
	_, err := agg.Compute(context.Background(), now)
	require.NoError(t, err)
}
