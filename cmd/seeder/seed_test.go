package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/adapters/sqlite"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/internal/pkg/clock"
	"github.com/ammerola/medstock-be/test/helpers"
	"github.com/ammerola/medstock-be/test/mocks"
)

func TestDefaultMedicines(t *testing.T) {
	inputs := defaultMedicines()
	require.Len(t, inputs, 12)
	for _, in := range inputs {
		assert.NotEmpty(t, in.Name)
		assert.False(t, in.ExpiryDate.IsZero(), in.Name)
		assert.True(t, in.Price.IsPositive(), in.Name)
	}
}

func TestSeed_SQLite(t *testing.T) {
	ctx := context.Background()
	log := helpers.TestLogger()

	st, err := sqlite.Open(ctx, sqlite.InMemory, log)
	require.NoError(t, err)
	defer st.Close()

	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	svc := services.NewMedicineService(st, nil, clock.NewManual(now), nil, services.MedicineServiceConfig{}, log)

	summary, err := seed(ctx, st, svc, defaultMedicines(), seedOptions{}, log)
	require.NoError(t, err)
	assert.Equal(t, 12, summary.Created)
	// Aspirin, Lisinopril and Multivitamin Complex are past their date
	assert.Equal(t, 3, summary.Expired)

	// re-seeding with clear replaces instead of duplicating
	summary, err = seed(ctx, st, svc, defaultMedicines(), seedOptions{Clear: true, Reconcile: true}, log)
	require.NoError(t, err)
	assert.Equal(t, int64(12), summary.Cleared)

	res, err := svc.List(ctx, ports.ListParams{Status: "expired"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
}

func TestSeed_SkipsInvalidAndDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockMedicineStore(ctrl)
	svc := mocks.NewMockMedicineService(ctrl)
	log := helpers.TestLogger()

	inputs := []ports.CreateMedicineInput{
		helpers.CreateTestMedicineInput(),
		helpers.CreateTestMedicineInput(func(in *ports.CreateMedicineInput) { in.Quantity = -1 }),
	}

	summary, err := seed(context.Background(), store, svc, inputs, seedOptions{DryRun: true, Clear: true}, log)
	require.NoError(t, err)
	assert.Zero(t, summary.Created)

	gomock.InOrder(
		svc.EXPECT().Create(gomock.Any(), inputs[0]).Return(helpers.CreateTestMedicine(), nil),
		svc.EXPECT().Create(gomock.Any(), inputs[1]).
			Return(nil, domain.NewValidationError("quantity", "Quantity cannot be negative")),
	)

	summary, err = seed(context.Background(), store, svc, inputs, seedOptions{}, log)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Failed)
}

func TestLoadWorkbook(t *testing.T) {
	data, err := spreadsheet.Write([]domain.Medicine{*helpers.CreateTestMedicine()}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	inputs, err := loadWorkbook(path, helpers.TestLogger())
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Ibuprofen 400mg", inputs[0].Name)

	_, err = loadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), helpers.TestLogger())
	assert.Error(t, err)
}
