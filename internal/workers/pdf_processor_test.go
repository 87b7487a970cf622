// internal/workers/pdf_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/medstock-be/internal/workers"
	"github.com/ammerola/medstock-be/test/helpers"
	"github.com/ammerola/medstock-be/test/mocks"
)

func TestParseDeliveryNote(t *testing.T) {
	lines := []string{
		"PharmaDirect Ltd. Delivery note #4411",
		"Name | Category | Quantity | Expiry | Price",
		"Paracetamol 500mg | Pain Relief | 150 | 2025-12-31 | 5.99",
		"",
		"  Amoxicillin 250mg|Antibiotics|75|2024-08-15|$12.50  ",
		"Insulin Glargine | Diabetes | twenty | 2025-09-30 | 89.99",
		"Cetirizine 10mg | Allergy | 100 | 31/12/2025 | 8.25",
		"Vitamin D3 | Vitamins | 200 | 2026-03-01 | 1,200.00",
		"Total items: 4",
	}

	records, skipped, rowErrs := workers.ParseDeliveryNote(lines)

	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].Row)
	assert.Equal(t, "Paracetamol 500mg", records[0].Input.Name)
	assert.Equal(t, "Pain Relief", records[0].Input.Category)
	assert.Equal(t, 150, records[0].Input.Quantity)
	assert.True(t, decimal.RequireFromString("5.99").Equal(records[0].Input.Price))
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), records[0].Input.ExpiryDate)

	assert.Equal(t, "Amoxicillin 250mg", records[1].Input.Name)
	assert.True(t, decimal.RequireFromString("12.50").Equal(records[1].Input.Price))
	assert.True(t, decimal.RequireFromString("1200").Equal(records[2].Input.Price))

	// title line, total line and the two bad rows
	assert.Equal(t, 4, skipped)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 6, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Message, "quantity")
	assert.Equal(t, 7, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Message, "expiry date")
}

func TestParseDeliveryNote_Empty(t *testing.T) {
	records, skipped, rowErrs := workers.ParseDeliveryNote(nil)
	assert.Empty(t, records)
	assert.Zero(t, skipped)
	assert.Empty(t, rowErrs)
}

func TestPDFProcessor_ProcessPDF(t *testing.T) {
	tests := []struct {
		name          string
		payload       []byte
		errorContains string
	}{
		{
			name:          "malformed_payload",
			payload:       []byte(`{"file_path":`),
			errorContains: "failed to unmarshal payload",
		},
		{
			name:          "missing_file",
			payload:       mustJSON(t, workers.ImportPayload{FilePath: "/nonexistent/note.pdf"}),
			errorContains: "failed to extract lines",
		},
		{
			name:          "not_a_pdf",
			payload:       mustJSON(t, workers.ImportPayload{FilePath: helpers.CreateTempFile(t, []byte("plain text"), ".pdf")}),
			errorContains: "failed to extract lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockMedicineService(ctrl)
			processor := workers.NewPDFProcessor(service, t.TempDir(), helpers.TestLogger())

			err := processor.ProcessPDF(context.Background(), asynq.NewTask(workers.TypeImportPDF, tt.payload))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.True(t, errors.Is(err, asynq.SkipRetry), "bad input must not be retried")
		})
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
