// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/medstock-be/internal/adapters/sqlite"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/internal/pkg/clock"
	"github.com/ammerola/medstock-be/test/helpers"
)

var benchNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var categories = []string{
	"Pain Relief", "Antibiotic", "Antihistamine", "Cardiovascular",
	"Gastrointestinal", "Diabetes", "Supplement",
}

// newBenchService opens an in-memory store holding n medicines, a third of
// them past their expiry date.
func newBenchService(b *testing.B, n int) (*services.MedicineService, *sqlite.Store, []domain.Medicine) {
	b.Helper()
	ctx := context.Background()
	log := helpers.TestLogger()

	st, err := sqlite.Open(ctx, sqlite.InMemory, log)
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	b.Cleanup(st.Close)

	svc := services.NewMedicineService(st, nil, clock.NewManual(benchNow), nil, services.MedicineServiceConfig{
		ExpiryWindowDays: domain.DefaultExpiryWindowDays,
	}, log)

	created := make([]domain.Medicine, 0, n)
	for _, in := range benchInputs(n) {
		m, err := svc.Create(ctx, in)
		if err != nil {
			b.Fatalf("seed: %v", err)
		}
		created = append(created, *m)
	}
	return svc, st, created
}

func benchInputs(n int) []ports.CreateMedicineInput {
	inputs := make([]ports.CreateMedicineInput, n)
	for i := range inputs {
		offset := 30 + i%400
		if i%3 == 0 {
			offset = -offset
		}
		inputs[i] = ports.CreateMedicineInput{
			Name:       fmt.Sprintf("Medicine %05d %dmg", i, 100+i%9*50),
			Category:   categories[i%len(categories)],
			Quantity:   i % 250,
			Price:      decimal.New(int64(199+i%5000), -2),
			ExpiryDate: domain.NormalizeDate(benchNow).AddDate(0, 0, offset),
		}
	}
	return inputs
}

// deliveryNoteLines renders n pipe-delimited rows as extracted from a PDF
func deliveryNoteLines(n int) []string {
	lines := []string{
		"PharmaDirect Ltd. Delivery note",
		"Name | Category | Quantity | Expiry | Price",
	}
	for _, in := range benchInputs(n) {
		lines = append(lines, fmt.Sprintf("%s | %s | %d | %s | %s",
			in.Name, in.Category, in.Quantity, in.ExpiryDate.Format(domain.DateLayout), in.Price.StringFixed(2)))
	}
	return append(lines, fmt.Sprintf("Total items: %d", n))
}
