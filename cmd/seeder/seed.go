// cmd/seeder/seed.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

// defaultMedicines is the sample stock loaded when no file is given. Two of
// the records are already past their expiry date.
func defaultMedicines() []ports.CreateMedicineInput {
	m := func(name, category string, qty int, expiry, price string) ports.CreateMedicineInput {
		d, _ := time.Parse(domain.DateLayout, expiry)
		return ports.CreateMedicineInput{
			Name:       name,
			Category:   category,
			Quantity:   qty,
			Price:      decimal.RequireFromString(price),
			ExpiryDate: d,
		}
	}

	return []ports.CreateMedicineInput{
		m("Paracetamol 500mg", "Pain Relief", 150, "2025-12-31", "5.99"),
		m("Ibuprofen 400mg", "Pain Relief", 200, "2026-03-15", "7.50"),
		m("Amoxicillin 250mg", "Antibiotic", 80, "2025-11-20", "12.99"),
		m("Cetirizine 10mg", "Antihistamine", 120, "2025-10-30", "8.75"),
		m("Aspirin 100mg", "Cardiovascular", 90, "2024-08-15", "6.50"),
		m("Omeprazole 20mg", "Gastrointestinal", 60, "2025-12-10", "15.99"),
		m("Metformin 500mg", "Diabetes", 100, "2026-01-25", "10.50"),
		m("Lisinopril 10mg", "Cardiovascular", 75, "2024-09-20", "14.25"),
		m("Azithromycin 500mg", "Antibiotic", 50, "2025-11-05", "18.99"),
		m("Loratadine 10mg", "Antihistamine", 110, "2026-02-14", "9.25"),
		m("Vitamin D3 1000IU", "Supplement", 200, "2026-06-30", "11.99"),
		m("Multivitamin Complex", "Supplement", 150, "2025-10-15", "16.50"),
	}
}

// loadWorkbook reads seed records from an xlsx file. Bad rows are logged and
// skipped.
func loadWorkbook(path string, log *slog.Logger) ([]ports.CreateMedicineInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, rowErrs, err := spreadsheet.Read(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, re := range rowErrs {
		log.Warn("skipping row", slog.Int("row", re.Row), slog.String("error", re.Message))
	}

	inputs := make([]ports.CreateMedicineInput, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, r.Input)
	}
	return inputs, nil
}

// seedSummary reports the outcome of one seeding run
type seedSummary struct {
	Cleared int64
	Created int
	Failed  int
	Expired int
}

type seedOptions struct {
	Clear     bool
	Reconcile bool
	DryRun    bool
}

// seed writes inputs through the service so every record gets a derived
// status. Validation failures skip the record; store failures abort.
func seed(ctx context.Context, store ports.MedicineStore, svc ports.MedicineService, inputs []ports.CreateMedicineInput, opts seedOptions, log *slog.Logger) (*seedSummary, error) {
	summary := &seedSummary{}
	if opts.DryRun {
		for _, in := range inputs {
			log.Info("would create medicine", slog.String("name", in.Name), slog.String("category", in.Category))
		}
		return summary, nil
	}

	if opts.Clear {
		n, err := store.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to clear medicines: %w", err)
		}
		summary.Cleared = n
		log.Info("cleared existing medicines", slog.Int64("deleted", n))
	}

	for _, in := range inputs {
		m, err := svc.Create(ctx, in)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				summary.Failed++
				log.Warn("skipping invalid medicine",
					slog.String("name", in.Name),
					slog.String("error", err.Error()))
				continue
			}
			return summary, fmt.Errorf("failed to create %q: %w", in.Name, err)
		}
		summary.Created++
		if m.Status == domain.StatusExpired {
			summary.Expired++
		}
	}

	if opts.Reconcile {
		result, err := svc.ReconcileNow(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to reconcile: %w", err)
		}
		log.Info("expiry pass completed", slog.Int64("modified", result.ModifiedCount))
	}

	return summary, nil
}
