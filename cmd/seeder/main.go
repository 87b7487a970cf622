// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ammerola/medstock-be/internal/adapters/store"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/internal/pkg/clock"
	"github.com/ammerola/medstock-be/internal/pkg/config"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
)

func main() {
	var (
		file      = flag.String("file", "", "xlsx workbook to load instead of the sample stock")
		clear     = flag.Bool("clear", false, "Delete every medicine before seeding")
		reconcile = flag.Bool("reconcile", false, "Run an expiry pass after seeding")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview changes without modifying the store")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "json")

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	inputs := defaultMedicines()
	if *file != "" {
		inputs, err = loadWorkbook(*file, log)
		if err != nil {
			log.Error("failed to load seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx := context.Background()
	medicines, database, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		log.Error("invalid scheduler timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := services.NewMedicineService(medicines, nil, clock.New(loc), nil, services.MedicineServiceConfig{
		ExpiryWindowDays: cfg.Analytics.ExpiryWindowDays,
	}, log)

	summary, err := seed(ctx, medicines, svc, inputs, seedOptions{
		Clear:     *clear,
		Reconcile: *reconcile,
		DryRun:    *dryRun,
	}, log)
	if err != nil {
		log.Error("seed operation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Store:            %s\n", database.Driver())
	fmt.Printf("Cleared:          %d\n", summary.Cleared)
	fmt.Printf("Created:          %d\n", summary.Created)
	fmt.Printf("Already expired:  %d\n", summary.Expired)
	fmt.Printf("Skipped invalid:  %d\n", summary.Failed)

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the store")
	}
}
