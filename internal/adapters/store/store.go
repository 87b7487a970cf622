// internal/adapters/store/store.go
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/medstock-be/internal/adapters/db"
	"github.com/ammerola/medstock-be/internal/adapters/sqlite"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/config"
)

// Drivers accepted in STORE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects the configured record store. The returned Database owns the
// connection and must be closed by the caller.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.MedicineStore, ports.Database, error) {
	switch cfg.Store.Driver {
	case DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, s, nil

	case DriverPostgres, "":
		logger.Info("connecting to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Name))

		if cfg.Database.AutoMigrate {
			if err := db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
				DatabaseURL: cfg.GetDatabaseURL(),
				TableName:   "schema_migrations",
				SchemaName:  "public",
			}, logger, 3); err != nil {
				return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		database, err := db.NewDatabase(ctx, &db.Config{
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			User:               cfg.Database.User,
			Password:           cfg.Database.Password,
			Database:           cfg.Database.Name,
			SSLMode:            cfg.Database.SSLMode,
			MaxConnections:     cfg.Database.MaxConnections,
			MinConnections:     cfg.Database.MinConnections,
			MaxConnLifetime:    cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
			HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
			ConnectTimeout:     cfg.Database.ConnectTimeout,
			StatementCacheMode: cfg.Database.StatementCacheMode,
			EnableQueryLogging: cfg.Database.EnableQueryLogging,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return db.NewMedicineStore(database, logger), database, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
