// internal/adapters/storage/storage.go
package storage

import (
	"context"
	"log/slog"

	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/config"
)

// New returns the file storage selected by cfg.StorageDriver
func New(ctx context.Context, cfg config.AWSConfig, logger *slog.Logger) (ports.FileStorage, error) {
	if cfg.StorageDriver == "local" {
		return NewLocalStorage(cfg.LocalDir, logger)
	}

	return NewS3Storage(ctx, &S3Config{
		Region:          cfg.Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		UsePathStyle:    cfg.UsePathStyle,
	}, logger)
}
