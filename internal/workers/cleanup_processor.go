// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/core/ports"
)

// CleanupProcessor removes uploads that were never processed
type CleanupProcessor struct {
	uploadDir string
	retention time.Duration
	clock     ports.Clock
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(uploadDir string, retention time.Duration, clock ports.Clock, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		uploadDir: uploadDir,
		retention: retention,
		clock:     clock,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupUploads deletes files in the upload dir older than the retention
func (p *CleanupProcessor) CleanupUploads(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up uploads", slog.String("dir", p.uploadDir))

	cutoff := p.clock.Now().Add(-p.retention)
	var deleted int

	err := filepath.WalkDir(p.uploadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			p.logger.WarnContext(ctx, "failed to delete upload",
				slog.String("file", path),
				slog.String("error", err.Error()))
			return nil
		}
		deleted++
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to walk upload directory: %w", err)
	}

	writeResult(ctx, t, CleanupResult{FilesDeleted: deleted}, p.logger)

	p.logger.InfoContext(ctx, "uploads cleaned up", slog.Int("files_deleted", deleted))
	return nil
}
