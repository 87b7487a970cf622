// internal/workers/importer.go
package workers

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

// importer creates records one by one through the service so every row gets
// the same validation and status derivation as an API create.
type importer struct {
	service   ports.MedicineService
	uploadDir string
	logger    *slog.Logger
}

// create returns an error only when the store is unavailable; the task is
// then retried. Validation failures are counted per row.
func (im *importer) create(ctx context.Context, records []spreadsheet.Record, result *ImportResult) error {
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := im.service.Create(ctx, rec.Input)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, domain.ErrStoreUnavailable):
			return err
		default:
			result.Failed++
			result.Errors = append(result.Errors, spreadsheet.RowError{Row: rec.Row, Message: err.Error()})
		}
	}
	return nil
}

// removeUpload deletes a processed upload, but only inside the upload dir
func (im *importer) removeUpload(ctx context.Context, path string) {
	if im.uploadDir == "" {
		return
	}
	dir, err := filepath.Abs(im.uploadDir)
	if err != nil {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil || !strings.HasPrefix(abs, dir+string(filepath.Separator)) {
		return
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		im.logger.WarnContext(ctx, "failed to remove upload",
			slog.String("file", abs),
			slog.String("error", err.Error()))
	}
}
