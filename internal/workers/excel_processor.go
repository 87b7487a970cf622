// internal/workers/excel_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

// ExcelProcessor handles xlsx import tasks
type ExcelProcessor struct {
	importer
}

// NewExcelProcessor creates a new Excel processor
func NewExcelProcessor(service ports.MedicineService, uploadDir string, logger *slog.Logger) *ExcelProcessor {
	logger = logger.With(slog.String("processor", "excel"))
	return &ExcelProcessor{importer{service: service, uploadDir: uploadDir, logger: logger}}
}

// ProcessExcel imports every data row of the first sheet
func (p *ExcelProcessor) ProcessExcel(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ImportPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "processing Excel file",
		slog.String("file_path", payload.FilePath),
		slog.String("file_name", payload.FileName))

	data, err := os.ReadFile(payload.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w: %w", err, asynq.SkipRetry)
	}

	records, rowErrs, err := spreadsheet.Read(data)
	if err != nil {
		p.removeUpload(ctx, payload.FilePath)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	result := ImportResult{
		Skipped: len(rowErrs),
		Errors:  rowErrs,
	}
	if err := p.create(ctx, records, &result); err != nil {
		return fmt.Errorf("failed to import medicines: %w", err)
	}
	result.ProcessingTime = time.Since(start).String()

	writeResult(ctx, t, result, p.logger)
	p.removeUpload(ctx, payload.FilePath)

	p.logger.InfoContext(ctx, "Excel processing completed",
		slog.Int("imported", result.Imported),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped))

	return nil
}
