// internal/workers/report_processor.go
package workers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
)

const reportLinkTTL = 24 * time.Hour

// ReportProcessor builds xlsx stock reports and uploads them to file storage
type ReportProcessor struct {
	service ports.MedicineService
	storage ports.FileStorage
	clock   ports.Clock
	prefix  string
	logger  *slog.Logger
}

// NewReportProcessor creates a new report processor. Reports are stored
// under prefix.
func NewReportProcessor(service ports.MedicineService, storage ports.FileStorage, clock ports.Clock, prefix string, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		service: service,
		storage: storage,
		clock:   clock,
		prefix:  prefix,
		logger:  logger.With(slog.String("processor", "report")),
	}
}

// GenerateStockReport writes every matching record plus the analytics
// summary to a workbook and uploads it.
func (p *ReportProcessor) GenerateStockReport(ctx context.Context, t *asynq.Task) error {
	var payload StockReportPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	items, err := services.ListAll(ctx, p.service, ports.ListParams{
		Category: payload.Category,
		Status:   payload.Status,
	})
	if errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("invalid report filter: %w: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("failed to list medicines: %w", err)
	}

	summary, err := p.service.GetAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get analytics: %w", err)
	}

	data, err := spreadsheet.Write(items, summary)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	now := p.clock.Now().UTC()
	key := path.Join(p.prefix, fmt.Sprintf("stock_%s.xlsx", now.Format("20060102_150405")))

	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), spreadsheet.ContentType)
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}

	result := StockReportResult{
		Key:          key,
		Location:     location,
		Rows:         len(items),
		GeneratedAt:  now.Format(time.RFC3339),
		StockValue:   summary.TotalStockValue.StringFixed(2),
		SoonToExpire: summary.SoonToExpire,
	}

	url, err := p.storage.GetPresignedURL(ctx, key, reportLinkTTL)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to presign report url",
			slog.String("key", key),
			slog.String("error", err.Error()))
	} else {
		result.DownloadURL = url
	}

	writeResult(ctx, t, result, p.logger)

	p.logger.InfoContext(ctx, "stock report generated",
		slog.String("key", key),
		slog.Int("rows", len(items)))
	return nil
}
