// internal/workers/pdf_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

const deliveryNoteFields = 5

// PDFProcessor imports delivery notes. Each medicine is one text line:
//
//	name | category | quantity | YYYY-MM-DD | price
type PDFProcessor struct {
	importer
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(service ports.MedicineService, uploadDir string, logger *slog.Logger) *PDFProcessor {
	logger = logger.With(slog.String("processor", "pdf"))
	return &PDFProcessor{importer{service: service, uploadDir: uploadDir, logger: logger}}
}

// ProcessPDF extracts delivery note lines and creates a record for each
func (p *PDFProcessor) ProcessPDF(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ImportPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "processing PDF",
		slog.String("file_path", payload.FilePath),
		slog.String("file_name", payload.FileName))

	lines, err := p.extractLines(ctx, payload.FilePath)
	if err != nil {
		p.removeUpload(ctx, payload.FilePath)
		return fmt.Errorf("failed to extract lines: %w: %w", err, asynq.SkipRetry)
	}

	records, skipped, rowErrs := ParseDeliveryNote(lines)
	result := ImportResult{Skipped: skipped, Errors: rowErrs}
	if err := p.create(ctx, records, &result); err != nil {
		return fmt.Errorf("failed to import medicines: %w", err)
	}
	result.ProcessingTime = time.Since(start).String()

	writeResult(ctx, t, result, p.logger)
	p.removeUpload(ctx, payload.FilePath)

	p.logger.InfoContext(ctx, "PDF processing completed",
		slog.Int("lines", len(lines)),
		slog.Int("imported", result.Imported),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped))

	return nil
}

func (p *PDFProcessor) extractLines(ctx context.Context, filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				slog.String("error", err.Error()))
			continue
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}

	return lines, nil
}

// ParseDeliveryNote turns delivery note lines into records. Blank lines and
// the header line are ignored. Other lines that are not a well formed
// medicine are counted as skipped; those with the right shape but bad values
// also get an error entry. Row numbers are 1-based line numbers.
func ParseDeliveryNote(lines []string) (records []spreadsheet.Record, skipped int, rowErrs []spreadsheet.RowError) {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != deliveryNoteFields {
			skipped++
			continue
		}
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		if strings.EqualFold(fields[0], "name") {
			continue
		}

		in, err := parseDeliveryLine(fields)
		if err != nil {
			skipped++
			rowErrs = append(rowErrs, spreadsheet.RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		records = append(records, spreadsheet.Record{Row: i + 1, Input: in})
	}
	return records, skipped, rowErrs
}

func parseDeliveryLine(f []string) (ports.CreateMedicineInput, error) {
	var in ports.CreateMedicineInput
	in.Name, in.Category = f[0], f[1]

	qty, err := strconv.Atoi(f[2])
	if err != nil {
		return in, fmt.Errorf("invalid quantity %q", f[2])
	}
	in.Quantity = qty

	expiry, err := domain.ParseDate(f[3])
	if err != nil {
		return in, fmt.Errorf("invalid expiry date %q", f[3])
	}
	in.ExpiryDate = expiry

	price, ok := parseCurrency(f[4])
	if !ok {
		return in, fmt.Errorf("invalid price %q", f[4])
	}
	in.Price = price

	return in, nil
}

func parseCurrency(val string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(val, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
