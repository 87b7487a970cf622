// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
)

const (
	TypeExpiryReconcile  = "expiry:reconcile"
	TypeAnalyticsRefresh = "analytics:refresh"
	TypeStockReport      = "report:stock"
	TypeImportXLSX       = "import:xlsx"
	TypeImportPDF        = "import:pdf"
	TypeUploadsCleanup   = "uploads:cleanup"
)

// ImportPayload points a worker at an uploaded file
type ImportPayload struct {
	FilePath   string `json:"file_path"`
	FileName   string `json:"file_name"`
	RequestID  string `json:"request_id,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}

// ImportResult is written as the task result of both import types
type ImportResult struct {
	Imported       int                    `json:"imported"`
	Failed         int                    `json:"failed"`
	Skipped        int                    `json:"skipped"`
	Errors         []spreadsheet.RowError `json:"errors,omitempty"`
	ProcessingTime string                 `json:"processing_time"`
}

// StockReportPayload requests an xlsx stock report
type StockReportPayload struct {
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}

// StockReportResult describes the uploaded report
type StockReportResult struct {
	Key          string `json:"key"`
	Location     string `json:"location"`
	DownloadURL  string `json:"download_url,omitempty"`
	Rows         int    `json:"rows"`
	GeneratedAt  string `json:"generated_at"`
	StockValue   string `json:"total_stock_value"`
	SoonToExpire int64  `json:"soon_to_expire"`
}

// CleanupResult reports what the uploads sweep removed
type CleanupResult struct {
	FilesDeleted int `json:"files_deleted"`
}

func decodePayload(t *asynq.Task, v interface{}) error {
	if len(t.Payload()) == 0 {
		return nil
	}
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		// a malformed payload will never succeed
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	return nil
}

// writeResult stores v as the task result so the jobs endpoint can read it.
// Tasks built outside a server carry no result writer.
func writeResult(ctx context.Context, t *asynq.Task, v interface{}, logger *slog.Logger) {
	rw := t.ResultWriter()
	if rw == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		logger.WarnContext(ctx, "failed to marshal task result", slog.String("error", err.Error()))
		return
	}
	if _, err := rw.Write(b); err != nil {
		logger.WarnContext(ctx, "failed to write task result",
			slog.String("task_id", rw.TaskID()),
			slog.String("error", err.Error()))
	}
}
