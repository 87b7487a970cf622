// internal/handlers/import.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
	"github.com/ammerola/medstock-be/internal/workers"
)

const multipartMemory = 8 << 20

// importTypes maps accepted upload extensions to their task type
var importTypes = map[string]string{
	".xlsx": workers.TypeImportXLSX,
	".pdf":  workers.TypeImportPDF,
}

// JobAccepted is returned when background work has been queued
type JobAccepted struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ImportHandler handles import operations
type ImportHandler struct {
	queue       ports.TaskQueue
	clock       ports.Clock
	logger      *slog.Logger
	maxFileSize int64
	uploadDir   string
}

// NewImportHandler creates a new import handler
func NewImportHandler(queue ports.TaskQueue, clock ports.Clock, logger *slog.Logger, maxFileSize int64, uploadDir string) *ImportHandler {
	return &ImportHandler{
		queue:       queue,
		clock:       clock,
		logger:      logger.With(slog.String("handler", "import")),
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// Import handles POST /api/v1/medicines/import. The multipart "file" field
// must hold an .xlsx workbook or a .pdf delivery note.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		respondError(w, r, http.StatusBadRequest, "Failed to parse form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		respondError(w, r, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	name := filepath.Base(header.Filename)
	taskType, ok := importTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		respondError(w, r, http.StatusBadRequest, "Only .xlsx and .pdf files are allowed")
		return
	}

	path, err := h.save(file, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload", slog.String("error", err.Error()))
		respondError(w, r, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	requestID, _ := ctx.Value(logger.ContextKeyRequestID).(string)
	jobID, err := h.queue.Enqueue(ctx, taskType, workers.ImportPayload{
		FilePath:   path,
		FileName:   name,
		RequestID:  requestID,
		UploadedAt: h.clock.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		os.Remove(path)
		h.logger.ErrorContext(ctx, "failed to enqueue import",
			slog.String("task_type", taskType),
			slog.String("error", err.Error()))
		respondError(w, r, http.StatusServiceUnavailable, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "import queued",
		slog.String("job_id", jobID),
		slog.String("task_type", taskType),
		slog.String("file_name", name),
		slog.Int64("size", header.Size))

	respondJSON(w, http.StatusAccepted, JobAccepted{
		JobID:   jobID,
		Status:  "queued",
		Message: fmt.Sprintf("%s has been queued for import", name),
	})
}

func (h *ImportHandler) save(src io.Reader, name string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(h.uploadDir, uuid.New().String()+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}

// GetJob handles GET /api/v1/jobs/{id}
func (h *ImportHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, r, http.StatusBadRequest, "Job ID is required")
		return
	}

	status, err := h.queue.Status(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, "get job status", err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// RequestStockReport handles POST /api/v1/reports/stock. The optional JSON
// body narrows the report by category and status.
func (h *ImportHandler) RequestStockReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload workers.StockReportPayload
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &payload); err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if _, err := domain.ParseStatus(payload.Status); err != nil {
		respondServiceError(w, r, h.logger, "queue stock report", err)
		return
	}
	payload.RequestedBy, _ = ctx.Value(logger.ContextKeyClientIP).(string)

	jobID, err := h.queue.Enqueue(ctx, workers.TypeStockReport, payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue stock report", slog.String("error", err.Error()))
		respondError(w, r, http.StatusServiceUnavailable, "Failed to queue stock report")
		return
	}

	respondJSON(w, http.StatusAccepted, JobAccepted{
		JobID:   jobID,
		Status:  "queued",
		Message: "Stock report has been queued",
	})
}
