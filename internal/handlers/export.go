// internal/handlers/export.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	Items    []domain.Medicine `json:"items"`
	Metadata ExportMetadata    `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate time.Time         `json:"export_date"`
	TotalItems int               `json:"total_items"`
	Filters    map[string]string `json:"filters,omitempty"`
	Summary    *domain.Analytics `json:"summary,omitempty"`
}

// ExportHandler handles export operations
type ExportHandler struct {
	service ports.MedicineService
	clock   ports.Clock
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.MedicineService, clock ports.Clock, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		clock:   clock,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// Export handles GET /api/v1/medicines/export?format=xlsx|json. The listing
// filters apply; pagination does not.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatJSON {
		respondError(w, r, http.StatusBadRequest, "Format must be xlsx or json")
		return
	}

	params, err := parseListParams(r.URL.Query())
	if err != nil {
		respondServiceError(w, r, h.logger, "export medicines", err)
		return
	}

	items, err := services.ListAll(ctx, h.service, params)
	if err != nil {
		respondServiceError(w, r, h.logger, "export medicines", err)
		return
	}

	// the export still succeeds without a summary
	summary, err := h.service.GetAnalytics(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export without analytics summary",
			slog.String("error", err.Error()))
		summary = nil
	}

	now := h.clock.Now().UTC()
	if format == FormatJSON {
		h.writeJSON(w, r, items, summary, params, now)
		return
	}
	h.writeXLSX(w, r, items, summary, now)
}

func (h *ExportHandler) writeXLSX(w http.ResponseWriter, r *http.Request, items []domain.Medicine, summary *domain.Analytics, now time.Time) {
	ctx := r.Context()

	data, err := spreadsheet.Write(items, summary)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file", slog.String("error", err.Error()))
		respondError(w, r, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("medicines_export_%s.xlsx", now.Format("20060102_150405"))
	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(items)),
		slog.String("filename", filename))
}

func (h *ExportHandler) writeJSON(w http.ResponseWriter, r *http.Request, items []domain.Medicine, summary *domain.Analytics, params ports.ListParams, now time.Time) {
	if items == nil {
		items = []domain.Medicine{}
	}

	body, err := json.Marshal(JSONExportResponse{
		Items: items,
		Metadata: ExportMetadata{
			ExportDate: now,
			TotalItems: len(items),
			Filters:    appliedFilters(params),
			Summary:    summary,
		},
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to marshal JSON export", slog.String("error", err.Error()))
		respondError(w, r, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	filename := fmt.Sprintf("medicines_export_%s.json", now.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)

	h.logger.InfoContext(r.Context(), "JSON export completed", slog.Int("total_rows", len(items)))
}

func appliedFilters(p ports.ListParams) map[string]string {
	filters := map[string]string{}
	for k, v := range map[string]string{
		"search":   p.Search,
		"category": p.Category,
		"status":   p.Status,
		"sort":     p.SortField,
		"order":    p.SortDirection,
	} {
		if v != "" {
			filters[k] = v
		}
	}
	return filters
}
