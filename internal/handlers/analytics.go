// internal/handlers/analytics.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/medstock-be/internal/core/ports"
)

// AnalyticsHandler serves the dashboard metrics and the manual expiry pass
type AnalyticsHandler struct {
	service ports.MedicineService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service ports.MedicineService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "analytics")),
	}
}

// CheckExpiryResponse is returned by the manual expiry pass
type CheckExpiryResponse struct {
	Message       string    `json:"message"`
	MatchedCount  int64     `json:"matched_count"`
	ModifiedCount int64     `json:"modified_count"`
	RanAt         time.Time `json:"ran_at"`
}

// GetAnalytics handles GET /api/v1/medicines/analytics
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.GetAnalytics(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "compute analytics", err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	respondJSON(w, http.StatusOK, analytics)
}

// CheckExpiry handles POST /api/v1/medicines/check-expiry. It runs the bulk
// pass synchronously.
func (h *AnalyticsHandler) CheckExpiry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.ReconcileNow(ctx)
	if err != nil {
		respondServiceError(w, r, h.logger, "check expiry", err)
		return
	}

	h.logger.InfoContext(ctx, "manual expiry check completed",
		slog.Int64("modified", result.ModifiedCount))

	respondJSON(w, http.StatusOK, CheckExpiryResponse{
		Message:       "Expiry check completed",
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		RanAt:         result.RanAt,
	})
}
