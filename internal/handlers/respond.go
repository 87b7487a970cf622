// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	requestID, _ := r.Context().Value(logger.ContextKeyRequestID).(string)
	respondJSON(w, status, ErrorResponse{Error: message, RequestID: requestID})
}

// respondServiceError maps core errors onto HTTP statuses: validation 400,
// not found 404, store unavailable 503, anything else 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		requestID, _ := r.Context().Value(logger.ContextKeyRequestID).(string)
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     verr.Message,
			Field:     verr.Field,
			RequestID: requestID,
		})
		return
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "Medicine not found")
		return
	case errors.Is(err, ports.ErrJobNotFound):
		respondError(w, r, http.StatusNotFound, "Job not found")
		return
	}

	log.ErrorContext(r.Context(), "failed to "+op, slog.String("error", err.Error()))

	if errors.Is(err, domain.ErrStoreUnavailable) {
		w.Header().Set("Retry-After", "5")
		respondError(w, r, http.StatusServiceUnavailable, "Storage is temporarily unavailable")
		return
	}
	respondError(w, r, http.StatusInternalServerError, "Failed to "+op)
}
