// internal/handlers/medicines.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
)

const maxBodyBytes = 1 << 20

// MedicineHandler handles medicine stock HTTP requests
type MedicineHandler struct {
	service ports.MedicineService
	logger  *slog.Logger
}

// NewMedicineHandler creates a new medicine handler
func NewMedicineHandler(service ports.MedicineService, logger *slog.Logger) *MedicineHandler {
	return &MedicineHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "medicine")),
	}
}

// GetMedicine handles GET /api/v1/medicines/{id}
func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	m, err := h.service.Get(withMedicine(r, id), id)
	if err != nil {
		respondServiceError(w, r, h.logger, "retrieve medicine", err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// ListMedicines handles GET /api/v1/medicines
func (h *MedicineHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		respondServiceError(w, r, h.logger, "list medicines", err)
		return
	}

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		respondServiceError(w, r, h.logger, "list medicines", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CreateMedicine handles POST /api/v1/medicines
func (h *MedicineHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req CreateMedicineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondServiceError(w, r, h.logger, "create medicine", err)
		return
	}

	m, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, h.logger, "create medicine", err)
		return
	}

	respondJSON(w, http.StatusCreated, m)
}

// UpdateMedicine handles PUT /api/v1/medicines/{id}
func (h *MedicineHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateMedicineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		respondServiceError(w, r, h.logger, "update medicine", err)
		return
	}

	m, err := h.service.Update(withMedicine(r, id), id, patch)
	if err != nil {
		respondServiceError(w, r, h.logger, "update medicine", err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// DeleteMedicine handles DELETE /api/v1/medicines/{id}. The removed record is
// returned.
func (h *MedicineHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	m, err := h.service.Delete(withMedicine(r, id), id)
	if err != nil {
		respondServiceError(w, r, h.logger, "delete medicine", err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

func (h *MedicineHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid medicine ID format")
		return uuid.Nil, false
	}
	return id, true
}

func withMedicine(r *http.Request, id uuid.UUID) context.Context {
	return logger.WithValue(r.Context(), logger.ContextKeyMedicine, id.String())
}

// parseListParams reads the listing query. Defaults and bounds are applied by
// the service; only malformed numbers are rejected here.
func parseListParams(q url.Values) (ports.ListParams, error) {
	params := ports.ListParams{
		Search:        q.Get("search"),
		Category:      q.Get("category"),
		Status:        q.Get("status"),
		SortField:     q.Get("sort"),
		SortDirection: q.Get("order"),
	}

	var err error
	if params.Page, err = optionalInt(q, "page"); err != nil {
		return params, err
	}
	if params.PageSize, err = optionalInt(q, "limit"); err != nil {
		return params, err
	}
	return params, nil
}

func optionalInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, domain.NewValidationError(key, key+" must be a positive integer")
	}
	return n, nil
}

// CreateMedicineRequest represents the request body for creating a medicine.
// Any status sent by the client is ignored.
type CreateMedicineRequest struct {
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Quantity   *int             `json:"quantity"`
	Price      *decimal.Decimal `json:"price"`
	ExpiryDate string           `json:"expiry_date"`
}

// ToInput checks presence of every field and converts the request
func (r *CreateMedicineRequest) ToInput() (ports.CreateMedicineInput, error) {
	in := ports.CreateMedicineInput{
		Name:     r.Name,
		Category: r.Category,
	}

	if r.Quantity == nil {
		return in, domain.NewValidationError("quantity", "Quantity is required")
	}
	in.Quantity = *r.Quantity

	if r.Price == nil {
		return in, domain.NewValidationError("price", "Price is required")
	}
	in.Price = *r.Price

	if r.ExpiryDate == "" {
		return in, domain.NewValidationError("expiry_date", "Expiry date is required")
	}
	expiry, err := domain.ParseDate(r.ExpiryDate)
	if err != nil {
		return in, err
	}
	in.ExpiryDate = expiry

	return in, nil
}

// UpdateMedicineRequest represents the request body for updating a medicine.
// Omitted fields are left unchanged.
type UpdateMedicineRequest struct {
	Name       *string          `json:"name"`
	Category   *string          `json:"category"`
	Quantity   *int             `json:"quantity"`
	Price      *decimal.Decimal `json:"price"`
	ExpiryDate *string          `json:"expiry_date"`
}

// ToPatch converts the request to a domain patch
func (r *UpdateMedicineRequest) ToPatch() (domain.MedicinePatch, error) {
	patch := domain.MedicinePatch{
		Name:     r.Name,
		Category: r.Category,
		Quantity: r.Quantity,
		Price:    r.Price,
	}

	if r.ExpiryDate != nil {
		expiry, err := domain.ParseDate(*r.ExpiryDate)
		if err != nil {
			return patch, err
		}
		patch.ExpiryDate = &expiry
	}

	return patch, nil
}
