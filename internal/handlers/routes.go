// internal/handlers/routes.go
package handlers

import (
	"net/http"

	"github.com/ammerola/medstock-be/internal/pkg/metrics"
)

const apiV1 = "/api/v1"

// Handlers groups everything mounted on the API mux
type Handlers struct {
	Medicines *MedicineHandler
	Analytics *AnalyticsHandler
	Export    *ExportHandler
	// Import is optional; without it import, report and job routes are not
	// mounted.
	Import *ImportHandler
	Health *HealthHandler
	// Metrics is optional; it adds request metrics and GET /metrics
	Metrics *metrics.Metrics
}

// RegisterRoutes mounts every route using method-specific patterns
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	handle := func(pattern string, fn http.HandlerFunc) {
		if h.Metrics != nil {
			mux.Handle(pattern, h.Metrics.Middleware(pattern, fn))
			return
		}
		mux.Handle(pattern, fn)
	}

	if h.Health != nil {
		mux.HandleFunc("GET /health", h.Health.Health)
		mux.HandleFunc("GET /health/live", h.Health.Liveness)
		mux.HandleFunc("GET /health/ready", h.Health.Readiness)
	}
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics.Handler())
	}

	handle("GET "+apiV1+"/medicines", h.Medicines.ListMedicines)
	handle("POST "+apiV1+"/medicines", h.Medicines.CreateMedicine)
	handle("GET "+apiV1+"/medicines/{id}", h.Medicines.GetMedicine)
	handle("PUT "+apiV1+"/medicines/{id}", h.Medicines.UpdateMedicine)
	handle("DELETE "+apiV1+"/medicines/{id}", h.Medicines.DeleteMedicine)

	handle("GET "+apiV1+"/medicines/analytics", h.Analytics.GetAnalytics)
	handle("POST "+apiV1+"/medicines/check-expiry", h.Analytics.CheckExpiry)
	handle("GET "+apiV1+"/medicines/export", h.Export.Export)

	if h.Import != nil {
		handle("POST "+apiV1+"/medicines/import", h.Import.Import)
		handle("POST "+apiV1+"/reports/stock", h.Import.RequestStockReport)
		handle("GET "+apiV1+"/jobs/{id}", h.Import.GetJob)
	}
}
