package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/medstock-be/internal/core/domain"
)

func TestObserveReconciliation(t *testing.T) {
	m := New(false)
	ranAt := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	m.ObserveReconciliation(&domain.ReconciliationResult{MatchedCount: 4, ModifiedCount: 4, RanAt: ranAt}, 20*time.Millisecond, nil)
	m.ObserveReconciliation(&domain.ReconciliationResult{ModifiedCount: 1, RanAt: ranAt}, time.Millisecond, nil)
	m.ObserveReconciliation(nil, time.Millisecond, errors.New("store down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reconcileRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconcileRuns.WithLabelValues("error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.reconcileExpired))
	assert.Equal(t, float64(ranAt.Unix()), testutil.ToFloat64(m.lastReconcile))
	assert.Equal(t, uint64(3), histogramSamples(t, m, "medstock_reconcile_duration_seconds"))
}

func histogramSamples(t *testing.T, m *Metrics, name string) uint64 {
	t.Helper()
	families, err := m.registry.Gather()
	require.NoError(t, err)

	var count uint64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			count += metric.GetHistogram().GetSampleCount()
		}
	}
	return count
}

func TestObserveAnalytics(t *testing.T) {
	m := New(false)

	m.ObserveAnalytics(&domain.Analytics{
		TotalStockValue: decimal.RequireFromString("1234.50"),
		ActiveMedicines: 9,
		Expired:         3,
		SoonToExpire:    2,
	})
	m.ObserveAnalytics(nil)

	assert.Equal(t, 1234.5, testutil.ToFloat64(m.stockValue))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.medicines.WithLabelValues("active")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.medicines.WithLabelValues("expired")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.soonToExpire))
}

func TestHTTPMiddleware(t *testing.T) {
	m := New(false)
	mux := http.NewServeMux()
	mux.Handle("GET /api/medicines/{id}", m.Middleware("/api/medicines/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/medicines/abc", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/medicines/{id}", "GET", "404")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New(true)
	m.ObserveTask("expiry:reconcile", nil)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `medstock_worker_tasks_total{outcome="success",type="expiry:reconcile"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
