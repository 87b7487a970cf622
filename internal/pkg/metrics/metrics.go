// internal/pkg/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ammerola/medstock-be/internal/core/domain"
)

const namespace = "medstock"

// Metrics owns a private registry with the service's collectors. It
// implements ports.Observer.
type Metrics struct {
	registry *prometheus.Registry

	reconcileRuns     *prometheus.CounterVec
	reconcileExpired  prometheus.Counter
	reconcileDuration prometheus.Histogram
	lastReconcile     prometheus.Gauge

	stockValue   prometheus.Gauge
	medicines    *prometheus.GaugeVec
	soonToExpire prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	tasksProcessed *prometheus.CounterVec
}

// New registers every collector on a fresh registry. withRuntime adds the
// Go and process collectors.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		registry: reg,
		reconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "runs_total",
			Help:      "Expiry reconciliation passes by outcome.",
		}, []string{"outcome"}),
		reconcileExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "expired_total",
			Help:      "Medicines moved to expired by reconciliation.",
		}),
		reconcileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "duration_seconds",
			Help:      "Duration of reconciliation passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastReconcile: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful reconciliation.",
		}),
		stockValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "stock_value",
			Help:      "Total value of active stock at the last analytics computation.",
		}),
		medicines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "medicines",
			Help:      "Medicine records by status at the last analytics computation.",
		}, []string{"status"}),
		soonToExpire: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "soon_to_expire",
			Help:      "Active medicines expiring inside the look-ahead window.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"route", "method"}),
		tasksProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "tasks_total",
			Help:      "Background tasks handled by type and outcome.",
		}, []string{"type", "outcome"}),
	}

	reg.MustRegister(
		m.reconcileRuns,
		m.reconcileExpired,
		m.reconcileDuration,
		m.lastReconcile,
		m.stockValue,
		m.medicines,
		m.soonToExpire,
		m.httpRequests,
		m.httpDuration,
		m.tasksProcessed,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveReconciliation(result *domain.ReconciliationResult, took time.Duration, err error) {
	m.reconcileDuration.Observe(took.Seconds())
	if err != nil || result == nil {
		m.reconcileRuns.WithLabelValues("error").Inc()
		return
	}
	m.reconcileRuns.WithLabelValues("success").Inc()
	m.reconcileExpired.Add(float64(result.ModifiedCount))
	m.lastReconcile.Set(float64(result.RanAt.Unix()))
}

func (m *Metrics) ObserveAnalytics(a *domain.Analytics) {
	if a == nil {
		return
	}
	value, _ := a.TotalStockValue.Float64()
	m.stockValue.Set(value)
	m.medicines.WithLabelValues(string(domain.StatusActive)).Set(float64(a.ActiveMedicines))
	m.medicines.WithLabelValues(string(domain.StatusExpired)).Set(float64(a.Expired))
	m.soonToExpire.Set(float64(a.SoonToExpire))
}

// ObserveTask counts one background task execution.
func (m *Metrics) ObserveTask(taskType string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.tasksProcessed.WithLabelValues(taskType, outcome).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method string, code int, took time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(took.Seconds())
}
