// Package metrics provides Prometheus metrics collection for the grind calculator.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuantityCalculationsTotal counts quantity calculations by outcome.
	QuantityCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantity_calculations_total",
			Help: "Total number of quantity calculations",
		},
		[]string{"status"},
	)

	// QuantityCalculationDuration tracks the duration of a calculation including catalog lookups.
	QuantityCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quantity_calculation_duration_seconds",
			Help:    "Quantity calculation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// BestFitSelectionsTotal counts best-fit selections by chosen bag type.
	BestFitSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "best_fit_selections_total",
			Help: "Total number of best-fit packaging selections",
		},
		[]string{"bag_type"},
	)

	// LabelParseFailuresTotal counts catalog quantity labels that could not be parsed.
	LabelParseFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "label_parse_failures_total",
			Help: "Total number of quantity labels skipped because they could not be parsed",
		},
	)

	// WizardTransitionsTotal counts wizard transitions by action and result.
	WizardTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Total number of wizard transitions",
		},
		[]string{"action", "result"},
	)

	// CatalogRequestDuration tracks catalog gateway lookups by operation.
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Catalog gateway lookup duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// AuditLogEntriesTotal tracks audit entries handled by the async logger.
	AuditLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_log_entries_total",
			Help: "Total number of audit log entries by outcome",
		},
		[]string{"result"},
	)

	// CircuitBreakerState is 0 closed, 1 open and 2 half-open, per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitionsTotal counts state changes by breaker and target state.
	CircuitBreakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state changes",
		},
		[]string{"name", "to"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
// UnmatchedRoute is the path label for requests that matched no route.
const UnmatchedRoute = "unmatched"

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// route templates keep the path label bounded
		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(labels...).Inc()
	}
}

// RecordQuantityCalculation records metrics for a quantity calculation.
func RecordQuantityCalculation(duration time.Duration, status string) {
	QuantityCalculationDuration.Observe(duration.Seconds())
	QuantityCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordBestFitSelection records the bag type picked by the best-fit selector.
func RecordBestFitSelection(bagType string) {
	if bagType == "" {
		bagType = "unknown"
	}
	BestFitSelectionsTotal.WithLabelValues(bagType).Inc()
}

// RecordLabelParseFailure records a skipped catalog label.
func RecordLabelParseFailure() {
	LabelParseFailuresTotal.Inc()
}

// RecordWizardTransition records a wizard transition.
func RecordWizardTransition(action, result string) {
	WizardTransitionsTotal.WithLabelValues(action, result).Inc()
}

// RecordCatalogRequest records a catalog gateway lookup.
func RecordCatalogRequest(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CatalogRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordAuditLogEntry records an async logger outcome: enqueued, dropped, written or error.
func RecordAuditLogEntry(result string) {
	RecordAuditLogEntries(result, 1)
}

// RecordAuditLogEntries records the outcome of a batch of n entries.
func RecordAuditLogEntries(result string, n int) {
	AuditLogEntriesTotal.WithLabelValues(result).Add(float64(n))
}

// RecordCircuitBreakerState records a breaker moving to state. code is the
// numeric state written to the gauge.
func RecordCircuitBreakerState(name, state string, code int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(code))
	CircuitBreakerTransitionsTotal.WithLabelValues(name, state).Inc()
}
