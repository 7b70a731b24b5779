// Package metrics exposes Prometheus metrics for ledger operations and HTTP
// traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Collector owns a private registry and the metrics registered on it.
type Collector struct {
	registry         *prometheus.Registry
	ledgerOperations *prometheus.CounterVec
	ledgerDuration   *prometheus.HistogramVec
	httpDuration     *prometheus.HistogramVec
}

// NewCollector creates a Collector with all metrics registered.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		ledgerOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bankoffice_ledger_operations_total",
			Help: "Total number of ledger operations by outcome",
		}, []string{"operation", "outcome"}),
		ledgerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankoffice_ledger_operation_duration_seconds",
			Help:    "Time taken to run a ledger operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankoffice_http_request_duration_seconds",
			Help:    "Time taken to serve an HTTP request",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Outcome classifies err. Domain errors are business rejections; anything
// else is a failure.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case domain.IsDomainError(err):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}

// ObserveLedgerOperation implements ledger.Recorder.
func (c *Collector) ObserveLedgerOperation(operation string, elapsed time.Duration, err error) {
	c.ledgerOperations.WithLabelValues(operation, Outcome(err)).Inc()
	c.ledgerDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Middleware observes the duration of every request. The route label is the
// matched route pattern, not the raw path.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := ctx.Route().Path
		c.httpDuration.
			WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
