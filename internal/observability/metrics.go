// Package observability carries the HTTP metrics and request logging
// shared by every handler.
package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the application instruments. Labels stay low-cardinality:
// route templates only, never raw paths.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	invoicesSaved   *prometheus.CounterVec
	reportsRendered *prometheus.CounterVec
	backupsTaken    prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contalibro_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contalibro_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		invoicesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contalibro_invoices_saved_total",
			Help: "Invoices saved by kind.",
		}, []string{"kind"}),
		reportsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contalibro_reports_rendered_total",
			Help: "Reports rendered by format.",
		}, []string{"format"}),
		backupsTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contalibro_backups_taken_total",
			Help: "Database backups taken.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.invoicesSaved,
		m.reportsRendered,
		m.backupsTaken,
	)
	return m
}

// Handler serves the registry for the /metrics endpoint.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// GinMiddleware records request counts and latency per route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		if route == "/metrics" {
			return
		}

		m.httpRequests.WithLabelValues(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// RecordInvoiceSaved increments the saved-invoice count.
func (m *Metrics) RecordInvoiceSaved(kind string) {
	if m == nil {
		return
	}
	m.invoicesSaved.WithLabelValues(strings.TrimSpace(kind)).Inc()
}

// RecordReportRendered increments the rendered-report count.
func (m *Metrics) RecordReportRendered(format string) {
	if m == nil {
		return
	}
	m.reportsRendered.WithLabelValues(strings.TrimSpace(format)).Inc()
}

// RecordBackupTaken increments the backup count.
func (m *Metrics) RecordBackupTaken() {
	if m == nil {
		return
	}
	m.backupsTaken.Inc()
}
