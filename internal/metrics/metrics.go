// Package metrics exposes Prometheus collectors for the dashboard API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "challenz_admin"

// Collector owns a registry with the HTTP and escrow collectors.
type Collector struct {
	Registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	rowsBuilt     *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "escrow",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of upstream escrow queries.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"source"},
		),
		fetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "escrow",
				Name:      "fetch_errors_total",
				Help:      "Total number of failed upstream escrow queries.",
			},
			[]string{"source"},
		),
		rowsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "escrow",
				Name:      "rows_built_total",
				Help:      "Total number of escrow rows returned per view.",
			},
			[]string{"view"},
		),
	}

	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		c.httpRequests,
		c.httpDuration,
		c.fetchDuration,
		c.fetchErrors,
		c.rowsBuilt,
	)
	return c
}

func (c *Collector) RecordFetchDuration(source string, duration time.Duration) {
	c.fetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (c *Collector) RecordFetchError(source string) {
	c.fetchErrors.WithLabelValues(source).Inc()
}

func (c *Collector) RecordRowsBuilt(view string, count int) {
	c.rowsBuilt.WithLabelValues(view).Add(float64(count))
}

// Middleware counts requests by matched route so path parameters do not
// explode label cardinality.
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
		c.httpRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}))
}
