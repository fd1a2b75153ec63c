// Package telemetry exposes Prometheus metrics for the bed occupancy
// service: occupancy transition counters, an occupied-beds gauge, HTTP
// request duration histograms, and database pool gauges.
package telemetry

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all registered collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	transitions  *prometheus.CounterVec
	occupiedBeds prometheus.Gauge
	httpDuration *prometheus.HistogramVec
	dbPoolActive prometheus.Gauge
	dbPoolIdle   prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leitos_bed_transitions_total",
			Help: "Bed occupancy transitions by action and outcome.",
		}, []string{"action", "outcome"}),
		occupiedBeds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leitos_occupied_beds",
			Help: "Number of beds currently occupied.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leitos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{0.010, 0.025, 0.050, 0.100, 0.250, 0.500, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),
		dbPoolActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leitos_db_pool_active_connections",
			Help: "Number of active database pool connections.",
		}),
		dbPoolIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leitos_db_pool_idle_connections",
			Help: "Number of idle database pool connections.",
		}),
	}

	reg.MustRegister(
		m.transitions,
		m.occupiedBeds,
		m.httpDuration,
		m.dbPoolActive,
		m.dbPoolIdle,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordTransition counts one occupancy transition attempt. The outcome
// is "ok" when err is nil and "rejected" otherwise.
func (m *Metrics) RecordTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
}

// SetOccupiedBeds updates the occupied-beds gauge.
func (m *Metrics) SetOccupiedBeds(n int64) {
	m.occupiedBeds.Set(float64(n))
}

// SetDBPoolStats updates the database pool gauges.
func (m *Metrics) SetDBPoolStats(active, idle int64) {
	m.dbPoolActive.Set(float64(active))
	m.dbPoolIdle.Set(float64(idle))
}

// TransitionCounter returns the counter for an action and outcome pair.
// Intended for tests.
func (m *Metrics) TransitionCounter(action, outcome string) prometheus.Counter {
	return m.transitions.WithLabelValues(action, outcome)
}

// Middleware returns an Echo middleware that records request durations
// keyed by method, route pattern, and status code.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.httpDuration.WithLabelValues(
				c.Request().Method, route, strconv.Itoa(status),
			).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler returns an Echo handler serving the Prometheus exposition
// format for this registry.
func (m *Metrics) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return echo.WrapHandler(h)
}
