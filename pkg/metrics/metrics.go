// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of collectors shared by middleware, the DB wrapper and use cases.
// All recording methods are safe to call on a nil *Metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingOutcomes      *prometheus.CounterVec
	Displacements        prometheus.Counter
	DisplacementRaceLost prometheus.Counter
	Cancellations        prometheus.Counter
}

// New registers the collectors in the default Prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors in reg.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database queries that returned an error",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		BookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_outcomes_total",
			Help:        "Booking attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		Displacements: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_displacements_total",
			Help:        "Provisional reservations cancelled by displacement",
			ConstLabels: labels,
		}),
		DisplacementRaceLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_displacement_race_lost_total",
			Help:        "Displacements that matched zero rows",
			ConstLabels: labels,
		}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_cancellations_total",
			Help:        "Reservations cancelled by their apartment",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingOutcomes,
		m.Displacements,
		m.DisplacementRaceLost,
		m.Cancellations,
	)

	return m
}

// BookingResult counts one booking attempt outcome.
func (m *Metrics) BookingResult(result string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(result).Inc()
}

// Displaced counts n displaced reservations.
func (m *Metrics) Displaced(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Displacements.Add(float64(n))
}

// RaceLost counts one lost displacement race.
func (m *Metrics) RaceLost() {
	if m == nil {
		return
	}
	m.DisplacementRaceLost.Inc()
}

// Cancelled counts one cancellation.
func (m *Metrics) Cancelled() {
	if m == nil {
		return
	}
	m.Cancellations.Inc()
}
