// Package metrics provides Prometheus collectors for the BMI tracker.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	calculationsTotal  *prometheus.CounterVec
	invalidInputsTotal prometheus.Counter
	recordsSavedTotal  *prometheus.CounterVec
	recordsStored      prometheus.Gauge
	rpcDuration        *prometheus.HistogramVec
}

// New creates and registers all collectors on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.calculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmi_calculations_total",
			Help: "Total number of successful BMI calculations",
		},
		[]string{"category"},
	)
	m.invalidInputsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bmi_invalid_inputs_total",
			Help: "Total number of calculations rejected as invalid input",
		},
	)
	m.recordsSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmi_records_saved_total",
			Help: "Total number of save attempts",
		},
		[]string{"status"}, // status: success, error
	)
	m.recordsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bmi_records_stored",
			Help: "Number of records in the store",
		},
	)
	m.rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bmi_rpc_duration_seconds",
			Help:    "Time taken to serve RPC calls",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"procedure", "code"},
	)

	for _, c := range []prometheus.Collector{
		m.calculationsTotal,
		m.invalidInputsTotal,
		m.recordsSavedTotal,
		m.recordsStored,
		m.rpcDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCalculation counts a successful calculation by category label.
func (m *Metrics) RecordCalculation(category string) {
	m.calculationsTotal.WithLabelValues(category).Inc()
}

// RecordInvalidInput counts a rejected calculation.
func (m *Metrics) RecordInvalidInput() {
	m.invalidInputsTotal.Inc()
}

// RecordSave counts a save attempt.
func (m *Metrics) RecordSave(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.recordsSavedTotal.WithLabelValues(status).Inc()
}

// SetRecordsStored updates the stored-records gauge.
func (m *Metrics) SetRecordsStored(n int) {
	m.recordsStored.Set(float64(n))
}

// ObserveRPC records the duration of one RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
