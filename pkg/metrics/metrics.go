// Package metrics exports disk statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/timeline"
)

const namespace = "diskinfo"

// Query result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the registered collectors.
type Metrics struct {
	TotalBytes   prometheus.Gauge
	FreeBytes    prometheus.Gauge
	UsedBytes    prometheus.Gauge
	UsagePercent prometheus.Gauge
	Severity     prometheus.Gauge
	Queries      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		TotalBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_bytes",
			Help:      "Total capacity of the monitored filesystem.",
		}),
		FreeBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "free_bytes",
			Help:      "Bytes available on the monitored filesystem.",
		}),
		UsedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "used_bytes",
			Help:      "Bytes in use on the monitored filesystem.",
		}),
		UsagePercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "usage_percent",
			Help:      "Percentage of the filesystem in use.",
		}),
		Severity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "severity",
			Help:      "Usage class: 0 normal, 1 warning, 2 critical.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Filesystem queries by result.",
		}, []string{"result"}),
	}

	collectors := []prometheus.Collector{
		m.TotalBytes, m.FreeBytes, m.UsedBytes, m.UsagePercent, m.Severity, m.Queries,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	// Expose both series from the start.
	m.Queries.WithLabelValues(ResultOK)
	m.Queries.WithLabelValues(ResultError)

	return m, nil
}

// Observe sets the gauges from stats.
func (m *Metrics) Observe(stats diskstat.DiskStats) {
	m.TotalBytes.Set(float64(stats.TotalBytes))
	m.FreeBytes.Set(float64(stats.FreeBytes))
	m.UsedBytes.Set(float64(stats.UsedBytes))
	m.UsagePercent.Set(stats.UsagePercent)
	m.Severity.Set(float64(stats.Severity()))
}

// ObserveEntry is a timeline.Refresher subscriber.
func (m *Metrics) ObserveEntry(e timeline.Entry) {
	m.Observe(e.Stats)
}

// RecordQuery counts one source call.
func (m *Metrics) RecordQuery(err error) {
	if err != nil {
		m.Queries.WithLabelValues(ResultError).Inc()
		return
	}
	m.Queries.WithLabelValues(ResultOK).Inc()
}

// InstrumentSource wraps src so every call is counted.
func (m *Metrics) InstrumentSource(src diskstat.Source) diskstat.Source {
	return diskstat.SourceFunc(func(path string) (diskstat.Usage, error) {
		usage, err := src.Usage(path)
		m.RecordQuery(err)
		return usage, err
	})
}
