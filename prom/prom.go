// Package prom provides a Prometheus implementation of
// durafile.MetricsCollector.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/durafile/durafile"
)

// Collector exports durafile operation metrics to Prometheus.
type Collector struct {
	writes       *prometheus.CounterVec
	bytesWritten prometheus.Counter
	flushes      *prometheus.CounterVec
	flushLatency prometheus.Histogram
	commits      *prometheus.CounterVec
	deviceSyncs  *prometheus.CounterVec
	syncLatency  prometheus.Histogram
}

// NewCollector registers the durafile metrics on reg and returns the
// collector. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		writes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "durafile_writes_total",
				Help: "Total number of buffered writes",
			},
			[]string{"result"},
		),
		bytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "durafile_bytes_written_total",
				Help: "Total bytes accepted into target buffers",
			},
		),
		flushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "durafile_flushes_total",
				Help: "Total number of buffer-to-cache flushes",
			},
			[]string{"result"},
		),
		flushLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "durafile_flush_latency_seconds",
				Help:    "Buffer-to-cache flush latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		commits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "durafile_commits_total",
				Help: "Total number of commit attempts",
			},
			[]string{"level", "result"},
		),
		deviceSyncs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "durafile_device_syncs_total",
				Help: "Total number of device-flush calls",
			},
			[]string{"result"},
		),
		syncLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "durafile_device_sync_latency_seconds",
				Help:    "Device flush latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordWrite implements durafile.MetricsCollector.
func (c *Collector) RecordWrite(bytes int, err error) {
	c.writes.WithLabelValues(result(err)).Inc()
	c.bytesWritten.Add(float64(bytes))
}

// RecordFlush implements durafile.MetricsCollector.
func (c *Collector) RecordFlush(duration time.Duration, err error) {
	c.flushes.WithLabelValues(result(err)).Inc()
	c.flushLatency.Observe(duration.Seconds())
}

// RecordCommit implements durafile.MetricsCollector.
func (c *Collector) RecordCommit(level durafile.DurabilityLevel, duration time.Duration, err error) {
	c.commits.WithLabelValues(level.String(), result(err)).Inc()
}

// RecordDeviceSync implements durafile.MetricsCollector.
func (c *Collector) RecordDeviceSync(duration time.Duration, err error) {
	c.deviceSyncs.WithLabelValues(result(err)).Inc()
	c.syncLatency.Observe(duration.Seconds())
}
