package durafile

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the prom
// subpackage provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordWrite is called after each buffered write.
	// bytes is the number of bytes accepted, err is nil if successful.
	RecordWrite(bytes int, err error)

	// RecordFlush is called after each buffer-to-cache flush.
	RecordFlush(duration time.Duration, err error)

	// RecordCommit is called after each commit attempt.
	// level is the requested durability level.
	RecordCommit(level DurabilityLevel, duration time.Duration, err error)

	// RecordDeviceSync is called after each device-flush call. It is NOT
	// called when a commit is satisfied without device I/O, which makes it
	// usable as a call-count hook in idempotence tests.
	RecordDeviceSync(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWrite(int, error)                             {}
func (NoopMetricsCollector) RecordFlush(time.Duration, error)                   {}
func (NoopMetricsCollector) RecordCommit(DurabilityLevel, time.Duration, error) {}
func (NoopMetricsCollector) RecordDeviceSync(time.Duration, error)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	WriteCount           atomic.Int64
	WriteErrors          atomic.Int64
	BytesWritten         atomic.Int64
	FlushCount           atomic.Int64
	FlushErrors          atomic.Int64
	CommitCount          atomic.Int64
	CommitErrors         atomic.Int64
	DeviceSyncCount      atomic.Int64
	DeviceSyncErrors     atomic.Int64
	DeviceSyncTotalNanos atomic.Int64
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(bytes int, err error) {
	b.WriteCount.Add(1)
	b.BytesWritten.Add(int64(bytes))
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// RecordFlush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFlush(duration time.Duration, err error) {
	b.FlushCount.Add(1)
	if err != nil {
		b.FlushErrors.Add(1)
	}
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit(level DurabilityLevel, duration time.Duration, err error) {
	b.CommitCount.Add(1)
	if err != nil {
		b.CommitErrors.Add(1)
	}
}

// RecordDeviceSync implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeviceSync(duration time.Duration, err error) {
	b.DeviceSyncCount.Add(1)
	b.DeviceSyncTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DeviceSyncErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		WriteCount:         b.WriteCount.Load(),
		WriteErrors:        b.WriteErrors.Load(),
		BytesWritten:       b.BytesWritten.Load(),
		FlushCount:         b.FlushCount.Load(),
		FlushErrors:        b.FlushErrors.Load(),
		CommitCount:        b.CommitCount.Load(),
		CommitErrors:       b.CommitErrors.Load(),
		DeviceSyncCount:    b.DeviceSyncCount.Load(),
		DeviceSyncErrors:   b.DeviceSyncErrors.Load(),
		DeviceSyncAvgNanos: b.getAvgDeviceSyncNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgDeviceSyncNanos() int64 {
	count := b.DeviceSyncCount.Load()
	if count == 0 {
		return 0
	}
	return b.DeviceSyncTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	WriteCount         int64
	WriteErrors        int64
	BytesWritten       int64
	FlushCount         int64
	FlushErrors        int64
	CommitCount        int64
	CommitErrors       int64
	DeviceSyncCount    int64
	DeviceSyncErrors   int64
	DeviceSyncAvgNanos int64
}
