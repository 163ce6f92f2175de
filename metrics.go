package searchctx

import (
	"sync/atomic"

	"github.com/hupe1980/searchctx/wire"
)

// MetricsCollector defines an interface for collecting codec metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEncode is called after each encode. sessionDropped is true when
	// the session id was omitted for a legacy peer.
	RecordEncode(version wire.Version, sessionDropped bool, err error)

	// RecordDecode is called after each decode.
	RecordDecode(version wire.Version, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(wire.Version, bool, error) {}
func (NoopMetricsCollector) RecordDecode(wire.Version, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	EncodeCount       atomic.Int64
	EncodeErrors      atomic.Int64
	SessionIDsDropped atomic.Int64
	DecodeCount       atomic.Int64
	DecodeErrors      atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(_ wire.Version, sessionDropped bool, err error) {
	b.EncodeCount.Add(1)
	if sessionDropped {
		b.SessionIDsDropped.Add(1)
	}
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(_ wire.Version, err error) {
	b.DecodeCount.Add(1)
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:       b.EncodeCount.Load(),
		EncodeErrors:      b.EncodeErrors.Load(),
		SessionIDsDropped: b.SessionIDsDropped.Load(),
		DecodeCount:       b.DecodeCount.Load(),
		DecodeErrors:      b.DecodeErrors.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount       int64
	EncodeErrors      int64
	SessionIDsDropped int64
	DecodeCount       int64
	DecodeErrors      int64
}
