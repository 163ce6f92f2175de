package searchctx

import (
	"log/slog"

	"github.com/hupe1980/searchctx/wire"
)

type options struct {
	sessionIDSince   wire.Version
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Codec.
type Option func(*options)

// WithSessionIDSince sets the first protocol version whose peers exchange
// session ids. Peers before it neither send nor expect the field.
//
// Defaults to wire.V7_7_0. A zero version is ignored.
func WithSessionIDSince(v wire.Version) Option {
	return func(o *options) {
		if v != 0 {
			o.sessionIDSince = v
		}
	}
}

// WithMetricsCollector configures a metrics collector for encode/decode.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &searchctx.BasicMetricsCollector{}
//	c := searchctx.NewCodec(searchctx.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Encodes: %d, dropped sessions: %d\n", stats.EncodeCount, stats.SessionIDsDropped)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := searchctx.NewJSONLogger(slog.LevelDebug)
//	c := searchctx.NewCodec(searchctx.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		sessionIDSince:   wire.V7_7_0,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
