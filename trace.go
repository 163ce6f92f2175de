package searchctx

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext returns the hex trace id of the span in ctx, if any.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// SetDistributedTraceIDFromContext copies the trace id of the span in ctx
// onto c. It reports false and leaves c untouched when ctx has no trace.
func (c *ContextID) SetDistributedTraceIDFromContext(ctx context.Context) bool {
	traceID, ok := TraceIDFromContext(ctx)
	if !ok {
		return false
	}
	c.SetDistributedTraceID(traceID)
	return true
}
