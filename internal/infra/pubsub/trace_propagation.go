package pubsub

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceHeaders is the span context carried inside an exported record, so a
// consumer can continue the operator request that produced it.
type TraceHeaders struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// TraceHeadersFrom is empty when ctx holds no valid span.
func TraceHeadersFrom(ctx context.Context) TraceHeaders {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return TraceHeaders{}
	}
	return TraceHeaders{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
		Sampled: sc.IsSampled(),
	}
}

func (h TraceHeaders) SpanContext() (trace.SpanContext, bool) {
	traceID, err := trace.TraceIDFromHex(h.TraceID)
	if err != nil {
		return trace.SpanContext{}, false
	}
	spanID, err := trace.SpanIDFromHex(h.SpanID)
	if err != nil {
		return trace.SpanContext{}, false
	}

	var flags trace.TraceFlags
	if h.Sampled {
		flags = trace.FlagsSampled
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	}), true
}

// Into attaches the remote span to ctx. Missing or malformed headers leave
// ctx unchanged.
func (h TraceHeaders) Into(ctx context.Context) context.Context {
	sc, ok := h.SpanContext()
	if !ok {
		return ctx
	}
	return trace.ContextWithSpanContext(ctx, sc)
}
