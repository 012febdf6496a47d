package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter turns each event into a short-lived span, named by Kind,
// carrying ContextID, NodeID and Meta as attributes. Useful for watching
// push/pull/flush activity inside a larger traced request.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter returns an Emitter that records every event as a span on
// the given tracer.
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

func (o *OTelEmitter) Emit(e Event) {
	ctx := context.Background()
	_, span := o.tracer.Start(ctx, e.Kind)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("context_id", e.ContextID),
		attribute.String("node_id", e.NodeID),
	}
	for k, v := range e.Meta {
		attrs = append(attrs, attribute.String(k, toString(v)))
	}
	span.SetAttributes(attrs...)

	if errVal, ok := e.Meta["error"]; ok {
		span.SetStatus(codes.Error, toString(errVal))
	}
}

func (o *OTelEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		o.Emit(e)
	}
	return nil
}

func (o *OTelEmitter) Flush(context.Context) error { return nil }

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case error:
		return s.Error()
	default:
		return fmt.Sprint(v)
	}
}
