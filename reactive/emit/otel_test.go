package emit

import (
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestOTelEmitterRecordsSpanPerEvent(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	e := NewOTelEmitter(tp.Tracer("reactive-test"))

	e.Emit(Event{ContextID: "ctx-1", Kind: "effect_run", NodeID: "n1", Meta: map[string]interface{}{"changed": true}})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "effect_run" {
		t.Fatalf("span name = %q, want effect_run", spans[0].Name)
	}

	var sawContextID, sawNodeID bool
	for _, attr := range spans[0].Attributes {
		switch string(attr.Key) {
		case "context_id":
			sawContextID = attr.Value.AsString() == "ctx-1"
		case "node_id":
			sawNodeID = attr.Value.AsString() == "n1"
		}
	}
	if !sawContextID || !sawNodeID {
		t.Fatalf("span attributes = %+v, missing context_id/node_id", spans[0].Attributes)
	}
}

func TestOTelEmitterSetsErrorStatusFromMeta(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	e := NewOTelEmitter(tp.Tracer("reactive-test"))

	e.Emit(Event{Kind: "effect_error", Meta: map[string]interface{}{"error": errors.New("boom")}})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code.String() != "Error" {
		t.Fatalf("status code = %v, want Error", spans[0].Status.Code)
	}
}

func TestToStringHandlesStringErrorAndOther(t *testing.T) {
	if got := toString("plain"); got != "plain" {
		t.Fatalf("toString(string) = %q, want plain", got)
	}
	if got := toString(errors.New("boom")); got != "boom" {
		t.Fatalf("toString(error) = %q, want boom", got)
	}
	if got := toString(42); got != "42" {
		t.Fatalf("toString(int) = %q, want 42", got)
	}
}
