package emit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogEmitterTextMode(t *testing.T) {
	var buf bytes.Buffer
	e := NewLogEmitter(&buf, false)
	e.Emit(Event{ContextID: "ctx-1", Kind: "push", NodeID: "n1"})

	line := buf.String()
	if !strings.Contains(line, "[push]") || !strings.Contains(line, "context=ctx-1") || !strings.Contains(line, "node=n1") {
		t.Fatalf("text line = %q, missing expected fields", line)
	}
}

func TestLogEmitterJSONMode(t *testing.T) {
	var buf bytes.Buffer
	e := NewLogEmitter(&buf, true)
	e.Emit(Event{ContextID: "ctx-1", Kind: "pull", NodeID: "n2", Meta: map[string]interface{}{"changed": true}})

	var decoded Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if decoded.Kind != "pull" || decoded.NodeID != "n2" {
		t.Fatalf("decoded = %+v, want Kind=pull NodeID=n2", decoded)
	}
}

func TestLogEmitterEmitBatchWritesEachEvent(t *testing.T) {
	var buf bytes.Buffer
	e := NewLogEmitter(&buf, false)
	err := e.EmitBatch(nil, []Event{{Kind: "push"}, {Kind: "pull"}})
	if err != nil {
		t.Fatalf("EmitBatch returned %v, want nil", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestLogEmitterDefaultsToStdoutWhenWriterNil(t *testing.T) {
	e := NewLogEmitter(nil, false)
	if e.w == nil {
		t.Fatal("writer is nil, want default to os.Stdout")
	}
}
