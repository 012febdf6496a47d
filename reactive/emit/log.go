package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogEmitter writes one line per event to an io.Writer, either as
// key=value text or as JSON Lines.
type LogEmitter struct {
	w        io.Writer
	jsonMode bool
}

// NewLogEmitter returns a LogEmitter writing to w (os.Stdout if nil). When
// jsonMode is true each event is written as a single JSON object per line.
func NewLogEmitter(w io.Writer, jsonMode bool) *LogEmitter {
	if w == nil {
		w = os.Stdout
	}
	return &LogEmitter{w: w, jsonMode: jsonMode}
}

func (l *LogEmitter) Emit(e Event) {
	if l.jsonMode {
		b, err := json.Marshal(e)
		if err != nil {
			return
		}
		fmt.Fprintln(l.w, string(b))
		return
	}
	fmt.Fprintf(l.w, "[%s] context=%s node=%s meta=%v\n", e.Kind, e.ContextID, e.NodeID, e.Meta)
}

func (l *LogEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		l.Emit(e)
	}
	return nil
}

func (l *LogEmitter) Flush(context.Context) error {
	if f, ok := l.w.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}
