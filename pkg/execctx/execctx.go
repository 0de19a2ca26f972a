// Package execctx carries per-run execution state: the ordered log buffer
// accumulated while a run executes and the identity of the run itself. The
// context travels on context.Context so callers never reach for ambient
// process state.
package execctx

import (
	"context"
	"sync"
)

// LogEntry is one structured log record. Field values are whatever the
// logger emitted; consumers must not assume any field is present.
type LogEntry map[string]any

// StringField returns the entry's value for name when it is a string,
// or "" when the field is absent or not a string.
func (e LogEntry) StringField(name string) string {
	if e == nil {
		return ""
	}
	if v, ok := e[name].(string); ok {
		return v
	}
	return ""
}

// ExecutionContext is the state scoped to one automation run. The log
// persistence subsystem only reads it; the logging capture hook appends.
type ExecutionContext struct {
	OrganizationID   string
	RunID            string
	WorkflowRunID    string
	BrowserSessionID string

	mu  sync.Mutex
	log []LogEntry
}

// Append adds an entry to the run's log buffer.
func (ec *ExecutionContext) Append(entry LogEntry) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.log = append(ec.log, entry)
}

// Log returns a snapshot of the accumulated entries in append order.
func (ec *ExecutionContext) Log() []LogEntry {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	out := make([]LogEntry, len(ec.log))
	copy(out, ec.log)
	return out
}

type ctxKey struct{}

// With attaches an ExecutionContext to ctx for the duration of a run.
func With(ctx context.Context, ec *ExecutionContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, ec)
}

// Current returns the run's ExecutionContext, or ok=false when the caller
// is not inside a run.
func Current(ctx context.Context) (*ExecutionContext, bool) {
	ec, ok := ctx.Value(ctxKey{}).(*ExecutionContext)
	return ec, ok
}
