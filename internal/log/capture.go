package log

import (
	"github.com/sirupsen/logrus"

	"github.com/RudreshNarwal/skyvern/pkg/execctx"
)

// CaptureHook copies every fired log entry into the execution context on
// the entry's context, if one is attached. This is how the per-run log
// buffer accumulates; entries fired outside a run are passed through.
type CaptureHook struct{}

func NewCaptureHook() *CaptureHook {
	return &CaptureHook{}
}

func (h *CaptureHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *CaptureHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}
	ec, ok := execctx.Current(entry.Context)
	if !ok {
		return nil
	}

	captured := execctx.LogEntry{
		"timestamp":       entry.Time,
		"level":           entry.Level.String(),
		"msg":             entry.Message,
		"organization_id": ec.OrganizationID,
	}
	for k, v := range entry.Data {
		captured[k] = v
	}
	ec.Append(captured)
	return nil
}
