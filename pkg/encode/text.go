package encode

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/RudreshNarwal/skyvern/pkg/execctx"
)

// Fields rendered in fixed positions; everything else trails as key=value.
var reservedFields = map[string]bool{
	"timestamp": true,
	"level":     true,
	"msg":       true,
}

// TextEncoder renders a log buffer as readable lines, one entry per line:
//
//	2024-01-02T15:04:05Z [INFO] scrolling page step_id=stp_1
type TextEncoder struct{}

func NewTextEncoder() *TextEncoder {
	return &TextEncoder{}
}

func (e *TextEncoder) Encode(log []execctx.LogEntry) (string, error) {
	var b strings.Builder
	for _, entry := range log {
		b.WriteString(formatEntry(entry))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func formatEntry(entry execctx.LogEntry) string {
	ts := entry.StringField("timestamp")
	if t, ok := entry["timestamp"].(time.Time); ok {
		ts = t.Format(time.RFC3339)
	}
	level := entry.StringField("level")
	if level == "" {
		level = "info"
	}
	msg := entry.StringField("msg")

	parts := make([]string, 0, 3+len(entry))
	if ts != "" {
		parts = append(parts, ts)
	}
	parts = append(parts, "["+strings.ToUpper(level)+"]")
	if msg != "" {
		parts = append(parts, msg)
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		if !reservedFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, coerceValue(entry[k])))
	}
	return strings.Join(parts, " ")
}
