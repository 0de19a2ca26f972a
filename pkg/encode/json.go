// Package encode renders accumulated run logs into the two artifact
// representations: a machine-readable JSON form and a human-readable
// text form.
package encode

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/RudreshNarwal/skyvern/pkg/execctx"
	"github.com/pkg/errors"
)

// JSONEncoder produces a deterministic, pretty-printed JSON rendering of a
// log buffer. Values the json package cannot handle are coerced: datetimes
// to RFC 3339, errors to their message, stringers to their String form,
// everything else to its fmt rendering.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) Encode(log []execctx.LogEntry) (string, error) {
	coerced := make([]map[string]any, 0, len(log))
	for _, entry := range log {
		coerced = append(coerced, coerceMap(entry))
	}
	out, err := json.MarshalIndent(coerced, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode log to json")
	}
	return string(out), nil
}

func coerceMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = coerceValue(v)
	}
	return out
}

func coerceValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.Format(time.RFC3339)
	case error:
		return val.Error()
	case map[string]any:
		return coerceMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = coerceValue(item)
		}
		return out
	case fmt.Stringer:
		return val.String()
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}
