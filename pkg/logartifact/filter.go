package logartifact

import "github.com/RudreshNarwal/skyvern/pkg/execctx"

// Filter returns, in original order, the entries whose field equals value.
// Entries missing the field (or holding a non-string value) never match.
func Filter(entries []execctx.LogEntry, field, value string) []execctx.LogEntry {
	filtered := make([]execctx.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.StringField(field) == value {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
