package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise the int value.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// intFromNullable converts a scanned sql.NullInt64 back to a *int.
func intFromNullable(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// marshalJSON serializes v for a TEXT column, falling back to the given
// empty literal on error. Only used for the session observation log and the
// commit list, both of which are plain data.
func marshalJSON(v any, empty string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return empty
	}
	return string(data)
}

// parseTime parses an RFC3339 column value.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// formatTime formats a timestamp for an RFC3339 TEXT column.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
