package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/renoplan/renoplan/internal/domain"
)

const dateLayout = "2006-01-02"

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

// nullableStr converts a *string to a value suitable for SQLite storage
// (nil becomes SQL NULL).
func nullableStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// nullableInt64 converts a *int64 to a value suitable for SQLite storage.
func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// strPtr converts a sql.NullString to a *string.
func strPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// int64Ptr converts a sql.NullInt64 to a *int64.
func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// checklistToJSON serializes checklist items for the checklist_json column.
// An empty checklist is stored as "[]", never NULL.
func checklistToJSON(items []domain.ChecklistItem) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding checklist: %w", err)
	}
	return string(data), nil
}

// checklistFromJSON parses the checklist_json column.
func checklistFromJSON(raw string) ([]domain.ChecklistItem, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var items []domain.ChecklistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding checklist: %w", err)
	}
	return items, nil
}

// parseTimestamp parses an RFC3339 column value.
func parseTimestamp(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// parseDate parses a YYYY-MM-DD column value.
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}
