package tracker

import (
	"fmt"
	"math"
	"time"
)

// MalformedSnapshotError reports a structurally invalid snapshot record from
// the backend: a missing timestamp, a non-numeric progress value, or a
// missing item reference. Surprising but well-typed data (decreasing totals,
// several entries on one day) is NOT an error and passes through untouched.
type MalformedSnapshotError struct {
	Field  string
	Reason string
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot: field %q %s", e.Field, e.Reason)
}

// MalformedItemError reports a structurally invalid tracked-item record.
type MalformedItemError struct {
	Field  string
	Reason string
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("malformed item: field %q %s", e.Field, e.Reason)
}

// ParseSnapshot validates a loosely-typed backend record into a typed
// ProgressSnapshot. This is the only place schemaless data enters the
// system; everything past this boundary assumes well-typed input.
func ParseSnapshot(raw map[string]any) (ProgressSnapshot, error) {
	var snap ProgressSnapshot

	id, _ := raw["id"].(string)
	snap.ID = id

	itemID, ok := raw["trackedItemId"].(string)
	if !ok || itemID == "" {
		return snap, &MalformedSnapshotError{Field: "trackedItemId", Reason: "is missing or not a string"}
	}
	snap.ItemID = itemID

	ts, err := parseTimestamp(raw["createdAt"])
	if err != nil {
		return snap, &MalformedSnapshotError{Field: "createdAt", Reason: err.Error()}
	}
	snap.CreatedAt = ts

	progress, err := parseNumber(raw["cumulativeProgress"])
	if err != nil {
		return snap, &MalformedSnapshotError{Field: "cumulativeProgress", Reason: err.Error()}
	}
	snap.CumulativeProgress = progress

	return snap, nil
}

// ParseItem validates a loosely-typed backend record into a TrackedItem.
func ParseItem(raw map[string]any) (TrackedItem, error) {
	var item TrackedItem

	id, ok := raw["id"].(string)
	if !ok || id == "" {
		return item, &MalformedItemError{Field: "id", Reason: "is missing or not a string"}
	}
	item.ID = id
	item.Title, _ = raw["title"].(string)

	formatStr, _ := raw["format"].(string)
	format := Format(formatStr)
	if !format.Valid() {
		return item, &MalformedItemError{Field: "format", Reason: fmt.Sprintf("has unknown value %q", formatStr)}
	}
	item.Format = format

	total, err := parseNumber(raw["totalQuantity"])
	if err != nil {
		return item, &MalformedItemError{Field: "totalQuantity", Reason: err.Error()}
	}
	item.TotalQuantity = total

	deadline, err := parseTimestamp(raw["deadlineDate"])
	if err != nil {
		return item, &MalformedItemError{Field: "deadlineDate", Reason: err.Error()}
	}
	item.Deadline = deadline

	item.Flexibility, _ = raw["flexibility"].(string)

	status, _ := raw["status"].(string)
	if status == "" {
		status = string(StatusActive)
	}
	item.Status = ItemStatus(status)

	return item, nil
}

func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, nil
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("has unparseable value %q", t)
	case float64:
		// Unix seconds from JSON numbers
		return time.Unix(int64(t), 0).UTC(), nil
	case time.Time:
		return t, nil
	case nil:
		return time.Time{}, fmt.Errorf("is missing")
	default:
		return time.Time{}, fmt.Errorf("has unsupported type %T", v)
	}
}

func parseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("is not finite")
		}
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case nil:
		return 0, fmt.Errorf("is missing")
	default:
		return 0, fmt.Errorf("has non-numeric type %T", v)
	}
}
