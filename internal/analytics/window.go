package analytics

import (
	"fmt"
	"time"
)

// AnalysisWindow is the temporal frame for chart and heatmap bucketing.
// All boundaries are UTC so bucketing is reproducible regardless of the
// host timezone.
type AnalysisWindow struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Bucket string    `json:"bucket"` // "day" or "week"
}

// NewAnalysisWindow creates a window with boundaries snapped to whole
// buckets.
func NewAnalysisWindow(start, end time.Time, bucket string) AnalysisWindow {
	if bucket == "" {
		bucket = "day"
	}
	return AnalysisWindow{
		Start:  SnapToStart(start, bucket),
		End:    SnapToEnd(end, bucket),
		Bucket: bucket,
	}
}

// NewTrailingWindow creates a day-bucketed window covering the given number
// of days and ending on the reference day (inclusive).
func NewTrailingWindow(reference time.Time, days int) AnalysisWindow {
	if days < 1 {
		days = 1
	}
	return NewAnalysisWindow(reference.AddDate(0, 0, -(days-1)), reference, "day")
}

// SnapToStart normalizes a timestamp to the beginning of its UTC bucket.
func SnapToStart(t time.Time, bucket string) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	switch bucket {
	case "week":
		// Snap to Monday
		weekday := int(u.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday -> 7
		}
		return time.Date(u.Year(), u.Month(), u.Day()-(weekday-1), 0, 0, 0, 0, time.UTC)
	default: // day
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// SnapToEnd normalizes a timestamp to the last nanosecond of its UTC bucket.
func SnapToEnd(t time.Time, bucket string) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	switch bucket {
	case "week":
		weekday := int(u.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(u.Year(), u.Month(), u.Day()+(7-weekday), 23, 59, 59, 999999999, time.UTC)
	default: // day
		return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999999999, time.UTC)
	}
}

// Subdivide returns the start time of every bucket within the window.
func (w AnalysisWindow) Subdivide() []time.Time {
	var buckets []time.Time
	current := w.Start
	for current.Before(w.End) {
		buckets = append(buckets, current)
		if w.Bucket == "week" {
			current = current.AddDate(0, 0, 7)
		} else {
			current = current.AddDate(0, 0, 1)
		}
	}
	return buckets
}

// FindBucketIndex returns the index of the bucket containing t, or -1 when
// t falls outside the window.
func (w AnalysisWindow) FindBucketIndex(t time.Time) int {
	tNorm := SnapToStart(t, w.Bucket)
	if tNorm.Before(w.Start) || tNorm.After(w.End) {
		return -1
	}
	if w.Bucket == "week" {
		return int(tNorm.Sub(w.Start).Hours() / (24 * 7))
	}
	return int(tNorm.Sub(w.Start).Hours() / 24)
}

// Contains reports whether t falls inside the window.
func (w AnalysisWindow) Contains(t time.Time) bool {
	return w.FindBucketIndex(t) >= 0
}

// GenerateLabel returns a chart label for a bucket start.
func (w AnalysisWindow) GenerateLabel(t time.Time) string {
	if w.Bucket == "week" {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format("2006-01-02")
}
