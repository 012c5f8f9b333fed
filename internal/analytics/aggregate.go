package analytics

import (
	"sort"
	"time"

	"shelfpace/internal/tracker"
)

// HeatmapCell is one day of the calendar heatmap. Sessions counts the items
// that had a positive delta that day; Intensity is the discrete 0-4 display
// level.
type HeatmapCell struct {
	Date      time.Time `json:"date"`
	Sessions  int       `json:"sessions"`
	Intensity int       `json:"intensity"`
}

// HeatmapResult is a dense per-day grid over the lookback window.
type HeatmapResult struct {
	Window     AnalysisWindow `json:"window"`
	Cells      []HeatmapCell  `json:"cells"`
	ActiveDays int            `json:"activeDays"`
	// HasEnoughData gates display: sparse libraries render a placeholder
	// instead of a mostly-empty grid.
	HasEnoughData bool `json:"hasEnoughData"`
}

// IntensityLevel buckets a day's session count into the five display
// levels: 0, 1, 2-3, 4-5, 6 and up.
func IntensityLevel(sessions int) int {
	switch {
	case sessions <= 0:
		return 0
	case sessions == 1:
		return 1
	case sessions < 4:
		return 2
	case sessions < 6:
		return 3
	default:
		return 4
	}
}

// BuildHeatmap composes per-item daily deltas into the portfolio heatmap
// over the trailing lookback window ending on the reference day.
func (t Tuning) BuildHeatmap(perItem map[string][]DailyDelta, reference time.Time) HeatmapResult {
	window := NewTrailingWindow(reference, t.HeatmapWeeks*7)
	days := window.Subdivide()

	sessions := make([]int, len(days))
	for _, deltas := range perItem {
		for _, d := range deltas {
			if d.Delta <= 0 {
				continue
			}
			if idx := window.FindBucketIndex(d.Date); idx >= 0 && idx < len(sessions) {
				sessions[idx]++
			}
		}
	}

	cells := make([]HeatmapCell, len(days))
	activeDays := 0
	for i, day := range days {
		cells[i] = HeatmapCell{
			Date:      day,
			Sessions:  sessions[i],
			Intensity: IntensityLevel(sessions[i]),
		}
		if sessions[i] > 0 {
			activeDays++
		}
	}

	return HeatmapResult{
		Window:        window,
		Cells:         cells,
		ActiveDays:    activeDays,
		HasEnoughData: activeDays >= t.HeatmapMinActiveDays,
	}
}

// RingInput is one item's contribution to the total-progress ring, already
// normalized to page-equivalents.
type RingInput struct {
	Current float64
	Target  float64
}

// ProgressRing is the portfolio completion fraction across all items with
// any progress.
type ProgressRing struct {
	Completed float64 `json:"completed"` // page-equivalents
	Target    float64 `json:"target"`    // page-equivalents
	Fraction  float64 `json:"fraction"`
}

// BuildProgressRing sums page-equivalent progress over page-equivalent
// targets across items with progress > 0. Returns nil when no item has
// progress: the ring is hidden rather than rendered at zero.
func BuildProgressRing(inputs []RingInput) *ProgressRing {
	var completed, target float64
	counted := 0
	for _, in := range inputs {
		if in.Current <= 0 {
			continue
		}
		completed += in.Current
		target += in.Target
		counted++
	}
	if counted == 0 || target <= 0 {
		return nil
	}
	return &ProgressRing{
		Completed: completed,
		Target:    target,
		Fraction:  completed / target,
	}
}

// VelocityInput is one item's contribution to the per-format velocity
// comparison. TotalProgress is in the item's native unit; SpanDays is the
// inclusive date span from first to last snapshot.
type VelocityInput struct {
	Format        tracker.Format
	TotalProgress float64
	SpanDays      int
}

// FormatVelocity is the average daily velocity for one format, reported in
// the native unit (what the display shows) and page-equivalents (what the
// cross-format comparison uses).
type FormatVelocity struct {
	Format               tracker.Format `json:"format"`
	Unit                 string         `json:"unit"`
	NativePerDay         float64        `json:"nativePerDay"`
	PageEquivalentPerDay float64        `json:"pageEquivalentPerDay"`
	Items                int            `json:"items"`
}

// FormatVelocities aggregates velocity per format over items with progress,
// as totalProgress / totalObservedDaySpan. Formats without any progressing
// item are omitted.
func FormatVelocities(inputs []VelocityInput) []FormatVelocity {
	type acc struct {
		progress float64
		spanDays int
		items    int
	}
	byFormat := make(map[tracker.Format]*acc)
	for _, in := range inputs {
		if in.TotalProgress <= 0 || in.SpanDays <= 0 {
			continue
		}
		a, ok := byFormat[in.Format]
		if !ok {
			a = &acc{}
			byFormat[in.Format] = a
		}
		a.progress += in.TotalProgress
		a.spanDays += in.SpanDays
		a.items++
	}

	var result []FormatVelocity
	for format, a := range byFormat {
		native := a.progress / float64(a.spanDays)
		result = append(result, FormatVelocity{
			Format:               format,
			Unit:                 format.Unit(),
			NativePerDay:         native,
			PageEquivalentPerDay: PageEquivalent(format, native),
			Items:                a.items,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Format < result[j].Format })
	return result
}

// ObservedSpanDays returns the inclusive day span between an item's first
// and last snapshot, 0 when there are none.
func ObservedSpanDays(snaps []tracker.ProgressSnapshot) int {
	if len(snaps) == 0 {
		return 0
	}
	first := snaps[0].DayKey()
	last := first
	for _, s := range snaps[1:] {
		day := s.DayKey()
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	return int(last.Sub(first).Hours()/24) + 1
}
