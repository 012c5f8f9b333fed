package analytics

import (
	"sort"
	"time"

	"shelfpace/internal/tracker"
)

// DailyDelta is the reconstructed activity of one item on one UTC calendar
// day. Delta is never negative. Deltas are derived on every request and
// never persisted.
type DailyDelta struct {
	Date   time.Time `json:"date"`
	ItemID string    `json:"itemId"`
	Delta  float64   `json:"value"`
}

// ReconstructOptions controls the output mode of ReconstructDailyDeltas.
type ReconstructOptions struct {
	// PageEquivalent normalizes deltas via the unit conversion; otherwise
	// deltas stay in the item's native unit (single-item charts want pages
	// of the book itself, not page-equivalents).
	PageEquivalent bool
	// WindowStart/WindowEnd restrict the OUTPUT to a date range (inclusive,
	// compared by UTC calendar day; zero means unbounded). Snapshots outside
	// the window are still consulted so a delta straddling the boundary is
	// diffed against its true chronological predecessor.
	WindowStart time.Time
	WindowEnd   time.Time
}

// ReconstructDailyDeltas turns an item's sparse cumulative snapshots into a
// per-day series of non-negative progress deltas.
//
// Snapshots are sorted internally, so the result is independent of input
// order. Within one calendar day only the maximum cumulative value counts
// (ties broken by latest timestamp). The first observed day consumes the
// entire cumulative value as its delta: all prior unobserved reading is
// credited to that day. Negative diffs are corrections and clamp to zero;
// the zero row is kept as a witness of the logging event, except for a
// zero-valued bootstrap, which carries no activity at all.
func ReconstructDailyDeltas(snaps []tracker.ProgressSnapshot, format tracker.Format, opts ReconstructOptions) []DailyDelta {
	if len(snaps) == 0 {
		return nil
	}

	sorted := make([]tracker.ProgressSnapshot, len(snaps))
	copy(sorted, snaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	itemID := sorted[0].ItemID

	// Collapse to one representative snapshot per UTC day: max cumulative,
	// ties won by the later timestamp.
	reps := make(map[time.Time]tracker.ProgressSnapshot)
	var days []time.Time
	for _, s := range sorted {
		day := s.DayKey()
		rep, seen := reps[day]
		if !seen {
			reps[day] = s
			days = append(days, day)
			continue
		}
		if s.CumulativeProgress > rep.CumulativeProgress ||
			(s.CumulativeProgress == rep.CumulativeProgress && s.CreatedAt.After(rep.CreatedAt)) {
			reps[day] = s
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var startDay, endDay time.Time
	if !opts.WindowStart.IsZero() {
		startDay = tracker.DayOf(opts.WindowStart)
	}
	if !opts.WindowEnd.IsZero() {
		endDay = tracker.DayOf(opts.WindowEnd)
	}

	var result []DailyDelta
	havePrev := false
	var prev float64
	for _, day := range days {
		value := reps[day].CumulativeProgress

		var delta float64
		if !havePrev {
			delta = value // bootstrap
		} else {
			delta = value - prev
			if delta < 0 {
				delta = 0
			}
		}
		isBootstrap := !havePrev
		prev = value
		havePrev = true

		if isBootstrap && delta == 0 {
			continue
		}
		if !startDay.IsZero() && day.Before(startDay) {
			continue
		}
		if !endDay.IsZero() && day.After(endDay) {
			continue
		}

		if opts.PageEquivalent {
			delta = PageEquivalent(format, delta)
		}
		result = append(result, DailyDelta{Date: day, ItemID: itemID, Delta: delta})
	}

	return result
}

// CurrentProgress returns the item's most recent cumulative value in its
// native unit: the representative (max) value of the last observed day.
// Zero when no snapshots exist.
func CurrentProgress(snaps []tracker.ProgressSnapshot) float64 {
	var lastDay time.Time
	var best float64
	var bestAt time.Time
	for _, s := range snaps {
		day := s.DayKey()
		switch {
		case day.After(lastDay):
			lastDay = day
			best = s.CumulativeProgress
			bestAt = s.CreatedAt
		case day.Equal(lastDay):
			if s.CumulativeProgress > best ||
				(s.CumulativeProgress == best && s.CreatedAt.After(bestAt)) {
				best = s.CumulativeProgress
				bestAt = s.CreatedAt
			}
		}
	}
	return best
}

// ActiveDates returns the distinct UTC days with positive delta, preserving
// chronological order of first appearance within each input series.
func ActiveDates(series ...[]DailyDelta) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, deltas := range series {
		for _, d := range deltas {
			if d.Delta > 0 && !seen[d.Date] {
				seen[d.Date] = true
				dates = append(dates, d.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
