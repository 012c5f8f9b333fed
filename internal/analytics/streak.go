package analytics

import (
	"sort"
	"time"

	"shelfpace/internal/tracker"
)

// Streaks summarizes consecutive-day reading runs across the whole
// portfolio: any item contributing a positive delta makes the day active.
type Streaks struct {
	Current int `json:"currentStreak"`
	Longest int `json:"longestStreak"`
}

// StreakSummary is Streaks plus the display gate: sparse histories report
// HasEnoughData=false so callers render a placeholder instead of a chart.
type StreakSummary struct {
	Streaks
	ActiveDates   int  `json:"activeDates"`
	HasEnoughData bool `json:"hasEnoughData"`
}

// SummarizeStreaks computes the portfolio streaks with the display gate
// applied per Tuning.StreakMinDates.
func (t Tuning) SummarizeStreaks(activeDates []time.Time, today time.Time) StreakSummary {
	distinct := make(map[time.Time]bool, len(activeDates))
	for _, d := range activeDates {
		distinct[tracker.DayOf(d)] = true
	}
	return StreakSummary{
		Streaks:       ComputeStreaks(activeDates, today),
		ActiveDates:   len(distinct),
		HasEnoughData: len(distinct) >= t.StreakMinDates,
	}
}

// ComputeStreaks walks the sorted distinct active dates. A run continues
// only when the next active date is exactly one calendar day later. The
// current streak is the trailing run, but only while it is still alive:
// today or yesterday must be active, otherwise it is 0. Reading yesterday
// keeps the streak intact before today's session; a 2-day gap resets it.
//
// The reference instant is injected so the result never depends on the host
// clock.
func ComputeStreaks(activeDates []time.Time, today time.Time) Streaks {
	if len(activeDates) == 0 {
		return Streaks{}
	}

	days := make([]time.Time, 0, len(activeDates))
	seen := make(map[time.Time]bool)
	for _, d := range activeDates {
		day := tracker.DayOf(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	todayDay := tracker.DayOf(today)
	yesterday := todayDay.AddDate(0, 0, -1)

	current := 0
	if seen[todayDay] || seen[yesterday] {
		// Trailing run length ending at the last active date.
		current = 1
		for i := len(days) - 1; i > 0; i-- {
			if days[i].Sub(days[i-1]) == 24*time.Hour {
				current++
			} else {
				break
			}
		}
	}

	return Streaks{Current: current, Longest: longest}
}
