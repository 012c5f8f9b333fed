package analytics

import (
	"math"
	"time"

	"shelfpace/internal/tracker"
)

// HistoricalPace is a trailing-window average of daily activity with a
// reliability flag. When IsReliable is false the caller must prefer the
// DefaultPacePerDay fallback over the thin sample.
type HistoricalPace struct {
	Value      float64 `json:"value"`
	IsReliable bool    `json:"isReliable"`
	SampleSize int     `json:"sampleSize"`
}

// RequiredDailyPace is the whole-unit daily amount needed to hit the target
// by the deadline. Days left floors at 1 so overdue items read as "finish it
// all today" rather than dividing by zero; already-met targets read as 0.
func RequiredDailyPace(totalQuantity, currentProgress float64, daysLeft int) float64 {
	remaining := totalQuantity - currentProgress
	if remaining <= 0 {
		return 0
	}
	if daysLeft < 1 {
		daysLeft = 1
	}
	return math.Ceil(remaining / float64(daysLeft))
}

// DaysLeft counts whole calendar days from now until the deadline, UTC.
// Negative for overdue items.
func DaysLeft(deadline, now time.Time) int {
	return int(tracker.DayOf(deadline).Sub(tracker.DayOf(now)).Hours() / 24)
}

// AverageHistoricalPace averages the page-equivalent deltas over days with
// positive activity. The sample counts distinct active days only; the
// reliability gate lives in Tuning.ReliableSampleDays.
func (t Tuning) AverageHistoricalPace(deltas []DailyDelta) HistoricalPace {
	activeDays := make(map[time.Time]float64)
	for _, d := range deltas {
		if d.Delta > 0 {
			activeDays[d.Date] += d.Delta
		}
	}

	n := len(activeDays)
	if n == 0 {
		return HistoricalPace{SampleSize: 0}
	}

	var total float64
	for _, v := range activeDays {
		total += v
	}

	return HistoricalPace{
		Value:      total / float64(n),
		IsReliable: n >= t.ReliableSampleDays,
		SampleSize: n,
	}
}

// PaceEstimate resolves a historical pace into the value callers should act
// on: the measured average when reliable, the fixed default otherwise.
func (t Tuning) PaceEstimate(hist HistoricalPace) float64 {
	if hist.IsReliable {
		return hist.Value
	}
	return t.DefaultPacePerDay
}
