package forecast

import (
	"math/rand"
	"sort"
	"time"

	"shelfpace/internal/analytics"
	"shelfpace/internal/tracker"
)

// Result holds the percentile outcomes of a finish-date simulation, in days
// from the reference date, plus the probability of making the deadline.
type Result struct {
	P50 int `json:"p50"`
	P70 int `json:"p70"`
	P85 int `json:"p85"`
	P95 int `json:"p95"`

	P50Date time.Time `json:"p50Date"`
	P85Date time.Time `json:"p85Date"`

	// OnTimeProbability is the share of trials finishing on or before the
	// deadline. -1 when no deadline was supplied.
	OnTimeProbability float64 `json:"onTimeProbability"`
	Trials            int     `json:"trials"`
}

// Engine runs Monte-Carlo finish-date forecasts by resampling an item's
// historical daily page-equivalents. Days without reading are part of the
// sample at their observed frequency, so the pace distribution keeps its
// real gaps.
type Engine struct {
	sample []float64
	rng    *rand.Rand
}

// NewEngine builds an engine from reconstructed daily deltas over the
// observed span. A nil engine means the history cannot support a forecast.
func NewEngine(deltas []analytics.DailyDelta, spanDays int, seed int64) *Engine {
	if len(deltas) == 0 {
		return nil
	}

	sample := make([]float64, 0, spanDays)
	hasPositive := false
	for _, d := range deltas {
		if d.Delta > 0 {
			hasPositive = true
		}
		sample = append(sample, d.Delta)
	}
	if !hasPositive {
		return nil
	}

	// Pad with zero-days up to the observed span so sampled paces reflect
	// how often the reader actually skips days.
	for len(sample) < spanDays {
		sample = append(sample, 0)
	}

	return &Engine{
		sample: sample,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Run simulates the given number of trials of burning down the remaining
// page-equivalents and returns percentile finish days.
func (e *Engine) Run(remaining float64, reference, deadline time.Time, trials int) Result {
	if trials <= 0 {
		trials = 2000
	}

	days := make([]int, trials)
	for i := 0; i < trials; i++ {
		days[i] = e.simulateTrial(remaining)
	}
	sort.Ints(days)

	res := Result{
		P50:    days[int(float64(trials)*0.50)],
		P70:    days[int(float64(trials)*0.70)],
		P85:    days[int(float64(trials)*0.85)],
		P95:    days[int(float64(trials)*0.95)],
		Trials: trials,
	}
	res.P50Date = reference.AddDate(0, 0, res.P50)
	res.P85Date = reference.AddDate(0, 0, res.P85)

	if deadline.IsZero() {
		res.OnTimeProbability = -1
		return res
	}

	allowed := analytics.DaysLeft(deadline, reference)
	onTime := 0
	for _, d := range days {
		if d <= allowed {
			onTime++
		}
	}
	res.OnTimeProbability = float64(onTime) / float64(trials)
	return res
}

func (e *Engine) simulateTrial(remaining float64) int {
	days := 0
	for remaining > 0 {
		days++
		remaining -= e.sample[e.rng.Intn(len(e.sample))]

		if days > 10000 { // safety brake
			break
		}
	}
	return days
}

// ForItem is the convenience path used by the tool surface: reconstruct the
// item's history, derive the remaining amount, and run the forecast. A nil
// result means insufficient history, which callers surface as an explicit
// "not enough data" state rather than an error.
func ForItem(item tracker.TrackedItem, snaps []tracker.ProgressSnapshot, reference time.Time, trials int) *Result {
	deltas := analytics.ReconstructDailyDeltas(snaps, item.Format, analytics.ReconstructOptions{
		PageEquivalent: true,
	})
	engine := NewEngine(deltas, analytics.ObservedSpanDays(snaps), reference.UnixNano())
	if engine == nil {
		return nil
	}

	current := analytics.CurrentProgress(snaps)
	remaining := analytics.PageEquivalent(item.Format, item.TotalQuantity-current)
	if remaining <= 0 {
		return &Result{OnTimeProbability: 1, Trials: 0}
	}

	res := engine.Run(remaining, reference, item.Deadline, trials)
	return &res
}
