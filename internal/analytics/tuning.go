package analytics

// Tuning collects the engine's named constants so callers can override them
// in one place instead of scattering literals through call sites.
type Tuning struct {
	// ReliableSampleDays is the minimum number of distinct active days in
	// the pace window before the historical average is trusted.
	ReliableSampleDays int
	// DefaultPacePerDay is the fallback pace estimate (page-equivalents)
	// used when the historical sample is too thin.
	DefaultPacePerDay float64
	// PaceWindowDays is the trailing window for historical pace.
	PaceWindowDays int
	// UrgentDays and ApproachingDays are the urgency classification
	// thresholds (days remaining).
	UrgentDays      int
	ApproachingDays int
	// HeatmapWeeks is the calendar heatmap lookback.
	HeatmapWeeks int
	// HeatmapMinActiveDays is the minimum distinct active days before a
	// heatmap is worth showing.
	HeatmapMinActiveDays int
	// StreakMinDates is the minimum distinct active dates before a streak
	// chart is worth showing.
	StreakMinDates int
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		ReliableSampleDays:   3,
		DefaultPacePerDay:    25,
		PaceWindowDays:       7,
		UrgentDays:           7,
		ApproachingDays:      14,
		HeatmapWeeks:         12,
		HeatmapMinActiveDays: 14,
		StreakMinDates:       7,
	}
}
