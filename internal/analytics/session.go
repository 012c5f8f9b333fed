package analytics

import (
	"time"

	"shelfpace/internal/tracker"
)

// SnapshotSource supplies the already-fetched items and snapshot history the
// engine works over. The engine never fetches or stores anything itself.
type SnapshotSource interface {
	Items() []tracker.TrackedItem
	Snapshots(itemID string) []tracker.ProgressSnapshot
}

// DeadlineStatus is the full per-item analytics payload for status cards.
type DeadlineStatus struct {
	Item            tracker.TrackedItem `json:"item"`
	CurrentProgress float64             `json:"currentProgress"` // native unit
	PercentComplete float64             `json:"percentComplete"`
	DaysLeft        int                 `json:"daysLeft"`
	Urgency         UrgencyLevel        `json:"urgency"`
	UrgencyColor    string              `json:"urgencyColor"`
	StatusMessage   string              `json:"statusMessage"`
	RequiredPace    float64             `json:"requiredPace"` // native unit per day
	HistoricalPace  HistoricalPace      `json:"historicalPace"`
	PaceEstimate    float64             `json:"paceEstimate"` // page-equivalents per day
	OnTrack         bool                `json:"onTrack"`
}

// Session orchestrates one analytics request: it pulls every tracked item
// and its snapshots from the source, reconstructs daily deltas once, and
// serves the per-item and portfolio views off that cache. Sessions are
// cheap and single-use; build a fresh one whenever the snapshot data
// changes.
type Session struct {
	source    SnapshotSource
	tuning    Tuning
	reference time.Time

	projected bool
	items     []tracker.TrackedItem
	snaps     map[string][]tracker.ProgressSnapshot
	// page-equivalent deltas per item, unwindowed
	perItem map[string][]DailyDelta
}

// NewSession creates a session anchored at the given reference instant.
// The reference is injected rather than read from the clock so results are
// reproducible in tests and across concurrent chart recomputations.
func NewSession(source SnapshotSource, tuning Tuning, reference time.Time) *Session {
	return &Session{
		source:    source,
		tuning:    tuning,
		reference: reference,
	}
}

func (s *Session) project() {
	if s.projected {
		return
	}
	s.items = s.source.Items()
	s.snaps = make(map[string][]tracker.ProgressSnapshot, len(s.items))
	s.perItem = make(map[string][]DailyDelta, len(s.items))
	for _, item := range s.items {
		snaps := s.source.Snapshots(item.ID)
		s.snaps[item.ID] = snaps
		s.perItem[item.ID] = ReconstructDailyDeltas(snaps, item.Format, ReconstructOptions{
			PageEquivalent: true,
		})
	}
	s.projected = true
}

// Items returns the tracked items in the session.
func (s *Session) Items() []tracker.TrackedItem {
	s.project()
	return s.items
}

// ItemDeltas returns the item's daily deltas. Page-equivalent mode feeds
// the portfolio views; native mode feeds single-item charts.
func (s *Session) ItemDeltas(itemID string, pageEquivalent bool) []DailyDelta {
	s.project()
	if pageEquivalent {
		return s.perItem[itemID]
	}
	var format tracker.Format
	for _, item := range s.items {
		if item.ID == itemID {
			format = item.Format
			break
		}
	}
	return ReconstructDailyDeltas(s.snaps[itemID], format, ReconstructOptions{})
}

// Status computes the deadline status card for one item.
func (s *Session) Status(item tracker.TrackedItem) DeadlineStatus {
	s.project()

	current := CurrentProgress(s.snaps[item.ID])
	daysLeft := DaysLeft(item.Deadline, s.reference)
	urgency := s.tuning.ClassifyUrgency(daysLeft)
	required := RequiredDailyPace(item.TotalQuantity, current, daysLeft)

	window := NewTrailingWindow(s.reference, s.tuning.PaceWindowDays)
	recent := ReconstructDailyDeltas(s.snaps[item.ID], item.Format, ReconstructOptions{
		PageEquivalent: true,
		WindowStart:    window.Start,
		WindowEnd:      window.End,
	})
	hist := s.tuning.AverageHistoricalPace(recent)
	estimate := s.tuning.PaceEstimate(hist)

	percent := 0.0
	if item.TotalQuantity > 0 {
		percent = current / item.TotalQuantity * 100
	}

	return DeadlineStatus{
		Item:            item,
		CurrentProgress: current,
		PercentComplete: percent,
		DaysLeft:        daysLeft,
		Urgency:         urgency,
		UrgencyColor:    urgency.Color(),
		StatusMessage:   urgency.Message(),
		RequiredPace:    required,
		HistoricalPace:  hist,
		PaceEstimate:    estimate,
		OnTrack:         estimate >= PageEquivalent(item.Format, required),
	}
}

// Statuses computes status cards for every item in the session.
func (s *Session) Statuses() []DeadlineStatus {
	s.project()
	statuses := make([]DeadlineStatus, 0, len(s.items))
	for _, item := range s.items {
		statuses = append(statuses, s.Status(item))
	}
	return statuses
}

// Streaks computes the portfolio-wide reading streaks.
func (s *Session) Streaks() StreakSummary {
	s.project()
	series := make([][]DailyDelta, 0, len(s.perItem))
	for _, deltas := range s.perItem {
		series = append(series, deltas)
	}
	return s.tuning.SummarizeStreaks(ActiveDates(series...), s.reference)
}

// Heatmap computes the calendar heatmap over the configured lookback.
func (s *Session) Heatmap() HeatmapResult {
	s.project()
	return s.tuning.BuildHeatmap(s.perItem, s.reference)
}

// ProgressRing computes the total-progress ring, nil when no item has any
// progress.
func (s *Session) ProgressRing() *ProgressRing {
	s.project()
	inputs := make([]RingInput, 0, len(s.items))
	for _, item := range s.items {
		inputs = append(inputs, RingInput{
			Current: PageEquivalent(item.Format, CurrentProgress(s.snaps[item.ID])),
			Target:  PageEquivalent(item.Format, item.TotalQuantity),
		})
	}
	return BuildProgressRing(inputs)
}

// FormatVelocities computes the cross-format velocity comparison.
func (s *Session) FormatVelocities() []FormatVelocity {
	s.project()
	inputs := make([]VelocityInput, 0, len(s.items))
	for _, item := range s.items {
		snaps := s.snaps[item.ID]
		inputs = append(inputs, VelocityInput{
			Format:        item.Format,
			TotalProgress: CurrentProgress(snaps),
			SpanDays:      ObservedSpanDays(snaps),
		})
	}
	return FormatVelocities(inputs)
}
