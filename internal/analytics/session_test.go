package analytics

import (
	"testing"
	"time"

	"shelfpace/internal/tracker"
)

type fakeSource struct {
	items []tracker.TrackedItem
	snaps map[string][]tracker.ProgressSnapshot
}

func (f *fakeSource) Items() []tracker.TrackedItem { return f.items }
func (f *fakeSource) Snapshots(itemID string) []tracker.ProgressSnapshot {
	return f.snaps[itemID]
}

func fixtureSource() *fakeSource {
	return &fakeSource{
		items: []tracker.TrackedItem{
			{
				ID:            "paper",
				Title:         "A Paper Novel",
				Format:        tracker.Physical,
				TotalQuantity: 300,
				Deadline:      day("2026-03-20"),
				Status:        tracker.StatusActive,
			},
			{
				ID:            "audio",
				Title:         "A Long Listen",
				Format:        tracker.Audio,
				TotalQuantity: 600,
				Deadline:      day("2026-03-12"),
				Status:        tracker.StatusActive,
			},
		},
		snaps: map[string][]tracker.ProgressSnapshot{
			"paper": {
				snapAt("paper", "2026-03-05", 20, 30),
				snapAt("paper", "2026-03-06", 20, 55),
				snapAt("paper", "2026-03-07", 20, 75),
			},
			"audio": {
				snapAt("audio", "2026-03-06", 21, 90),
			},
		},
	}
}

func TestSessionStatus(t *testing.T) {
	reference := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	session := NewSession(fixtureSource(), DefaultTuning(), reference)

	statuses := session.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("Expected 2 statuses, got %d", len(statuses))
	}

	var paper, audio DeadlineStatus
	for _, s := range statuses {
		switch s.Item.ID {
		case "paper":
			paper = s
		case "audio":
			audio = s
		}
	}

	if paper.CurrentProgress != 75 {
		t.Errorf("paper CurrentProgress = %v, want 75", paper.CurrentProgress)
	}
	if paper.PercentComplete != 25 {
		t.Errorf("paper PercentComplete = %v, want 25", paper.PercentComplete)
	}
	if paper.DaysLeft != 10 {
		t.Errorf("paper DaysLeft = %d, want 10", paper.DaysLeft)
	}
	if paper.Urgency != Approaching {
		t.Errorf("paper Urgency = %s, want %s", paper.Urgency, Approaching)
	}
	// ceil((300-75)/10)
	if paper.RequiredPace != 23 {
		t.Errorf("paper RequiredPace = %v, want 23", paper.RequiredPace)
	}
	if !paper.HistoricalPace.IsReliable {
		t.Error("Three active days inside the pace window should be reliable")
	}
	if paper.HistoricalPace.Value != 25 {
		t.Errorf("paper HistoricalPace.Value = %v, want 25", paper.HistoricalPace.Value)
	}
	if !paper.OnTrack {
		t.Error("paper should be on track: estimated 25 pages/day against required 23")
	}

	if audio.DaysLeft != 2 {
		t.Errorf("audio DaysLeft = %d, want 2", audio.DaysLeft)
	}
	if audio.Urgency != Urgent {
		t.Errorf("audio Urgency = %s, want %s", audio.Urgency, Urgent)
	}
	if audio.CurrentProgress != 90 {
		t.Errorf("audio CurrentProgress = %v, want 90 minutes (native unit)", audio.CurrentProgress)
	}
	// ceil((600-90)/2) in minutes
	if audio.RequiredPace != 255 {
		t.Errorf("audio RequiredPace = %v, want 255", audio.RequiredPace)
	}
}

func TestSessionStreaks(t *testing.T) {
	reference := time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)
	session := NewSession(fixtureSource(), DefaultTuning(), reference)

	got := session.Streaks()

	// Active days: Mar 5, 6, 7 and today is Mar 7.
	if got.Current != 3 || got.Longest != 3 {
		t.Errorf("Streaks() = %+v, want Current=3 Longest=3", got)
	}
	if got.ActiveDates != 3 {
		t.Errorf("ActiveDates = %d, want 3", got.ActiveDates)
	}
	if got.HasEnoughData {
		t.Error("Three active dates should not clear the streak display threshold")
	}
}

func TestSessionProgressRing(t *testing.T) {
	session := NewSession(fixtureSource(), DefaultTuning(), day("2026-03-10"))

	got := session.ProgressRing()
	if got == nil {
		t.Fatal("Expected a ring, got nil")
	}

	// paper: 75/300 pages. audio: 90/600 minutes -> 60/400 page-equivalents.
	if got.Completed != 135 {
		t.Errorf("Completed = %v, want 135", got.Completed)
	}
	if got.Target != 700 {
		t.Errorf("Target = %v, want 700", got.Target)
	}
}

func TestSessionFormatVelocities(t *testing.T) {
	session := NewSession(fixtureSource(), DefaultTuning(), day("2026-03-10"))

	got := session.FormatVelocities()
	if len(got) != 2 {
		t.Fatalf("Expected 2 formats, got %d", len(got))
	}

	byFormat := make(map[tracker.Format]FormatVelocity)
	for _, v := range got {
		byFormat[v.Format] = v
	}

	// paper: 75 pages over 3 observed days.
	if got := byFormat[tracker.Physical].NativePerDay; got != 25 {
		t.Errorf("Physical NativePerDay = %v, want 25", got)
	}
	// audio: 90 minutes over 1 observed day.
	if got := byFormat[tracker.Audio].NativePerDay; got != 90 {
		t.Errorf("Audio NativePerDay = %v, want 90", got)
	}
}

func TestSessionItemDeltasUnitModes(t *testing.T) {
	session := NewSession(fixtureSource(), DefaultTuning(), day("2026-03-10"))

	native := session.ItemDeltas("audio", false)
	if len(native) != 1 || native[0].Delta != 90 {
		t.Errorf("native deltas = %+v, want one 90-minute delta", native)
	}

	pageEq := session.ItemDeltas("audio", true)
	if len(pageEq) != 1 || pageEq[0].Delta != 60 {
		t.Errorf("page-equivalent deltas = %+v, want one 60-page delta", pageEq)
	}
}

func TestSessionEmptySource(t *testing.T) {
	session := NewSession(&fakeSource{}, DefaultTuning(), day("2026-03-10"))

	if got := session.Statuses(); len(got) != 0 {
		t.Errorf("Expected no statuses, got %d", len(got))
	}
	if got := session.Streaks(); got.Current != 0 || got.Longest != 0 {
		t.Errorf("Expected zero streaks, got %+v", got)
	}
	if got := session.ProgressRing(); got != nil {
		t.Errorf("Expected nil ring, got %+v", got)
	}
	heatmap := session.Heatmap()
	if heatmap.ActiveDays != 0 || heatmap.HasEnoughData {
		t.Errorf("Expected empty heatmap, got ActiveDays=%d HasEnoughData=%v",
			heatmap.ActiveDays, heatmap.HasEnoughData)
	}
}
