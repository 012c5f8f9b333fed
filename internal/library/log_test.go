package library

import (
	"testing"
	"time"

	"shelfpace/internal/tracker"
)

func snapshot(id, itemID string, at time.Time, value float64) tracker.ProgressSnapshot {
	return tracker.ProgressSnapshot{ID: id, ItemID: itemID, CreatedAt: at, CumulativeProgress: value}
}

func TestLogAppendDeduplicates(t *testing.T) {
	l := NewLog()
	at := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)

	added := l.Append("b1", []tracker.ProgressSnapshot{
		snapshot("s-1", "b1", at, 40),
		snapshot("s-2", "b1", at.Add(time.Hour), 55),
	})
	if added != 2 {
		t.Errorf("First append added %d, want 2", added)
	}

	// Replaying the same sync batch must be a no-op.
	added = l.Append("b1", []tracker.ProgressSnapshot{
		snapshot("s-1", "b1", at, 40),
		snapshot("s-2", "b1", at.Add(time.Hour), 55),
	})
	if added != 0 {
		t.Errorf("Replay added %d, want 0", added)
	}
	if got := l.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestLogAppendDeduplicatesWithoutIDs(t *testing.T) {
	l := NewLog()
	at := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)

	l.Append("b1", []tracker.ProgressSnapshot{snapshot("", "b1", at, 40)})
	added := l.Append("b1", []tracker.ProgressSnapshot{snapshot("", "b1", at, 40)})
	if added != 0 {
		t.Errorf("Identical ID-less snapshot added %d, want 0", added)
	}

	// Same instant, different value: a distinct observation.
	added = l.Append("b1", []tracker.ProgressSnapshot{snapshot("", "b1", at, 45)})
	if added != 1 {
		t.Errorf("Distinct value added %d, want 1", added)
	}
}

func TestLogAppendKeepsChronologicalOrder(t *testing.T) {
	l := NewLog()
	base := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	l.Append("b1", []tracker.ProgressSnapshot{
		snapshot("s-3", "b1", base.AddDate(0, 0, 2), 80),
		snapshot("s-1", "b1", base, 40),
	})
	l.Append("b1", []tracker.ProgressSnapshot{
		snapshot("s-2", "b1", base.AddDate(0, 0, 1), 60),
	})

	history := l.Snapshots("b1")
	for i := 1; i < len(history); i++ {
		if history[i].CreatedAt.Before(history[i-1].CreatedAt) {
			t.Errorf("History out of order at %d: %v before %v",
				i, history[i].CreatedAt, history[i-1].CreatedAt)
		}
	}
}

func TestLogItemsSortedByDeadline(t *testing.T) {
	l := NewLog()
	l.UpsertItem(tracker.TrackedItem{ID: "late", Deadline: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)})
	l.UpsertItem(tracker.TrackedItem{ID: "soon", Deadline: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)})
	l.UpsertItem(tracker.TrackedItem{ID: "b", Deadline: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)})

	items := l.Items()

	wantOrder := []string{"soon", "b", "late"}
	if len(items) != len(wantOrder) {
		t.Fatalf("Items() returned %d items, want %d", len(items), len(wantOrder))
	}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("Items()[%d].ID = %s, want %s", i, items[i].ID, want)
		}
	}
}

func TestLogRemoveItem(t *testing.T) {
	l := NewLog()
	l.UpsertItem(tracker.TrackedItem{ID: "b1"})
	l.Append("b1", []tracker.ProgressSnapshot{
		snapshot("s-1", "b1", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), 40),
	})

	l.RemoveItem("b1")

	if _, ok := l.Item("b1"); ok {
		t.Error("Item should be gone after RemoveItem")
	}
	if got := l.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 after removing the item", got)
	}
}

func TestLogLatestTimestamp(t *testing.T) {
	l := NewLog()

	if !l.LatestTimestamp().IsZero() {
		t.Error("Empty log should report a zero latest timestamp")
	}

	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 7, 22, 0, 0, 0, time.UTC)
	l.Append("b1", []tracker.ProgressSnapshot{snapshot("s-1", "b1", early, 40)})
	l.Append("b2", []tracker.ProgressSnapshot{snapshot("s-2", "b2", late, 90)})

	if got := l.LatestTimestamp(); !got.Equal(late) {
		t.Errorf("LatestTimestamp() = %v, want %v", got, late)
	}
}

func TestLogSnapshotsReturnsCopy(t *testing.T) {
	l := NewLog()
	at := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)
	l.Append("b1", []tracker.ProgressSnapshot{snapshot("s-1", "b1", at, 40)})

	first := l.Snapshots("b1")
	first[0].CumulativeProgress = 999

	if got := l.Snapshots("b1")[0].CumulativeProgress; got != 40 {
		t.Errorf("Mutating the returned slice leaked into the log: %v", got)
	}
}
