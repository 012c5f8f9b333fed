package library

import (
	"testing"
	"time"

	"shelfpace/internal/tracker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	item := tracker.TrackedItem{
		ID:            "b1",
		Title:         "A Paper Novel",
		Format:        tracker.Physical,
		TotalQuantity: 300,
		Deadline:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        tracker.StatusActive,
	}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	at := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)
	snaps := []tracker.ProgressSnapshot{
		{ID: "s-1", ItemID: "b1", CreatedAt: at, CumulativeProgress: 40},
		{ID: "s-2", ItemID: "b1", CreatedAt: at.AddDate(0, 0, 1), CumulativeProgress: 65},
	}
	if err := s.SaveSnapshots(snaps); err != nil {
		t.Fatalf("SaveSnapshots: %v", err)
	}
	// Saving again must not duplicate.
	if err := s.SaveSnapshots(snaps); err != nil {
		t.Fatalf("SaveSnapshots replay: %v", err)
	}

	l := NewLog()
	if err := s.LoadInto(l); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}

	loaded, ok := l.Item("b1")
	if !ok {
		t.Fatal("Item b1 missing after reload")
	}
	if loaded.Format != tracker.Physical || loaded.TotalQuantity != 300 {
		t.Errorf("Loaded item = %+v", loaded)
	}
	if !loaded.Deadline.Equal(item.Deadline) {
		t.Errorf("Deadline = %v, want %v", loaded.Deadline, item.Deadline)
	}

	history := l.Snapshots("b1")
	if len(history) != 2 {
		t.Fatalf("Expected 2 snapshots after reload, got %d", len(history))
	}
	if history[0].CumulativeProgress != 40 || history[1].CumulativeProgress != 65 {
		t.Errorf("History = %+v", history)
	}
}

func TestStoreUpsertItem(t *testing.T) {
	s := openTestStore(t)

	item := tracker.TrackedItem{
		ID:            "b1",
		Title:         "First Title",
		Format:        tracker.Ebook,
		TotalQuantity: 100,
		Deadline:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        tracker.StatusActive,
	}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	item.Title = "Corrected Title"
	item.Status = tracker.StatusComplete
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem update: %v", err)
	}

	l := NewLog()
	if err := s.LoadInto(l); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	loaded, _ := l.Item("b1")
	if loaded.Title != "Corrected Title" || loaded.Status != tracker.StatusComplete {
		t.Errorf("Upsert did not replace: %+v", loaded)
	}
	if got := len(l.Items()); got != 1 {
		t.Errorf("Expected 1 item after upsert, got %d", got)
	}
}

func TestStoreDeleteItemCascades(t *testing.T) {
	s := openTestStore(t)

	item := tracker.TrackedItem{
		ID:            "b1",
		Format:        tracker.Audio,
		TotalQuantity: 600,
		Deadline:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        tracker.StatusActive,
	}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	err := s.SaveSnapshots([]tracker.ProgressSnapshot{
		{ID: "s-1", ItemID: "b1", CreatedAt: time.Now().UTC(), CumulativeProgress: 30},
	})
	if err != nil {
		t.Fatalf("SaveSnapshots: %v", err)
	}

	if err := s.DeleteItem("b1"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	l := NewLog()
	if err := s.LoadInto(l); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if got := len(l.Items()); got != 0 {
		t.Errorf("Expected no items after delete, got %d", got)
	}
	if got := l.Count(); got != 0 {
		t.Errorf("Expected snapshot cascade, still have %d", got)
	}
}
