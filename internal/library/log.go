package library

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"shelfpace/internal/tracker"
)

// Log provides thread-safe, chronological in-memory storage for tracked
// items and their snapshot histories, partitioned by item ID. Snapshots are
// append-only and deduplicated by identity, so replaying a backend sync or
// reloading a cache never produces double entries.
type Log struct {
	mu    sync.RWMutex
	items map[string]tracker.TrackedItem
	snaps map[string][]tracker.ProgressSnapshot
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{
		items: make(map[string]tracker.TrackedItem),
		snaps: make(map[string][]tracker.ProgressSnapshot),
	}
}

// UpsertItem inserts or replaces a tracked item.
func (l *Log) UpsertItem(item tracker.TrackedItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[item.ID] = item
}

// RemoveItem deletes an item and its snapshot history.
func (l *Log) RemoveItem(itemID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.items, itemID)
	delete(l.snaps, itemID)
}

// Items returns all tracked items sorted by deadline, then ID for
// determinism.
func (l *Log) Items() []tracker.TrackedItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]tracker.TrackedItem, 0, len(l.items))
	for _, item := range l.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Deadline.Equal(items[j].Deadline) {
			return items[i].Deadline.Before(items[j].Deadline)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// Item returns one tracked item by ID.
func (l *Log) Item(itemID string) (tracker.TrackedItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.items[itemID]
	return item, ok
}

// Append adds snapshots to an item's history, keeping chronological order
// and dropping duplicates.
func (l *Log) Append(itemID string, snaps []tracker.ProgressSnapshot) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.snaps[itemID]

	existing := make(map[string]bool, len(history))
	for _, s := range history {
		existing[snapshotIdentity(s)] = true
	}

	added := 0
	for _, s := range snaps {
		if !existing[snapshotIdentity(s)] {
			existing[snapshotIdentity(s)] = true
			history = append(history, s)
			added++
		}
	}
	if added == 0 {
		return 0
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})
	l.snaps[itemID] = history
	return added
}

// Snapshots returns a copy of the item's chronological snapshot history.
func (l *Log) Snapshots(itemID string) []tracker.ProgressSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	history := l.snaps[itemID]
	out := make([]tracker.ProgressSnapshot, len(history))
	copy(out, history)
	return out
}

// LatestTimestamp returns the most recent snapshot time across all items,
// zero when the log is empty. Used to decide whether a backend sync is due.
func (l *Log) LatestTimestamp() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var latest time.Time
	for _, history := range l.snaps {
		if n := len(history); n > 0 && history[n-1].CreatedAt.After(latest) {
			latest = history[n-1].CreatedAt
		}
	}
	return latest
}

// Count returns the total number of snapshots in the log.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, history := range l.snaps {
		total += len(history)
	}
	return total
}

// snapshotIdentity keys deduplication. The backend ID wins when present;
// otherwise the (item, timestamp, value) triple identifies the observation.
func snapshotIdentity(s tracker.ProgressSnapshot) string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("%s|%d|%g", s.ItemID, s.CreatedAt.UnixMicro(), s.CumulativeProgress)
}
