package tracker

import (
	"time"
)

// Format identifies how a tracked item measures progress.
type Format string

const (
	// Physical items are measured in pages.
	Physical Format = "physical"
	// Ebook items are measured in percent of the book (total is always 100).
	Ebook Format = "ebook"
	// Audio items are measured in minutes listened.
	Audio Format = "audio"
)

// Valid reports whether f is one of the three known formats.
func (f Format) Valid() bool {
	return f == Physical || f == Ebook || f == Audio
}

// Unit returns the native unit label for the format.
func (f Format) Unit() string {
	switch f {
	case Audio:
		return "minutes"
	case Ebook:
		return "percent"
	default:
		return "pages"
	}
}

// ItemStatus is the lifecycle state of a tracked item.
type ItemStatus string

const (
	StatusActive   ItemStatus = "active"
	StatusComplete ItemStatus = "complete"
	StatusSetAside ItemStatus = "set_aside"
)

// TrackedItem is one reading or listening goal: a target quantity in the
// item's native unit and a date it should be finished by.
type TrackedItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Format        Format     `json:"format"`
	TotalQuantity float64    `json:"totalQuantity"` // pages, 100 for ebooks, or minutes
	Deadline      time.Time  `json:"deadline"`
	Flexibility   string     `json:"flexibility,omitempty"` // informational only
	Status        ItemStatus `json:"status"`
}

// ProgressSnapshot is one cumulative progress observation. Snapshots are
// append-only and NOT guaranteed to be monotonically increasing: users
// correct mistakes by logging a lower total.
type ProgressSnapshot struct {
	ID                 string    `json:"id"`
	ItemID             string    `json:"itemId"`
	CreatedAt          time.Time `json:"createdAt"`
	CumulativeProgress float64   `json:"cumulativeProgress"`
}

// DayKey returns the snapshot's UTC calendar date at midnight. All
// day-bucketing in the engine goes through this so results never depend on
// the host timezone.
func (s ProgressSnapshot) DayKey() time.Time {
	return DayOf(s.CreatedAt)
}

// DayOf truncates t to its UTC calendar date.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
