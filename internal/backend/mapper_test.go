package backend

import (
	"testing"

	"shelfpace/internal/tracker"
)

func TestMapSync(t *testing.T) {
	sync := &SyncResponse{
		Items: []map[string]any{
			{
				"id":            "b1",
				"title":         "Good Book",
				"format":        "physical",
				"totalQuantity": 320.0,
				"deadlineDate":  "2026-04-01",
			},
			{
				// unknown format, rejected
				"id":            "b2",
				"format":        "vinyl",
				"totalQuantity": 100.0,
				"deadlineDate":  "2026-04-01",
			},
		},
		Snapshots: []map[string]any{
			{
				"id":                 "s-1",
				"trackedItemId":      "b1",
				"createdAt":          "2026-03-05T20:15:00Z",
				"cumulativeProgress": 42.0,
			},
			{
				// missing timestamp, rejected
				"id":                 "s-2",
				"trackedItemId":      "b1",
				"cumulativeProgress": 50.0,
			},
		},
	}

	items, snaps, rejected := MapSync(sync)

	if len(items) != 1 || items[0].ID != "b1" {
		t.Errorf("items = %+v, want exactly b1", items)
	}
	if items[0].Format != tracker.Physical {
		t.Errorf("Format = %s, want physical", items[0].Format)
	}
	if len(snaps) != 1 || snaps[0].ID != "s-1" {
		t.Errorf("snaps = %+v, want exactly s-1", snaps)
	}
	if rejected != 2 {
		t.Errorf("rejected = %d, want 2", rejected)
	}
}

func TestMapSyncNil(t *testing.T) {
	items, snaps, rejected := MapSync(nil)
	if items != nil || snaps != nil || rejected != 0 {
		t.Errorf("MapSync(nil) = %v, %v, %d, want all empty", items, snaps, rejected)
	}
}
