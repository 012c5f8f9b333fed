package backend

import (
	"github.com/rs/zerolog/log"

	"shelfpace/internal/tracker"
)

// MapSync validates a raw sync payload into typed domain values. Records
// that fail structural validation are rejected here and never reach the
// analytics engine; each rejection is logged and counted so a noisy backend
// is visible without halting the sync.
func MapSync(sync *SyncResponse) ([]tracker.TrackedItem, []tracker.ProgressSnapshot, int) {
	if sync == nil {
		return nil, nil, 0
	}

	rejected := 0

	items := make([]tracker.TrackedItem, 0, len(sync.Items))
	for _, raw := range sync.Items {
		item, err := tracker.ParseItem(raw)
		if err != nil {
			rejected++
			log.Warn().Err(err).Msg("Rejecting malformed deadline record")
			continue
		}
		items = append(items, item)
	}

	snaps := make([]tracker.ProgressSnapshot, 0, len(sync.Snapshots))
	for _, raw := range sync.Snapshots {
		snap, err := tracker.ParseSnapshot(raw)
		if err != nil {
			rejected++
			log.Warn().Err(err).Msg("Rejecting malformed snapshot record")
			continue
		}
		snaps = append(snaps, snap)
	}

	return items, snaps, rejected
}
