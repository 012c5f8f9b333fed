package library

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"shelfpace/internal/backend"
	"shelfpace/internal/tracker"
)

// Provider orchestrates hydration: local store first, then an incremental
// backend sync, with everything funneled through the deduplicating Log. The
// Log satisfies the engine's SnapshotSource contract, so a hydrated
// provider is all an analytics session needs.
type Provider struct {
	client backend.Client
	store  *Store
	log    *Log
}

// NewProvider creates a provider over the given client and store. Either
// may be nil: a nil client is an offline, local-only library and a nil
// store keeps everything in memory.
func NewProvider(client backend.Client, store *Store) *Provider {
	return &Provider{
		client: client,
		store:  store,
		log:    NewLog(),
	}
}

// Log exposes the in-memory library for analytics sessions.
func (p *Provider) Log() *Log {
	return p.log
}

// Hydrate loads the local store and then pulls fresh records from the
// backend. The backend is asked only for records newer than what we hold;
// an empty library triggers a full fetch.
func (p *Provider) Hydrate() error {
	if p.store != nil {
		if err := p.store.LoadInto(p.log); err != nil {
			return fmt.Errorf("hydrate: %w", err)
		}
	}

	if p.client == nil {
		log.Debug().Msg("Hydrate: no backend client, using local library only")
		return nil
	}
	return p.Sync()
}

// Sync fetches records from the backend, validates them at the ingestion
// boundary, and merges them into the log and the store.
func (p *Provider) Sync() error {
	since := p.log.LatestTimestamp()

	resp, err := p.client.FetchLibrary(since)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	items, snaps, rejected := backend.MapSync(resp)

	for _, item := range items {
		p.log.UpsertItem(item)
		if p.store != nil {
			if err := p.store.SaveItem(item); err != nil {
				log.Warn().Err(err).Str("item", item.ID).Msg("Sync: failed to persist item")
			}
		}
	}

	byItem := make(map[string][]tracker.ProgressSnapshot)
	for _, snap := range snaps {
		byItem[snap.ItemID] = append(byItem[snap.ItemID], snap)
	}
	added := 0
	for itemID, history := range byItem {
		added += p.log.Append(itemID, history)
	}
	if p.store != nil && len(snaps) > 0 {
		if err := p.store.SaveSnapshots(snaps); err != nil {
			log.Warn().Err(err).Msg("Sync: failed to persist snapshots")
		}
	}

	log.Info().
		Int("items", len(items)).
		Int("snapshots", added).
		Int("rejected", rejected).
		Time("since", since).
		Msg("Library sync complete")
	return nil
}

// LogProgress appends one locally-created snapshot, stamping an ID when the
// caller didn't provide one.
func (p *Provider) LogProgress(snap tracker.ProgressSnapshot) error {
	if _, ok := p.log.Item(snap.ItemID); !ok {
		return fmt.Errorf("unknown tracked item %q", snap.ItemID)
	}
	if snap.ID == "" {
		snap.ID = fmt.Sprintf("local-%s-%d", snap.ItemID, snap.CreatedAt.UnixMicro())
	}
	if snap.CreatedAt.IsZero() {
		return fmt.Errorf("snapshot for %q has no timestamp", snap.ItemID)
	}

	if p.log.Append(snap.ItemID, []tracker.ProgressSnapshot{snap}) == 0 {
		return nil // duplicate
	}
	if p.store != nil {
		if err := p.store.SaveSnapshots([]tracker.ProgressSnapshot{snap}); err != nil {
			return fmt.Errorf("failed to persist snapshot: %w", err)
		}
	}
	return nil
}

// AddItem registers a new tracked item locally.
func (p *Provider) AddItem(item tracker.TrackedItem) error {
	if item.ID == "" {
		return fmt.Errorf("tracked item needs an ID")
	}
	if !item.Format.Valid() {
		return fmt.Errorf("tracked item %q has unknown format %q", item.ID, item.Format)
	}
	if item.Status == "" {
		item.Status = tracker.StatusActive
	}
	p.log.UpsertItem(item)
	if p.store != nil {
		if err := p.store.SaveItem(item); err != nil {
			return fmt.Errorf("failed to persist item: %w", err)
		}
	}
	return nil
}

// staleAfter guards against acting on a long-dead cache; callers may force
// a full refetch when the newest snapshot is older than this.
const staleAfter = 60 * 24 * time.Hour

// IsStale reports whether the newest snapshot is older than the staleness
// horizon.
func (p *Provider) IsStale(now time.Time) bool {
	latest := p.log.LatestTimestamp()
	return !latest.IsZero() && now.Sub(latest) > staleAfter
}
