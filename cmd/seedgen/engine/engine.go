package engine

import (
	"fmt"
	"math/rand"
	"time"

	"shelfpace/internal/library"
	"shelfpace/internal/tracker"
)

type GeneratorConfig struct {
	Scenario string // "steady", "sprinter", "corrector"
	Items    int
	Weeks    int
	Seed     int64
	Now      time.Time
}

var formats = []tracker.Format{tracker.Physical, tracker.Ebook, tracker.Audio}

// Generate builds a synthetic library with realistic snapshot texture:
// irregular logging days, several logs on some days, occasional downward
// corrections, and format-appropriate totals.
func Generate(cfg GeneratorConfig) ([]tracker.TrackedItem, []tracker.ProgressSnapshot) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now().UTC()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var items []tracker.TrackedItem
	var snaps []tracker.ProgressSnapshot

	start := cfg.Now.AddDate(0, 0, -cfg.Weeks*7)

	for i := 0; i < cfg.Items; i++ {
		format := formats[i%len(formats)]

		total := 250.0 + float64(rng.Intn(400)) // pages
		switch format {
		case tracker.Ebook:
			total = 100
		case tracker.Audio:
			total = 400 + float64(rng.Intn(800)) // minutes
		}

		item := tracker.TrackedItem{
			ID:            fmt.Sprintf("seed-%d", i+1),
			Title:         fmt.Sprintf("Seed Book %d", i+1),
			Format:        format,
			TotalQuantity: total,
			Deadline:      cfg.Now.AddDate(0, 0, 5+rng.Intn(40)),
			Status:        tracker.StatusActive,
		}
		items = append(items, item)

		// Daily reading probability and volume per scenario
		readChance := 0.6
		burst := false
		correct := false
		switch cfg.Scenario {
		case "sprinter":
			readChance = 0.25
			burst = true
		case "corrector":
			correct = true
		}

		cumulative := 0.0
		perDay := total / float64(cfg.Weeks*7) * 1.5
		for day := 0; day < cfg.Weeks*7; day++ {
			if rng.Float64() > readChance {
				continue
			}

			amount := perDay * (0.5 + rng.Float64())
			if burst {
				amount *= 2.5
			}
			cumulative += amount
			if cumulative > total {
				cumulative = total
			}

			at := start.AddDate(0, 0, day).Add(time.Duration(18+rng.Intn(5)) * time.Hour)
			snaps = append(snaps, newSnapshot(item.ID, at, cumulative))

			// Some evenings get a second, larger log
			if rng.Float64() < 0.2 {
				cumulative += amount * 0.4
				if cumulative > total {
					cumulative = total
				}
				snaps = append(snaps, newSnapshot(item.ID, at.Add(90*time.Minute), cumulative))
			}

			// Corrections: log a LOWER total that a later entry recovers from
			if correct && rng.Float64() < 0.1 {
				snaps = append(snaps, newSnapshot(item.ID, at.Add(3*time.Hour), cumulative*0.9))
			}

			if cumulative >= total {
				break
			}
		}
	}

	return items, snaps
}

func newSnapshot(itemID string, at time.Time, value float64) tracker.ProgressSnapshot {
	return tracker.ProgressSnapshot{
		ID:                 fmt.Sprintf("%s-%d", itemID, at.UnixMicro()),
		ItemID:             itemID,
		CreatedAt:          at,
		CumulativeProgress: float64(int(value*10)) / 10,
	}
}

// Save writes the generated library into a fresh store under outDir.
func Save(outDir string, items []tracker.TrackedItem, snaps []tracker.ProgressSnapshot) error {
	store, err := library.Open(outDir)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, item := range items {
		if err := store.SaveItem(item); err != nil {
			return err
		}
	}
	return store.SaveSnapshots(snaps)
}
