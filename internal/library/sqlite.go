package library

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"shelfpace/internal/tracker"
)

// Store persists the library to a local database. SQLite is the default;
// DB_TYPE=postgres switches the driver for shared deployments.
type Store struct {
	db *sqlx.DB
}

// itemRow and snapshotRow map the relational schema to sqlx.
type itemRow struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Format        string    `db:"format"`
	TotalQuantity float64   `db:"total_quantity"`
	Deadline      time.Time `db:"deadline"`
	Flexibility   string    `db:"flexibility"`
	Status        string    `db:"status"`
}

type snapshotRow struct {
	ID                 string    `db:"id"`
	ItemID             string    `db:"item_id"`
	CreatedAt          time.Time `db:"created_at"`
	CumulativeProgress float64   `db:"cumulative_progress"`
}

// Open connects to the library database and bootstraps the schema.
func Open(dataPath string) (*Store, error) {
	driver := os.Getenv("DB_TYPE")
	if driver == "" {
		driver = "sqlite3"
	}

	var dsn string
	if driver == "postgres" {
		dsn = os.Getenv("DATABASE_URL")
	} else {
		if err := os.MkdirAll(dataPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(dataPath, "shelfpace.db")
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to library database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &Store{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tracked_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			total_quantity REAL NOT NULL,
			deadline TIMESTAMP NOT NULL,
			flexibility TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active'
		)`)
	if err != nil {
		return fmt.Errorf("failed to create tracked_items table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS progress_snapshots (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL REFERENCES tracked_items(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			cumulative_progress REAL NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create progress_snapshots table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_item_time
		ON progress_snapshots (item_id, created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot index: %w", err)
	}
	return nil
}

// SaveItem inserts or replaces a tracked item.
func (s *Store) SaveItem(item tracker.TrackedItem) error {
	_, err := s.db.Exec(`
		INSERT INTO tracked_items (id, title, format, total_quantity, deadline, flexibility, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			format = excluded.format,
			total_quantity = excluded.total_quantity,
			deadline = excluded.deadline,
			flexibility = excluded.flexibility,
			status = excluded.status`,
		item.ID, item.Title, string(item.Format), item.TotalQuantity,
		item.Deadline.UTC(), item.Flexibility, string(item.Status))
	if err != nil {
		return fmt.Errorf("failed to save tracked item: %w", err)
	}
	return nil
}

// SaveSnapshots inserts snapshots, silently skipping IDs already present.
func (s *Store) SaveSnapshots(snaps []tracker.ProgressSnapshot) error {
	for _, snap := range snaps {
		_, err := s.db.Exec(`
			INSERT INTO progress_snapshots (id, item_id, created_at, cumulative_progress)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			snap.ID, snap.ItemID, snap.CreatedAt.UTC(), snap.CumulativeProgress)
		if err != nil {
			return fmt.Errorf("failed to save snapshot %s: %w", snap.ID, err)
		}
	}
	return nil
}

// DeleteItem removes an item; the snapshot cascade handles its history.
func (s *Store) DeleteItem(itemID string) error {
	if _, err := s.db.Exec(`DELETE FROM tracked_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete tracked item: %w", err)
	}
	return nil
}

// LoadInto hydrates the in-memory log from the database.
func (s *Store) LoadInto(l *Log) error {
	var items []itemRow
	if err := s.db.Select(&items, `SELECT * FROM tracked_items`); err != nil {
		return fmt.Errorf("failed to load tracked items: %w", err)
	}
	for _, r := range items {
		l.UpsertItem(tracker.TrackedItem{
			ID:            r.ID,
			Title:         r.Title,
			Format:        tracker.Format(r.Format),
			TotalQuantity: r.TotalQuantity,
			Deadline:      r.Deadline.UTC(),
			Flexibility:   r.Flexibility,
			Status:        tracker.ItemStatus(r.Status),
		})
	}

	var snaps []snapshotRow
	if err := s.db.Select(&snaps, `SELECT * FROM progress_snapshots ORDER BY item_id, created_at`); err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}
	byItem := make(map[string][]tracker.ProgressSnapshot)
	for _, r := range snaps {
		byItem[r.ItemID] = append(byItem[r.ItemID], tracker.ProgressSnapshot{
			ID:                 r.ID,
			ItemID:             r.ItemID,
			CreatedAt:          r.CreatedAt.UTC(),
			CumulativeProgress: r.CumulativeProgress,
		})
	}
	total := 0
	for itemID, history := range byItem {
		total += l.Append(itemID, history)
	}

	log.Info().Int("items", len(items)).Int("snapshots", total).Msg("Library loaded from store")
	return nil
}
