package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Resource names for dashboard snapshots.
const (
	ResourceStats    = "stats"
	ResourceAccount  = "twitter_account"
	ResourceConfig   = "content_config"
	ResourceSchedule = "schedule"
	ResourcePosts    = "posts"
)

// SnapshotRepository caches the last good JSON payload of each dashboard
// resource so the dashboard remains renderable when the backend is down.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new [SnapshotRepository] with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores or replaces the payload for a resource.
func (r *SnapshotRepository) Save(resource string, payload []byte, fetchedAt time.Time) error {
	query := `
		INSERT INTO snapshots (resource, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`

	if _, err := r.db.Exec(query, resource, string(payload), fetchedAt); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", resource, err)
	}

	return nil
}

// Load retrieves the cached payload for a resource. The bool return is
// false when no snapshot exists.
func (r *SnapshotRepository) Load(resource string) ([]byte, time.Time, bool, error) {
	var (
		payload   string
		fetchedAt time.Time
	)

	err := r.db.QueryRow("SELECT payload, fetched_at FROM snapshots WHERE resource = ?", resource).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to load snapshot %s: %w", resource, err)
	}

	return []byte(payload), fetchedAt, true, nil
}

// Clear removes all cached snapshots. Called on logout so a different user
// never sees the previous user's data.
func (r *SnapshotRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	return nil
}
