package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTTL is how long a cached listing stays usable for offline reads.
const DefaultTTL = 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);`

// Cache is a read-through cache of backend listings in a local SQLite file,
// so browse commands keep working when the backend is unreachable. It stores
// listings only: never key material, never tokens.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores a listing under key, replacing any previous entry.
func (c *Cache) Put(key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT INTO listings (key, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Get loads the listing under key into out if it exists and is younger than
// maxAge. Returns false when there is no usable entry.
func (c *Cache) Get(key string, maxAge time.Duration, out interface{}) (bool, error) {
	var payload []byte
	var fetchedAt int64
	err := c.db.QueryRow(
		`SELECT payload, fetched_at FROM listings WHERE key = ?`, key,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if time.Since(time.Unix(fetchedAt, 0)) > maxAge {
		return false, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		// A corrupt entry behaves like a miss.
		return false, nil
	}
	return true, nil
}

// Purge removes every cached listing.
func (c *Cache) Purge() error {
	if _, err := c.db.Exec(`DELETE FROM listings`); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}
