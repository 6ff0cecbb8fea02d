package crossref

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultCacheTTL is how long a cached works response stays valid.
// Registry metadata for a published article is effectively immutable.
const DefaultCacheTTL = 365 * 24 * time.Hour

// Cache is a process-wide SQLite cache of raw works responses, keyed by DOI.
// It is constructed once at process start and injected into the Client;
// the core pipeline never touches it directly.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenCache opens or creates a response cache at the given path,
// creating parent directories as needed.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createCacheSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db, ttl: DefaultCacheTTL, now: time.Now}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createCacheSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS responses (
			doi        TEXT PRIMARY KEY,
			body       BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached response body for a DOI, if present and unexpired.
func (c *Cache) Get(doi string) ([]byte, bool, error) {
	var body []byte
	var fetchedAt int64
	err := c.db.QueryRow(
		`SELECT body, fetched_at FROM responses WHERE doi = ?`, doi,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	if c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores a response body for a DOI, replacing any previous entry.
func (c *Cache) Put(doi string, body []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO responses (doi, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(doi) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		doi, body, c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
