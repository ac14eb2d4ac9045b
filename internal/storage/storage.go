// Package storage is the storefront's local cache: a single-table SQLite
// key-value store holding JSON-serialized snapshots of the catalog, cart,
// wishlist and the checkout-time cart snapshot. It is a passive
// serialization target, never an owner; writes are best-effort.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// The four independent namespaced records. The names carry over from the
// storefront's original localStorage keys so existing tooling keeps working.
const (
	ProductsKey     = "aymShopProducts"
	CartKey         = "aymShopCart"
	WishlistKey     = "aymShopWishlist"
	OriginalCartKey = "aymShopOriginalCart"
)

type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite-backed cache at path.
func Open(path string) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cache path is required")
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache db: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	return c.db.Close()
}

// SaveRaw upserts one pre-serialized record.
func (c *Cache) SaveRaw(key string, value []byte) error {
	query := `INSERT INTO kv(key, value, updated_at) VALUES($1, $2, $3)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := c.db.Exec(
		query,
		key,
		string(value),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf(
			"failed to save '%s' in local cache: %w",
			key,
			err,
		)
	}

	return nil
}

// LoadRaw reads one record. The bool reports whether the key existed.
func (c *Cache) LoadRaw(key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv WHERE key = $1`

	var value string
	err := c.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf(
			"failed to load '%s' from local cache: %w",
			key,
			err,
		)
	}

	return []byte(value), true, nil
}

// Save JSON-encodes value and upserts it under key.
func (c *Cache) Save(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf(
			"failed to serialize '%s' for local cache: %w",
			key,
			err,
		)
	}

	return c.SaveRaw(key, b)
}

// Load reads the record under key into dest. The bool reports whether the
// key existed; a missing key leaves dest untouched.
func (c *Cache) Load(key string, dest any) (bool, error) {
	b, found, err := c.LoadRaw(key)
	if err != nil || !found {
		return found, err
	}

	if err := json.Unmarshal(b, dest); err != nil {
		return true, fmt.Errorf(
			"failed to decode '%s' from local cache: %w",
			key,
			err,
		)
	}

	return true, nil
}
