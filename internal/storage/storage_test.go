package storage

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open test cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	return cache
}

func TestCache_roundTrip(t *testing.T) {
	cache := openTestCache(t)

	type line struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}

	saved := []line{
		{ID: "rec001", Quantity: 2},
		{ID: "rec002", Quantity: 1},
	}

	if err := cache.Save(CartKey, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded []line
	found, err := cache.Load(CartKey, &loaded)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected the cart key to exist")
	}
	if len(loaded) != 2 || loaded[0] != saved[0] || loaded[1] != saved[1] {
		t.Errorf("loaded %+v; want %+v", loaded, saved)
	}
}

// The DSN pragmas must actually apply; a silently ignored journal_mode
// leaves the cache in rollback-journal mode.
func TestCache_opensInWALMode(t *testing.T) {
	cache := openTestCache(t)

	var mode string
	if err := cache.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("pragma query: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode is %q; want %q", mode, "wal")
	}
}

func TestCache_missingKey(t *testing.T) {
	cache := openTestCache(t)

	var dest []string
	found, err := cache.Load(WishlistKey, &dest)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Error("expected the wishlist key to be absent")
	}
	if dest != nil {
		t.Errorf("dest should be untouched for a missing key, got %v", dest)
	}
}

func TestCache_overwrite(t *testing.T) {
	cache := openTestCache(t)

	if err := cache.Save(WishlistKey, []string{"rec001"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cache.Save(WishlistKey, []string{"rec001", "rec002"}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var ids []string
	if _, err := cache.Load(WishlistKey, &ids); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected the second save to win, got %v", ids)
	}
}
