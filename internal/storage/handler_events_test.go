package storage

import (
	"sync"
	"testing"

	"github.com/Aym0707/aymstore/internal/eventengine"
	"github.com/Aym0707/aymstore/internal/eventengine/event"
)

// A publish issued right after wiring, on the same goroutine, must reach the
// cache: subscriptions land before the writer's goroutine starts, so the
// boot-time catalog load is never dropped.
func TestHandlerEvents_firstPublishIsPersisted(t *testing.T) {
	cache := openTestCache(t)

	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
	)

	engine.RegisterEvents(
		event.CatalogReplacedEventName,
		event.CartUpdatedEventName,
		event.CartSnapshotSavedEventName,
		event.WishlistUpdatedEventName,
	)

	NewHandlerEvents(
		&HandlerEventsConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
			EventEngine:   engine,
			Cache:         cache,
		},
	)

	type product struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	snapshot := event.Snapshot([]product{{ID: "rec001", Name: "A"}})
	err := engine.Publish(
		&event.Event{
			Name:    event.CatalogReplacedEventName,
			Payload: &event.CatalogReplacedEvent{Products: snapshot},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	// shutdown drains the engine and the writer before we read back.
	close(doneCh)
	internalSrvWG.Wait()

	var products []product
	found, err := cache.Load(ProductsKey, &products)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("the boot-time catalog snapshot never reached the cache")
	}
	if len(products) != 1 || products[0].ID != "rec001" {
		t.Errorf("persisted snapshot is %+v; want the published catalog", products)
	}
}
