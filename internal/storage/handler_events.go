package storage

import (
	"log"
	"sync"

	"github.com/Aym0707/aymstore/internal/eventengine"
	"github.com/Aym0707/aymstore/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.cache"

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Cache         *Cache
	AddressChSize uint16
}

// handlerEvents is the cache writer: it subscribes to every state-snapshot
// event and persists it. Writes are fire-and-forget; a failure is logged
// and never surfaced to the publisher.
type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(
	cfg *HandlerEventsConfig,
) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Cache == nil {
		log.Fatalf(
			"either 'DoneCh', 'InternalSrvWG', 'EventEngine' or 'Cache' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	// subscribe before the listen goroutine starts so the subscriptions
	// land on the caller's goroutine, ahead of any publish; otherwise the
	// engine's event map is written concurrently with reads and the first
	// events can broadcast to nobody.
	he.addSubscriptions()

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine
	// closes the addressCh on shutdown.
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.CatalogReplacedEvent:
			h.write(ProductsKey, ne.Products)

		case *event.CartUpdatedEvent:
			h.write(CartKey, ne.Items)

		case *event.CartSnapshotSavedEvent:
			h.write(OriginalCartKey, ne.Items)

		case *event.WishlistUpdatedEvent:
			if err := h.Cache.Save(WishlistKey, ne.ProductIDs); err != nil {
				log.Printf("cache write skipped: %v\n", err)
			}

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvents) write(key string, snapshot []byte) {
	if snapshot == nil {
		log.Printf("cache write for '%s' skipped: nil snapshot\n", key)
		return
	}

	if err := h.Cache.SaveRaw(key, snapshot); err != nil {
		log.Printf("cache write skipped: %v\n", err)
	}
}

// addSubscriptions iterates over subscribeToEventNames and subscribes to
// every state-snapshot event with addressCh.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [4]event.EventName{
		event.CatalogReplacedEventName,
		event.CartUpdatedEventName,
		event.CartSnapshotSavedEventName,
		event.WishlistUpdatedEventName,
	}

	var err error
	for _, v := range subscribeToEventNames {
		err = h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s' \nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
