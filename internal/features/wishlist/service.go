package wishlist

import (
	"log"
	"sync"

	"github.com/Aym0707/aymstore/internal/eventengine"
	"github.com/Aym0707/aymstore/internal/eventengine/event"
	"github.com/Aym0707/aymstore/internal/features/catalog"
	"github.com/Aym0707/aymstore/internal/servererrors"
)

// cataloger is the catalog slice the wishlist needs: existence checks at
// toggle time and the full list for membership filtering.
type cataloger interface {
	ProductByID(id string) (catalog.Product, bool)
	Products() []catalog.Product
}

// service keeps the wishlist as an insertion-ordered id sequence, so the
// persisted snapshot is stable and reflects the order products were added.
// Products that disappear from the catalog stay in the sequence; they simply
// stop appearing in Products() until the catalog carries them again.
type service struct {
	catalog     cataloger
	eventEngine eventengine.RegisterPublisher

	mu  sync.Mutex
	ids []string
}

func NewService(catalogService cataloger, eventEngine eventengine.RegisterPublisher) *service {
	eventEngine.RegisterEvents(
		event.WishlistUpdatedEventName,
	)

	return &service{
		catalog:     catalogService,
		eventEngine: eventEngine,
	}
}

// Toggle flips a product's membership and reports the new state: true means
// the product is now wishlisted. Unknown products are rejected. A new entry
// goes to the end; removal keeps the rest in place.
func (s *service) Toggle(productID string) (bool, error) {
	if _, found := s.catalog.ProductByID(productID); !found {
		return false, servererrors.ErrProductNotFound
	}

	s.mu.Lock()

	wishlisted := false
	for i, id := range s.ids {
		if id == productID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			wishlisted = true
			break
		}
	}

	if !wishlisted {
		s.ids = append(s.ids, productID)
	}

	s.mu.Unlock()

	s.publish()

	return !wishlisted, nil
}

func (s *service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.ids {
		if id == productID {
			return true
		}
	}

	return false
}

func (s *service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.ids)
}

// Products resolves membership against the live catalog, in catalog order.
func (s *service) Products() []catalog.Product {
	ids := s.IDs()

	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	products := []catalog.Product{}
	for _, p := range s.catalog.Products() {
		if _, ok := members[p.ID]; ok {
			products = append(products, p)
		}
	}

	return products
}

// Restore seeds membership from the cache at boot without publishing,
// keeping the persisted order.
func (s *service) Restore(productIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make([]string, len(productIDs))
	copy(s.ids, productIDs)
}

// IDs returns membership in insertion order.
func (s *service) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.ids))
	copy(out, s.ids)

	return out
}

func (s *service) publish() {
	err := s.eventEngine.Publish(
		&event.Event{
			Name:    event.WishlistUpdatedEventName,
			Payload: &event.WishlistUpdatedEvent{ProductIDs: s.IDs()},
		},
	)
	if err != nil {
		log.Printf("failed to publish wishlist snapshot: %v\n", err)
	}
}
