package cart

import (
	"log"
	"sync"

	"github.com/Aym0707/aymstore/internal/eventengine"
	"github.com/Aym0707/aymstore/internal/eventengine/event"
	"github.com/Aym0707/aymstore/internal/features/catalog"
	"github.com/Aym0707/aymstore/internal/servererrors"
)

// cataloger is the slice of the catalog service the cart needs: product
// lookup at add time and the stock reservation primitives at checkout.
type cataloger interface {
	ProductByID(id string) (catalog.Product, bool)
	DecrementStock(id string, quantity int) bool
	PersistStock()
}

// service owns the single in-memory cart for the process. Items keep
// insertion order. Every successful mutation publishes the live cart and
// the order snapshot as a pair, so the snapshot key always tracks the cart;
// the completed order itself lives on in the bill issued for it.
type service struct {
	catalog     cataloger
	eventEngine eventengine.RegisterPublisher

	mu    sync.Mutex
	items []CartItem
}

func NewService(catalogService cataloger, eventEngine eventengine.RegisterPublisher) *service {
	eventEngine.RegisterEvents(
		event.CartUpdatedEventName,
		event.CartSnapshotSavedEventName,
	)

	return &service{
		catalog:     catalogService,
		eventEngine: eventEngine,
	}
}

// AddItem puts a catalog product into the cart, merging quantities when the
// product is already there. Quantities below one count as one.
func (s *service) AddItem(productID string, quantity int) ([]CartItem, error) {
	product, found := s.catalog.ProductByID(productID)
	if !found {
		return nil, servererrors.ErrProductNotFound
	}

	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()

	merged := false
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		s.items = append(s.items, CartItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: quantity,
			Images:   product.Images,
			Category: product.Category,
		})
	}

	items := s.copyItemsLocked()
	s.mu.Unlock()

	s.publishCart(items)

	return items, nil
}

// UpdateQuantity sets an item's quantity; zero or negative removes the item
// outright. The product must still exist in the catalog: a dangling line
// left by a catalog reload can be removed, but not updated.
func (s *service) UpdateQuantity(productID string, quantity int) ([]CartItem, error) {
	if _, found := s.catalog.ProductByID(productID); !found {
		return nil, servererrors.ErrProductNotFound
	}

	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	s.mu.Lock()

	found := false
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			found = true
			break
		}
	}

	if !found {
		s.mu.Unlock()
		return nil, servererrors.ErrCartItemNotFound
	}

	items := s.copyItemsLocked()
	s.mu.Unlock()

	s.publishCart(items)

	return items, nil
}

func (s *service) RemoveItem(productID string) ([]CartItem, error) {
	s.mu.Lock()

	found := false
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == productID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept

	if !found {
		s.mu.Unlock()
		return nil, servererrors.ErrCartItemNotFound
	}

	items := s.copyItemsLocked()
	s.mu.Unlock()

	s.publishCart(items)

	return items, nil
}

// Clear empties the cart and persists the empty snapshot.
func (s *service) Clear() {
	s.mu.Lock()
	s.items = nil
	items := s.copyItemsLocked()
	s.mu.Unlock()

	s.publishCart(items)
}

// Restore seeds the cart without publishing; used only at boot.
func (s *service) Restore(items []CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
}

func (s *service) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyItemsLocked()
}

// ItemCount is the sum of quantities, not the number of lines.
func (s *service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

func (s *service) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.LineTotal()
	}

	return total
}

// Checkout attempts to reserve stock for every cart line. All lines are
// attempted even after one fails, and reservations that succeeded before a
// failure are NOT rolled back; they simply never get persisted, so a process
// restart forgets them. On full success the stock change is persisted, the
// order snapshot is published, and the cart is cleared, which also resets
// the snapshot key; the issued bill keeps the order's lines.
func (s *service) Checkout() (*CheckoutResult, error) {
	s.mu.Lock()
	items := s.copyItemsLocked()
	s.mu.Unlock()

	if len(items) == 0 {
		return nil, servererrors.ErrCartEmpty
	}

	var outOfStock []string
	for _, item := range items {
		if !s.catalog.DecrementStock(item.ID, item.Quantity) {
			outOfStock = append(outOfStock, item.Name)
		}
	}

	if len(outOfStock) > 0 {
		return &CheckoutResult{
			Success:         false,
			OutOfStockItems: outOfStock,
		}, nil
	}

	total := 0
	for _, item := range items {
		total += item.LineTotal()
	}

	s.catalog.PersistStock()
	s.publishOrderSnapshot(items)
	s.Clear()

	return &CheckoutResult{
		Success: true,
		Items:   items,
		Total:   total,
	}, nil
}

func (s *service) copyItemsLocked() []CartItem {
	out := make([]CartItem, len(s.items))
	copy(out, s.items)

	return out
}

// publishCart persists a mutation: the live cart and the order snapshot are
// written as a pair, so clearing the cart also resets the snapshot key.
func (s *service) publishCart(items []CartItem) {
	err := s.eventEngine.Publish(
		&event.Event{
			Name:    event.CartUpdatedEventName,
			Payload: &event.CartUpdatedEvent{Items: event.Snapshot(items)},
		},
	)
	if err != nil {
		log.Printf("failed to publish cart snapshot: %v\n", err)
	}

	s.publishOrderSnapshot(items)
}

func (s *service) publishOrderSnapshot(items []CartItem) {
	err := s.eventEngine.Publish(
		&event.Event{
			Name:    event.CartSnapshotSavedEventName,
			Payload: &event.CartSnapshotSavedEvent{Items: event.Snapshot(items)},
		},
	)
	if err != nil {
		log.Printf("failed to publish order snapshot: %v\n", err)
	}
}
