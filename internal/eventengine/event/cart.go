package event

import "encoding/json"

const (
	CartUpdatedEventName       EventName = "cart.updated"
	CartSnapshotSavedEventName EventName = "cart.snapshot.saved"
)

// CartUpdatedEvent carries the live cart after any successful mutation.
type CartUpdatedEvent struct {
	Items json.RawMessage
}

func (e *CartUpdatedEvent) GetEventName() EventName {
	return CartUpdatedEventName
}

// CartSnapshotSavedEvent carries the "original cart" snapshot kept for
// re-sharing an order after the live cart is cleared.
type CartSnapshotSavedEvent struct {
	Items json.RawMessage
}

func (e *CartSnapshotSavedEvent) GetEventName() EventName {
	return CartSnapshotSavedEventName
}
