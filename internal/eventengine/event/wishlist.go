package event

const (
	WishlistUpdatedEventName EventName = "wishlist.updated"
)

// WishlistUpdatedEvent carries the full wishlist membership after a toggle.
type WishlistUpdatedEvent struct {
	ProductIDs []string
}

func (e *WishlistUpdatedEvent) GetEventName() EventName {
	return WishlistUpdatedEventName
}
