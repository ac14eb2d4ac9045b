package event

import "encoding/json"

const (
	CatalogReplacedEventName EventName = "catalog.replaced"
)

// CatalogReplacedEvent carries the full normalized catalog after a fetch,
// a wholesale replace or a checkout-time stock persist.
type CatalogReplacedEvent struct {
	Products json.RawMessage
}

func (e *CatalogReplacedEvent) GetEventName() EventName {
	return CatalogReplacedEventName
}
