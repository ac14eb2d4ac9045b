package cart

import "github.com/Aym0707/aymstore/internal/money"

// CartItem is a catalog product pinned into the cart at add time. Price is
// copied, not referenced: a catalog refresh changing a price does not
// reprice items already in the cart.
type CartItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Quantity int      `json:"quantity"`
	Images   []string `json:"images"`
	Category string   `json:"category"`
}

// LineTotal is the parsed unit price times quantity. An unparsable price
// contributes zero, same as everywhere else money is summed.
func (i CartItem) LineTotal() int {
	return money.ParsePrice(i.Price) * i.Quantity
}
