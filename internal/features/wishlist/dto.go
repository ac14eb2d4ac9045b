package wishlist

import "github.com/Aym0707/aymstore/internal/features/catalog"

// Responses

type WishlistResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

type ToggleResponse struct {
	ProductID  string `json:"productId"`
	Wishlisted bool   `json:"wishlisted"`
	Count      int    `json:"count"`
}
