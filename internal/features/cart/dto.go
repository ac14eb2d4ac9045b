package cart

// Requests

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,notblank"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Responses

type CartResponse struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     int        `json:"total"`
	TotalText string     `json:"totalText"`
}

// CheckoutResult reports a checkout attempt. Every line is attempted even
// after an earlier one fails, so OutOfStockItems can name several products;
// on failure the stock reserved for the lines that DID fit stays reserved
// in memory but is never persisted.
type CheckoutResult struct {
	Success         bool       `json:"success"`
	OutOfStockItems []string   `json:"outOfStockItems,omitempty"`
	Items           []CartItem `json:"items,omitempty"`
	Total           int        `json:"total,omitempty"`
}
