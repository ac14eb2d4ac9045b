package bill

// Requests

type CheckoutRequest struct {
	Customer CustomerInfo `json:"customer"`
}

// Responses

type BillResponse struct {
	Bill     *Bill  `json:"bill"`
	ShareURL string `json:"shareUrl"`
}

type ShareResponse struct {
	Message  string `json:"message"`
	ShareURL string `json:"shareUrl"`
}

// CheckoutFailedResponse mirrors the storefront's out-of-stock alert: the
// offending product names plus the support line to call.
type CheckoutFailedResponse struct {
	OutOfStockItems []string `json:"outOfStockItems"`
	SupportPhone    string   `json:"supportPhone"`
}
