package catalog

// Responses

// SnapshotResponse is the fixed-shape catalog payload consumed by
// storefront clients. Failures keep the same shape with success=false and
// an empty product list, so callers treat a 200-with-success:false and a
// non-2xx as the same retryable signal.
type SnapshotResponse struct {
	Success     bool      `json:"success"`
	Products    []Product `json:"products"`
	Count       int       `json:"count"`
	LastUpdated string    `json:"lastUpdated,omitempty"`
	Error       string    `json:"error,omitempty"`
}

type SearchProductsResponse struct {
	AllProductsCount int       `json:"allProductsCount"`
	ResultsCount     int       `json:"resultsCount"`
	Page             int       `json:"page"`
	TotalPagesCount  int       `json:"totalPagesCount"`
	Products         []Product `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
