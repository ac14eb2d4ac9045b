package catalog

// Product is the canonical, field-resolved product shape used everywhere
// downstream of the fetcher, independent of the upstream table's raw
// bilingual field names.
//
// Price stays a free-form currency string on purpose; see the money package
// for the lossy parse that turns it into an amount. Images is never empty:
// the fetcher synthesizes a placeholder when the source has none.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Price           string   `json:"price"`
	Stock           int      `json:"stock"`
	Category        string   `json:"category"`
	Images          []string `json:"images"`
}
