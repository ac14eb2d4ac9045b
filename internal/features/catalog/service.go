package catalog

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Aym0707/aymstore/internal/eventengine"
	"github.com/Aym0707/aymstore/internal/eventengine/event"
)

// itemsPerPage is the fixed storefront page size.
const itemsPerPage = 20

// Both sentinels bypass the category filter; the storefront UI historically
// used either.
const (
	SentinelAll   = "all"
	SentinelAllFa = "همه"
)

type fetcherer interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// service owns the in-memory product list, the derived category list and
// the search/filter/pagination state. It is the single catalog instance for
// the process; every consumer receives it by reference. All operations are
// mutex-guarded because the HTTP surface is concurrent, but each one is
// atomic and none spawns background mutation.
type service struct {
	fetcher     fetcherer
	eventEngine eventengine.RegisterPublisher

	mu                   sync.Mutex
	products             []Product
	categories           []string
	currentCategory      string
	currentQuery         string
	currentSearchResults []Product
	currentPage          int
	lastUpdated          time.Time
}

func NewService(fetcher fetcherer, eventEngine eventengine.RegisterPublisher) *service {
	eventEngine.RegisterEvents(
		event.CatalogReplacedEventName,
	)

	return &service{
		fetcher:         fetcher,
		eventEngine:     eventEngine,
		currentCategory: SentinelAll,
		currentPage:     1,
	}
}

// Refresh fetches a fresh snapshot from upstream and replaces the catalog
// wholesale. On failure the current catalog is left untouched so the caller
// can retry.
func (s *service) Refresh(ctx context.Context) ([]Product, error) {
	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.ReplaceCatalog(products)

	return products, nil
}

// ReplaceCatalog wholesale-replaces the product list. Search results reset
// to the full list; the current page is deliberately NOT reset — callers
// own pagination context across refreshes.
func (s *service) ReplaceCatalog(products []Product) {
	s.mu.Lock()
	s.products = products
	s.currentSearchResults = products
	s.categories = extractCategories(products)
	s.lastUpdated = time.Now().UTC()
	s.mu.Unlock()

	s.publishCatalog()
}

// Restore seeds the catalog from the local cache at boot. Identical to
// ReplaceCatalog minus the persistence event: writing the cache back with
// the data just read from it would be noise.
func (s *service) Restore(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.currentSearchResults = products
	s.categories = extractCategories(products)
	s.lastUpdated = time.Now().UTC()
}

// extractCategories derives the unique category list in first-seen order,
// prefixed with the "all" sentinel label.
func extractCategories(products []Product) []string {
	categories := []string{SentinelAllFa}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = defaultCategory
		}

		if _, ok := seen[category]; ok {
			continue
		}

		seen[category] = struct{}{}
		categories = append(categories, category)
	}

	return categories
}

func (s *service) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)

	return out
}

func (s *service) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.categories))
	copy(out, s.categories)

	return out
}

func (s *service) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUpdated
}

func (s *service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.products)
}

// Search filters by exact category (the sentinels bypass the filter) and a
// case-insensitive substring query matched against name, code, description
// and full description (a record matches if ANY field contains it). Both
// filters compose with AND. The current page is NOT reset here; a fresh
// search needs the caller to reset it explicitly, as the storefront call
// sites always did.
func (s *service) Search(query, category string) []Product {
	s.mu.Lock()

	filtered := s.products

	if category != SentinelAll && category != SentinelAllFa {
		byCategory := make([]Product, 0, len(filtered))
		for _, p := range filtered {
			if p.Category == category {
				byCategory = append(byCategory, p)
			}
		}
		filtered = byCategory
	}

	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		byQuery := make([]Product, 0, len(filtered))
		for _, p := range filtered {
			if containsFold(p.Name, term) ||
				containsFold(p.Code, term) ||
				containsFold(p.Description, term) ||
				containsFold(p.FullDescription, term) {
				byQuery = append(byQuery, p)
			}
		}
		filtered = byQuery
	}

	s.currentSearchResults = filtered
	s.currentCategory = category
	s.currentQuery = query

	s.mu.Unlock()

	return s.Paginate()
}

// containsFold expects term already lowercased.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func (s *service) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	s.currentPage = page
}

func (s *service) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentPage
}

// Paginate slices the current search results for the current page.
// Out-of-range pages yield an empty slice rather than failing.
func (s *service) Paginate() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := (s.currentPage - 1) * itemsPerPage
	if start >= len(s.currentSearchResults) || start < 0 {
		return []Product{}
	}

	end := start + itemsPerPage
	if end > len(s.currentSearchResults) {
		end = len(s.currentSearchResults)
	}

	out := make([]Product, end-start)
	copy(out, s.currentSearchResults[start:end])

	return out
}

func (s *service) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return (len(s.currentSearchResults) + itemsPerPage - 1) / itemsPerPage
}

func (s *service) ResultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.currentSearchResults)
}

// ProductByID does a linear lookup and returns a copy.
func (s *service) ProductByID(id string) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}

// DecrementStock is the checkout reservation primitive: it decrements one
// product's stock when enough is available and reports whether it did.
// Unknown ids count as insufficient. Stock only ever changes here.
func (s *service) DecrementStock(id string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}

		if s.products[i].Stock < quantity {
			return false
		}

		s.products[i].Stock -= quantity
		return true
	}

	return false
}

// PersistStock publishes the catalog snapshot so checkout-time stock
// decrements reach the cache. Called only on checkout success; a failed
// checkout leaves its partial in-memory decrements unpersisted.
func (s *service) PersistStock() {
	s.publishCatalog()
}

func (s *service) publishCatalog() {
	snapshot := event.Snapshot(s.Products())

	err := s.eventEngine.Publish(
		&event.Event{
			Name:    event.CatalogReplacedEventName,
			Payload: &event.CatalogReplacedEvent{Products: snapshot},
		},
	)
	if err != nil {
		log.Printf("failed to publish catalog snapshot: %v\n", err)
	}
}
