package catalog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Aym0707/aymstore/internal/handlerutils"
	"github.com/Aym0707/aymstore/internal/servererrors"
	"github.com/go-chi/chi"
)

type servicer interface {
	Refresh(ctx context.Context) ([]Product, error)
	Products() []Product
	Categories() []string
	Count() int
	LastUpdated() time.Time
	Search(query, category string) []Product
	SetPage(page int)
	Page() int
	TotalPages() int
	ResultCount() int
	ProductByID(id string) (Product, bool)
}

type handler struct {
	service servicer
}

func NewHandler(catalogService servicer) *handler {
	return &handler{
		service: catalogService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getProductsSnapshotHandler,
		),
	)

	router.Post(
		"/products/refresh",
		handlerutils.MakeHandler(
			h.refreshProductsHandler,
		),
	)

	router.Get(
		"/products/search",
		handlerutils.MakeHandler(
			h.searchProductsHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	router.Get(
		"/categories",
		handlerutils.MakeHandler(
			h.getCategoriesHandler,
		),
	)
}

// getProductsSnapshotHandler serves the full normalized catalog in the
// fixed snapshot shape, cacheable for a short interim window.
func (h *handler) getProductsSnapshotHandler(w http.ResponseWriter, r *http.Request) error {
	products := h.service.Products()

	w.Header().Set("Cache-Control", "s-maxage=300, stale-while-revalidate")

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		SnapshotResponse{
			Success:     true,
			Products:    products,
			Count:       len(products),
			LastUpdated: h.service.LastUpdated().Format(time.RFC3339),
		},
	)
}

// refreshProductsHandler is the manual retry action: it re-fetches the
// catalog from upstream and replaces the in-memory list wholesale. A failed
// refresh leaves the current catalog untouched and answers with the fixed
// failure shape.
func (h *handler) refreshProductsHandler(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.Refresh(r.Context())
	if err != nil {
		return handlerutils.WriteJSON(
			w,
			http.StatusInternalServerError,
			SnapshotResponse{
				Success:  false,
				Error:    err.Error(),
				Products: []Product{},
				Count:    0,
			},
		)
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		SnapshotResponse{
			Success:     true,
			Products:    products,
			Count:       len(products),
			LastUpdated: h.service.LastUpdated().Format(time.RFC3339),
		},
	)
}

func (h *handler) searchProductsHandler(w http.ResponseWriter, r *http.Request) error {
	queries := r.URL.Query()

	query := queries.Get("query")

	category := queries.Get("category")
	if category == "" {
		category = SentinelAll
	}

	// a fresh search resets pagination to the first page unless the
	// caller pins one; the reset lives here, not in Search itself.
	page := stringToInt(1, queries.Get("page"))
	h.service.SetPage(page)

	products := h.service.Search(query, category)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"products retrieved",
		SearchProductsResponse{
			AllProductsCount: h.service.Count(),
			ResultsCount:     h.service.ResultCount(),
			Page:             h.service.Page(),
			TotalPagesCount:  h.service.TotalPages(),
			Products:         products,
		},
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID := chi.URLParam(r, "productID")

	product, found := h.service.ProductByID(productID)
	if !found {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) getCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"categories retrieved",
		CategoriesResponse{
			Categories: h.service.Categories(),
		},
	)
}

func stringToInt(defaultValue int, field string) int {
	num, err := strconv.Atoi(field)
	if err != nil || num < 1 {
		return defaultValue
	}

	return num
}
