package wishlist

import (
	"net/http"

	"github.com/Aym0707/aymstore/internal/features/catalog"
	"github.com/Aym0707/aymstore/internal/handlerutils"
	"github.com/Aym0707/aymstore/internal/servererrors"
	"github.com/go-chi/chi"
)

type servicer interface {
	Toggle(productID string) (bool, error)
	Contains(productID string) bool
	Count() int
	Products() []catalog.Product
}

type handler struct {
	service servicer
}

func NewHandler(wishlistService servicer) *handler {
	return &handler{
		service: wishlistService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/wishlist",
		handlerutils.MakeHandler(
			h.getWishlistHandler,
		),
	)

	router.Post(
		"/wishlist/{productID}/toggle",
		handlerutils.MakeHandler(
			h.toggleHandler,
		),
	)
}

func (h *handler) getWishlistHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"wishlist retrieved",
		WishlistResponse{
			Products: h.service.Products(),
			Count:    h.service.Count(),
		},
	)
}

func (h *handler) toggleHandler(w http.ResponseWriter, r *http.Request) error {
	productID := chi.URLParam(r, "productID")

	wishlisted, err := h.service.Toggle(productID)
	if err != nil {
		return servererrors.NotFound(err.Error())
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"wishlist updated",
		ToggleResponse{
			ProductID:  productID,
			Wishlisted: wishlisted,
			Count:      h.service.Count(),
		},
	)
}
