package cart

import (
	"net/http"

	"github.com/Aym0707/aymstore/internal/handlerutils"
	"github.com/Aym0707/aymstore/internal/money"
	"github.com/Aym0707/aymstore/internal/servererrors"
	"github.com/Aym0707/aymstore/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	AddItem(productID string, quantity int) ([]CartItem, error)
	UpdateQuantity(productID string, quantity int) ([]CartItem, error)
	RemoveItem(productID string) ([]CartItem, error)
	Clear()
	Items() []CartItem
	ItemCount() int
	Total() int
}

type handler struct {
	service servicer
}

func NewHandler(cartService servicer) *handler {
	return &handler{
		service: cartService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/cart",
		handlerutils.MakeHandler(
			h.getCartHandler,
		),
	)

	router.Post(
		"/cart/items",
		handlerutils.MakeHandler(
			h.addItemHandler,
		),
	)

	router.Patch(
		"/cart/items/{productID}",
		handlerutils.MakeHandler(
			h.updateQuantityHandler,
		),
	)

	router.Delete(
		"/cart/items/{productID}",
		handlerutils.MakeHandler(
			h.removeItemHandler,
		),
	)

	router.Delete(
		"/cart",
		handlerutils.MakeHandler(
			h.clearCartHandler,
		),
	)
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart retrieved",
		h.cartResponse(h.service.Items()),
	)
}

func (h *handler) addItemHandler(w http.ResponseWriter, r *http.Request) error {
	var payload AddItemRequest

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if fieldErrors := validate.StructFields(payload); fieldErrors != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrValidationFailed.Error(),
			fieldErrors,
		)
	}

	items, err := h.service.AddItem(payload.ProductID, payload.Quantity)
	if err != nil {
		return servererrors.NotFound(err.Error())
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"item added to cart",
		h.cartResponse(items),
	)
}

func (h *handler) updateQuantityHandler(w http.ResponseWriter, r *http.Request) error {
	productID := chi.URLParam(r, "productID")

	var payload UpdateQuantityRequest

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	items, err := h.service.UpdateQuantity(productID, payload.Quantity)
	if err != nil {
		return servererrors.NotFound(err.Error())
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart updated",
		h.cartResponse(items),
	)
}

func (h *handler) removeItemHandler(w http.ResponseWriter, r *http.Request) error {
	productID := chi.URLParam(r, "productID")

	items, err := h.service.RemoveItem(productID)
	if err != nil {
		return servererrors.NotFound(err.Error())
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item removed from cart",
		h.cartResponse(items),
	)
}

func (h *handler) clearCartHandler(w http.ResponseWriter, r *http.Request) error {
	h.service.Clear()

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart cleared",
		h.cartResponse(nil),
	)
}

func (h *handler) cartResponse(items []CartItem) CartResponse {
	if items == nil {
		items = []CartItem{}
	}

	return CartResponse{
		Items:     items,
		ItemCount: h.service.ItemCount(),
		Total:     h.service.Total(),
		TotalText: money.FormatPrice(h.service.Total()),
	}
}
