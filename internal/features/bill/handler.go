package bill

import (
	"errors"
	"net/http"

	"github.com/Aym0707/aymstore/internal/features/cart"
	"github.com/Aym0707/aymstore/internal/handlerutils"
	"github.com/Aym0707/aymstore/internal/servererrors"
	"github.com/Aym0707/aymstore/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	Checkout(customer CustomerInfo) (*cart.CheckoutResult, *Bill, error)
	LastBill() (*Bill, bool)
	Share() (*ShareResponse, error)
}

type handler struct {
	service servicer
}

func NewHandler(billService servicer) *handler {
	return &handler{
		service: billService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/checkout",
		handlerutils.MakeHandler(
			h.checkoutHandler,
		),
	)

	router.Get(
		"/bill",
		handlerutils.MakeHandler(
			h.getBillHandler,
		),
	)

	router.Get(
		"/bill/share",
		handlerutils.MakeHandler(
			h.shareBillHandler,
		),
	)
}

// checkoutHandler validates the customer, attempts the checkout and issues
// the bill. Out-of-stock answers 409 with the offending product names; the
// lines that did fit stay reserved in memory per the cart's checkout
// semantics, so the client can retry after removing the failed lines.
func (h *handler) checkoutHandler(w http.ResponseWriter, r *http.Request) error {
	var payload CheckoutRequest

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

	result, newBill, err := h.service.Checkout(payload.Customer)
	if err != nil {
		if errors.Is(err, servererrors.ErrCartEmpty) {
			return servererrors.New(
				http.StatusBadRequest,
				err.Error(),
				nil,
			)
		}

		return err
	}

	if !result.Success {
		return servererrors.New(
			http.StatusConflict,
			servererrors.ErrInsufficientStock.Error(),
			CheckoutFailedResponse{
				OutOfStockItems: result.OutOfStockItems,
				SupportPhone:    SupportPhone,
			},
		)
	}

	share, err := h.service.Share()
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order placed",
		BillResponse{
			Bill:     newBill,
			ShareURL: share.ShareURL,
		},
	)
}

func (h *handler) getBillHandler(w http.ResponseWriter, r *http.Request) error {
	lastBill, found := h.service.LastBill()
	if !found {
		return servererrors.NotFound(servererrors.ErrNoBillYet.Error())
	}

	share, err := h.service.Share()
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"bill retrieved",
		BillResponse{
			Bill:     lastBill,
			ShareURL: share.ShareURL,
		},
	)
}

func (h *handler) shareBillHandler(w http.ResponseWriter, r *http.Request) error {
	share, err := h.service.Share()
	if err != nil {
		if errors.Is(err, servererrors.ErrNoBillYet) {
			return servererrors.NotFound(err.Error())
		}
		if errors.Is(err, servererrors.ErrCartEmpty) {
			return servererrors.New(
				http.StatusBadRequest,
				err.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"share link generated",
		share,
	)
}
