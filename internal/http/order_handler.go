package http

import (
	"errors"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
)

// PlaceOrder checks out the listed items, or the caller's cart when the body is empty.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := identityFrom(r.Context()).User

	var req placeOrderRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.respondDomainError(w, r, err)
		return
	}

	var (
		receipt domain.Receipt
		err     error
	)
	if req.Items == nil {
		receipt, err = h.checkout.CheckoutCart(r.Context(), user.ID)
	} else {
		lines := make([]domain.CartLine, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, domain.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		receipt, err = h.checkout.Checkout(r.Context(), domain.CheckoutRequest{UserID: user.ID, Lines: lines})
	}
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, receiptToOrderDTO(user.ID, receipt))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := identityFrom(r.Context()).User

	orders, err := h.orders.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) OrderItems(w http.ResponseWriter, r *http.Request) {
	orderID, err := int64Param(r, "orderID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	items, err := h.orders.Items(r.Context(), identityFrom(r.Context()).User, orderID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderItemDTOs(items))
}
