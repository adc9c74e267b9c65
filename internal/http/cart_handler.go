package http

import (
	"net/http"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := identityFrom(r.Context()).User

	view, err := h.carts.Get(r.Context(), user.ID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartDTO(view))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	user := identityFrom(r.Context()).User

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	if err := h.carts.AddLine(r.Context(), user.ID, req.ProductID, req.Quantity); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	view, err := h.carts.Get(r.Context(), user.ID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartDTO(view))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	user := identityFrom(r.Context()).User

	productID, err := uuidParam(r, "productID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	if _, err := h.carts.RemoveLine(r.Context(), user.ID, productID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := identityFrom(r.Context()).User

	if err := h.carts.Clear(r.Context(), user.ID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
