package http

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), domain.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toUserDTO(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toUserDTO(identityFrom(r.Context()).User))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	var req discountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	if err := h.accounts.SetDiscount(r.Context(), userID, req.Discount); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
