package http

import (
	"net/http"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCategoryDTO(category))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := int64Param(r, "categoryID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	category := domain.Category{ID: categoryID, Name: strings.TrimSpace(req.Name)}
	if err := h.catalog.UpdateCategory(r.Context(), category); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCategoryDTO(category))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := int64Param(r, "categoryID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), categoryID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.decodeProduct(w, r)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), product)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductDTO(created))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	product, err := h.decodeProduct(w, r)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	product.ID = productID

	updated, err := h.catalog.UpdateProduct(r.Context(), product)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(updated))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productID")
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), productID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (domain.Product, error) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return domain.Product{}, err
	}

	cur := h.currency
	if req.Currency != "" {
		parsed, err := currency.ParseISO(req.Currency)
		if err != nil {
			return domain.Product{}, domain.NewValidationError("currency", "is not a valid ISO 4217 code")
		}
		cur = parsed
	}

	product := domain.Product{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       domain.NewMoney(req.Price, cur),
		Stock:       req.Stock,
	}

	return product, product.Validate()
}
