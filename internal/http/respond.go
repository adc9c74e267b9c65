package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = domain.NewValidationError("", "request body is empty")

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

type shortfallDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int32     `json:"available"`
	Requested int32     `json:"requested"`
}

type exceedsStockDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int32     `json:"available"`
	InCart    int32     `json:"in_cart"`
	Requested int32     `json:"requested"`
	Remaining int32     `json:"remaining"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps the error taxonomy onto status codes. Unclassified errors are logged and hidden.
func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		exceeds    *domain.ExceedsStockError
		stock      *domain.InsufficientStockError
		notFound   *domain.ProductNotFoundError
		validation *domain.ValidationError
	)

	switch {
	case errors.As(err, &exceeds):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error: exceeds.Error(),
			Code:  "exceeds_stock",
			Details: []exceedsStockDetail{{
				ProductID: exceeds.ProductID,
				Available: exceeds.Available,
				InCart:    exceeds.InCart,
				Requested: exceeds.Requested,
				Remaining: exceeds.Remaining(),
			}},
		})
	case errors.As(err, &stock):
		details := make([]shortfallDetail, 0, len(stock.Shortfalls))
		for _, s := range stock.Shortfalls {
			details = append(details, shortfallDetail{ProductID: s.ProductID, Available: s.Available, Requested: s.Requested})
		}
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: stock.Error(), Code: "insufficient_stock", Details: details})
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: notFound.Error(), Code: "product_not_found", Details: notFound.ProductIDs})
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, "invalid_request", validation.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", "access denied")
	case errors.Is(err, domain.ErrDuplicate):
		respondError(w, http.StatusConflict, "duplicate", "resource already exists")
	case errors.Is(err, domain.ErrTransactionConflict):
		w.Header().Set("Retry-After", "1")
		respondError(w, http.StatusServiceUnavailable, "retry", "request conflicted with a concurrent update, retry")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		logging.FromContext(r.Context(), h.log).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON rejects unknown fields and bodies over maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return domain.NewValidationError("", "invalid JSON body: "+err.Error())
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "is not a valid id")
	}
	return id, nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, fmt.Sprintf("must be a positive integer, got %q", chi.URLParam(r, name)))
	}
	return id, nil
}
