package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Bingusala/rosy-glow/internal/cart"
	"github.com/Bingusala/rosy-glow/internal/catalog"
	"github.com/Bingusala/rosy-glow/internal/checkout"
	"github.com/Bingusala/rosy-glow/internal/inventory"
	"github.com/Bingusala/rosy-glow/internal/orders"
	"github.com/Bingusala/rosy-glow/internal/users"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError converts the service error taxonomy into HTTP responses
// specific enough for an actionable client message.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, inventory.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, inventory.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, checkout.ErrInvalidStatus),
		errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, orders.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
