package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/St1cky1/marketplace-service/internal/entity"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError мапит доменные ошибки на HTTP статусы
func respondError(w http.ResponseWriter, err error) {
	var validationErr *entity.ValidationError
	var transitionErr *entity.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, entity.ErrNoFieldsToUpdate):
		http.Error(w, "no fields to update", http.StatusBadRequest)
	case errors.Is(err, entity.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, entity.ErrUserNotActive):
		http.Error(w, "user is not active", http.StatusForbidden)
	case errors.Is(err, entity.ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, entity.ErrTaskNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	case errors.Is(err, entity.ErrBidNotFound):
		http.Error(w, "bid not found", http.StatusNotFound)
	case errors.Is(err, entity.ErrBookingNotFound):
		http.Error(w, "booking not found", http.StatusNotFound)
	case errors.Is(err, entity.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.As(err, &transitionErr):
		http.Error(w, transitionErr.Error(), http.StatusConflict)
	case errors.Is(err, entity.ErrInvalidState):
		http.Error(w, "invalid entity state", http.StatusConflict)
	case errors.Is(err, entity.ErrDuplicateBid):
		http.Error(w, "pending bid already exists", http.StatusConflict)
	case errors.Is(err, entity.ErrDuplicateReview):
		http.Error(w, "review already exists", http.StatusConflict)
	case errors.Is(err, entity.ErrEmailTaken):
		http.Error(w, "email already registered", http.StatusConflict)
	case errors.Is(err, entity.ErrUnavailable):
		http.Error(w, "service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
