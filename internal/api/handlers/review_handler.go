package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/St1cky1/marketplace-service/internal/api/middleware"
	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviewService *usecase.ReviewService
}

func NewReviewHandler(reviewService *usecase.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// отзыв по завершенной брони, по одному с каждой стороны
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req entity.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), p, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// отзывы, полученные пользователем
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user Id", http.StatusBadRequest)
		return
	}

	reviews, err := h.reviewService.ListForUser(r.Context(), userId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}
