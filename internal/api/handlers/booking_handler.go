package handlers

import (
	"net/http"
	"strconv"

	"github.com/St1cky1/marketplace-service/internal/api/middleware"
	"github.com/St1cky1/marketplace-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	bookingService *usecase.BookingService
}

func NewBookingHandler(bookingService *usecase.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// исполнитель начинает работу: бронь in_progress, задача in_progress
func (h *BookingHandler) StartBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookingId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid booking Id", http.StatusBadRequest)
		return
	}

	booking, err := h.bookingService.Start(r.Context(), p, bookingId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookingId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid booking Id", http.StatusBadRequest)
		return
	}

	booking, err := h.bookingService.Complete(r.Context(), p, bookingId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := h.bookingService.ListActive(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}
