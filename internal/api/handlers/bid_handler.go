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

type BidHandler struct {
	bidEngine *usecase.BidEngine
}

func NewBidHandler(bidEngine *usecase.BidEngine) *BidHandler {
	return &BidHandler{
		bidEngine: bidEngine,
	}
}

// исполнитель подает ставку на открытую задачу
func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req entity.SubmitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	bid, err := h.bidEngine.SubmitBid(r.Context(), p, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bid)
}

func (h *BidHandler) WithdrawBid(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bidId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid bid Id", http.StatusBadRequest)
		return
	}

	bid, err := h.bidEngine.WithdrawBid(r.Context(), p, bidId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bid)
}

// принимаем ставку: задача assigned, остальные pending ставки rejected, создается бронь
func (h *BidHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bidId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid bid Id", http.StatusBadRequest)
		return
	}

	result, err := h.bidEngine.AcceptBid(r.Context(), p, bidId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *BidHandler) RejectBid(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bidId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid bid Id", http.StatusBadRequest)
		return
	}

	bid, err := h.bidEngine.RejectBid(r.Context(), p, bidId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bid)
}

// pending ставки: для исполнителя свои, для клиента по его задачам
func (h *BidHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bids, err := h.bidEngine.ListPending(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bids)
}
