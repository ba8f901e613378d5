package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"urbandrive-backend/internal/service"
)

// RewardHandler exposes the renter's weekly free-hour balance
type RewardHandler struct {
	rewards service.RewardService
}

func NewRewardHandler(rewards service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

func (h *RewardHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.rewards.GetBalance(r.Context(), renterIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (h *RewardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rewards/balance", h.Balance).Methods(http.MethodGet)
}
