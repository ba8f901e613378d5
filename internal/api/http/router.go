// Package http wires the JSON API: a gorilla/mux router with bearer-token
// middleware, thin handlers delegating to the service layer, and a single
// error mapper for the domain taxonomy.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"urbandrive-backend/internal/security"
	"urbandrive-backend/internal/service"
)

// NewRouter builds the full route table. Everything under /v1 requires a
// valid bearer token; /healthz does not.
func NewRouter(agreements service.AgreementService, rewards service.RewardService, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	auth := NewAuthMiddleware(tokens)
	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Use(auth.Handler)

	NewAgreementHandler(agreements).RegisterRoutes(v1)
	NewRewardHandler(rewards).RegisterRoutes(v1)

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
