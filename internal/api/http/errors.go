package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/logger"
)

type errorResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// writeError maps the domain error taxonomy to HTTP statuses. Client-safe
// detail goes out verbatim; gateway internals and repository failures are
// reduced to a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		notAllowedErr *domain.NotAllowedError
		declinedErr   *domain.CardDeclinedError
		gatewayErr    *domain.GatewayError
		planDateErr   *domain.PlanDateParseError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Title:   validationErr.Title,
			Message: validationErr.Message,
		})
	case errors.As(err, &notAllowedErr):
		writeJSON(w, http.StatusForbidden, errorResponse{
			Title:   notAllowedErr.Title,
			Message: notAllowedErr.Message,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Title:   "Not Found",
			Message: "the requested resource does not exist",
		})
	case errors.As(err, &declinedErr):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{
			Title:   "Card Declined",
			Message: declinedErr.Message,
		})
	case errors.As(err, &gatewayErr):
		logger.ErrorContext(r.Context(), "payment gateway failure", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Title:   "Payment Error",
			Message: "we could not process the payment, please try again later",
		})
	case errors.As(err, &planDateErr):
		logger.ErrorContext(r.Context(), "malformed plan renewal date", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Title:   "Internal Error",
			Message: "something went wrong, please contact support",
		})
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Title:   "Internal Error",
			Message: "something went wrong, please try again later",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("encoding response failed", "error", err)
	}
}
