package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbandrive-backend/internal/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{
			name:       "Validation",
			err:        &domain.ValidationError{Title: "Invalid Request", Message: "malformed JSON body"},
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Invalid Request",
		},
		{
			name:       "NotAllowed",
			err:        &domain.NotAllowedError{Title: "Agreement Already Checked Out", Message: "the vehicle has already been picked up"},
			wantStatus: http.StatusForbidden,
			wantTitle:  "Agreement Already Checked Out",
		},
		{
			name:       "NotFound",
			err:        domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
		},
		{
			name:       "WrappedNotFound",
			err:        fmt.Errorf("loading agreement: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
		},
		{
			name:       "CardDeclined",
			err:        &domain.CardDeclinedError{DeclineCode: "insufficient_funds", Message: "your card was declined"},
			wantStatus: http.StatusPaymentRequired,
			wantTitle:  "Card Declined",
		},
		{
			name:       "Gateway",
			err:        &domain.GatewayError{Operation: "authorize", Err: errors.New("connection reset")},
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Payment Error",
		},
		{
			name:       "PlanDateCorruption",
			err:        &domain.PlanDateParseError{RenterID: 7, Value: "bogus"},
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Error",
		},
		{
			name:       "Unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/agreements/42", nil)

			writeError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.wantTitle, body.Title)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_GatewayDetailDoesNotLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/agreements/42/checkout", nil)

	writeError(rec, req, &domain.GatewayError{Operation: "authorize", Err: errors.New("stripe: secret internals")})

	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotContains(t, body.Message, "stripe")
	assert.NotContains(t, body.Message, "internals")
}
