package http

import (
	"context"
	"net/http"
	"strings"

	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/security"
)

type contextKey string

const renterIDKey contextKey = "renter_id"

// AuthTokenHeader carries the rotated bearer token on every authenticated
// response, including error responses such as card declines.
const AuthTokenHeader = "X-Auth-Token"

// AuthMiddleware verifies the bearer token, rotates it, and stashes the
// authenticated renter id in the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Title:   "Unauthorized",
				Message: "missing bearer token",
			})
			return
		}

		claims, err := m.tokens.Verify(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Title:   "Unauthorized",
				Message: "invalid or expired token",
			})
			return
		}

		// Rotate before the handler runs so the fresh token rides along
		// even when the handler fails.
		rotated, err := m.tokens.Extend(claims)
		if err != nil {
			logger.Error("token rotation failed", "renter_id", claims.RenterID, "error", err)
		} else {
			w.Header().Set(AuthTokenHeader, rotated)
		}

		ctx := context.WithValue(r.Context(), renterIDKey, claims.RenterID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get(AuthTokenHeader)
}

// renterIDFromContext returns the authenticated renter id set by the
// middleware. Zero means the request skipped authentication.
func renterIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(renterIDKey).(int64)
	return id
}
