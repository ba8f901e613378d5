// Package security implements the bearer-token contract the API middleware
// consumes: verify an inbound token and mint the rotated replacement that is
// echoed back on every authenticated response. Token issuance at login lives
// in the accounts system, not here.
package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// RenterClaims defines the claims carried by a renter session token
type RenterClaims struct {
	RenterID int64 `json:"renter_id"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	// Verify parses and validates a bearer token, returning its claims.
	Verify(tokenString string) (*RenterClaims, error)
	// Extend mints a fresh token with the same identity and a renewed
	// expiry. Called on every authenticated request so the session slides.
	Extend(claims *RenterClaims) (string, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (m *tokenManager) Verify(tokenString string) (*RenterClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RenterClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*RenterClaims); ok && token.Valid {
		if claims.RenterID == 0 && claims.Subject != "" {
			rid, _ := strconv.ParseInt(claims.Subject, 10, 64)
			claims.RenterID = rid
		}
		if claims.RenterID == 0 {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (m *tokenManager) Extend(claims *RenterClaims) (string, error) {
	now := time.Now()
	next := RenterClaims{
		RenterID: claims.RenterID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.RenterID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "urbandrive",
			Audience:  jwt.ClaimStrings{"api-access"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, next)
	return token.SignedString(m.secret)
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
