package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func signToken(t *testing.T, secret string, claims RenterClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenManager_VerifyExtendRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 30*time.Minute)

	signed, err := manager.Extend(&RenterClaims{RenterID: 7})
	require.NoError(t, err)

	claims, err := manager.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.RenterID)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "urbandrive", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(29*time.Minute)))
}

func TestTokenManager_VerifyExpiredToken(t *testing.T) {
	manager := NewTokenManager(testSecret, 30*time.Minute)

	signed := signToken(t, testSecret, RenterClaims{
		RenterID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * time.Minute)),
		},
	})

	_, err := manager.Verify(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_VerifyInvalidTokens(t *testing.T) {
	manager := NewTokenManager(testSecret, 30*time.Minute)

	t.Run("Garbage", func(t *testing.T) {
		_, err := manager.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		signed := signToken(t, "some-other-secret", RenterClaims{
			RenterID: 7,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			},
		})

		_, err := manager.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingRenterIdentity", func(t *testing.T) {
		signed := signToken(t, testSecret, RenterClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			},
		})

		_, err := manager.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenManager_VerifyFallsBackToSubject(t *testing.T) {
	manager := NewTokenManager(testSecret, 30*time.Minute)

	signed := signToken(t, testSecret, RenterClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "12",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		},
	})

	claims, err := manager.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.RenterID)
}

func TestTokenManager_ExtendRotatesToken(t *testing.T) {
	manager := NewTokenManager(testSecret, 30*time.Minute)

	first, err := manager.Extend(&RenterClaims{RenterID: 7})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := manager.Extend(&RenterClaims{RenterID: 7})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	claims, err := manager.Verify(second)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.RenterID)
}
