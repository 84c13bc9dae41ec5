package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

const testSecret = "test-secret-key-123"

func TestTokenService_IssueAndValidate(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	ts := NewTokenService(testSecret, 60, clock.Fixed{Instant: now})

	token, err := ts.Issue("account-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", accountID)

	// Inspect the claims directly.
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(60*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

// A token with TTL 60 minutes validates right before expiry and fails with a
// distinct expiry error right after.
func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	issuer := NewTokenService(testSecret, 60, clock.Fixed{Instant: issuedAt})
	token, err := issuer.Issue("account-123")
	require.NoError(t, err)

	beforeExpiry := NewTokenService(testSecret, 60, clock.Fixed{Instant: issuedAt.Add(59 * time.Minute)})
	_, err = beforeExpiry.Validate(token)
	assert.NoError(t, err)

	afterExpiry := NewTokenService(testSecret, 60, clock.Fixed{Instant: issuedAt.Add(61 * time.Minute)})
	_, err = afterExpiry.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenService_Validate_Failures(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	ts := NewTokenService(testSecret, 60, clock.Fixed{Instant: now})

	t.Run("blank token", func(t *testing.T) {
		_, err := ts.Validate("")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

		_, err = ts.Validate("   ")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := ts.Validate("not.a.jwt")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("wrong signature", func(t *testing.T) {
		other := NewTokenService("a-different-secret", 60, clock.Fixed{Instant: now})
		token, err := other.Issue("account-123")
		require.NoError(t, err)

		_, err = ts.Validate(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("wrong token type", func(t *testing.T) {
		claims := AccessClaims{
			Type: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-123",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ts.Validate(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenWrongType)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := AccessClaims{
			Type: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ts.Validate(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenMissingSubject)
	})

	t.Run("unexpected signing algorithm", func(t *testing.T) {
		// alg=none tokens must never validate.
		claims := AccessClaims{
			Type: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-123",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ts.Validate(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}
