package service

//go:generate mockgen -destination=../../mocks/mock_token_manager.go -package=mocks github.com/tavo0132/nexo-backend-api/internal/auth/service TokenManager

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

const accessTokenType = "access"

type TokenManager interface {
	Issue(accountID string) (string, error)
	// Validate returns the subject account id of a well-formed, correctly
	// signed, unexpired access token.
	Validate(tokenString string) (string, error)
}

// TokenService issues and validates self-contained HS256 bearer tokens.
// There is no revocation list; validity is purely signature plus clock.
type TokenService struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

type AccessClaims struct {
	jwt.RegisteredClaims
	Type string `json:"typ"`
}

func NewTokenService(secret string, expiryMinutes int, clk clock.Clock) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
		clock:  clk,
	}
}

func (ts *TokenService) Issue(accountID string) (string, error) {
	now := ts.clock.Now()

	claims := AccessClaims{
		Type: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, nil
}

func (ts *TokenService) Validate(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", apperrors.ErrTokenInvalid
	}

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrTokenInvalid
	}

	if !token.Valid {
		return "", apperrors.ErrTokenInvalid
	}

	if claims.Type != accessTokenType {
		return "", apperrors.ErrTokenWrongType
	}

	if claims.Subject == "" {
		return "", apperrors.ErrTokenMissingSubject
	}

	return claims.Subject, nil
}
