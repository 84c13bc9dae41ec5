package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	accountdomain "github.com/tavo0132/nexo-backend-api/internal/account/domain"
	"github.com/tavo0132/nexo-backend-api/internal/auth/service"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
)

const principalKey = "currentAccount"

// AuthMiddleware is the access gate: it turns a bearer token into a live
// account before any protected handler runs.
type AuthMiddleware struct {
	tokens   service.TokenManager
	accounts accountdomain.Repository
}

func New(tokens service.TokenManager, accounts accountdomain.Repository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts}
}

// RequireAuth validates the Authorization header, resolves the token subject
// to an existing active account and stores it for the wrapped handler. On
// any failure the wrapped handler is never invoked.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return unauthorized(c, err)
		}

		accountID, err := m.tokens.Validate(token)
		if err != nil {
			return unauthorized(c, err)
		}

		// A signature-valid token whose account no longer exists (or was
		// deactivated) is still rejected.
		account, err := m.accounts.FindByID(c.UserContext(), accountID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
		if account == nil || !account.IsActive {
			return unauthorized(c, apperrors.ErrTokenInvalid)
		}

		c.Locals(principalKey, account)
		return c.Next()
	}
}

// CurrentAccount returns the principal resolved by RequireAuth. It panics if
// called from a handler that is not behind the gate, which is a programming
// error.
func CurrentAccount(c *fiber.Ctx) *accountdomain.Account {
	account, ok := c.Locals(principalKey).(*accountdomain.Account)
	if !ok {
		panic("middleware: handler requires RequireAuth")
	}
	return account
}

// BearerToken enforces the exact "Bearer <token>" shape; the scheme is
// case-insensitive.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.ErrMalformedAuthHeader
	}

	return strings.TrimSpace(parts[1]), nil
}

func unauthorized(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": err.Error(),
	})
}
