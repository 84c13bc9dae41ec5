package handler

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tavo0132/nexo-backend-api/internal/auth/dto"
	"github.com/tavo0132/nexo-backend-api/internal/auth/middleware"
	"github.com/tavo0132/nexo-backend-api/internal/auth/service"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or malformed fields: " + err.Error(),
		})
	}

	account, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterOutput{
		UserUUID: account.ID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username and password are required",
		})
	}

	token, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.TokenResponse{AccessToken: token})
}

// Logout is advisory; there is no revocation store, so it only confirms the
// presented token is still valid.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, err := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return respondError(c, err)
	}

	if err := h.authService.Logout(token); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "session closed",
	})
}

func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("error: %v", err)
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
