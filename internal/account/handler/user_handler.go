package handler

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tavo0132/nexo-backend-api/internal/account/dto"
	"github.com/tavo0132/nexo-backend-api/internal/account/service"
	"github.com/tavo0132/nexo-backend-api/internal/auth/middleware"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
)

type UserHandler struct {
	accountService *service.Service
	maxAvatarBytes int64
}

func NewUserHandler(accountService *service.Service, maxAvatarBytes int64) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		maxAvatarBytes: maxAvatarBytes,
	}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)
	return c.Status(fiber.StatusOK).JSON(dto.NewProfileOutput(account))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)

	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	updated, err := h.accountService.UpdateProfile(c.UserContext(), account, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "profile updated",
		"user":    dto.NewProfileOutput(updated),
	})
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "provide an image file in the 'avatar' field",
		})
	}

	// Bound resource usage before reading the upload into memory.
	if fileHeader.Size > h.maxAvatarBytes {
		return respondError(c, apperrors.ErrAvatarTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, err)
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)

	avatarURL, err := h.accountService.UpdateAvatar(c.UserContext(), account, data,
		fileHeader.Filename, contentType)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "avatar updated",
		"avatar_url": avatarURL,
	})
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	account, err := h.accountService.GetByID(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewPublicProfileOutput(account))
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	result, err := h.accountService.Search(c.UserContext(), c.Query("q"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("error: %v", err)
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
