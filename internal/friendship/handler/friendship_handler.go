package handler

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tavo0132/nexo-backend-api/internal/auth/middleware"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/internal/friendship/domain"
	"github.com/tavo0132/nexo-backend-api/internal/friendship/dto"
	"github.com/tavo0132/nexo-backend-api/internal/friendship/service"
)

type FriendshipHandler struct {
	friendshipService *service.Service
	validate          *validator.Validate
}

func NewFriendshipHandler(friendshipService *service.Service) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipService: friendshipService,
		validate:          validator.New(),
	}
}

func (h *FriendshipHandler) List(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)

	status := domain.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          "invalid status filter",
			"valid_statuses": []domain.Status{domain.StatusPending, domain.StatusAccepted, domain.StatusRejected, domain.StatusRemoved},
		})
	}

	friendships, err := h.friendshipService.List(c.UserContext(), account.ID, status)
	if err != nil {
		return respondError(c, err)
	}

	filter := "none"
	if status != "" {
		filter = string(status)
	}

	return c.Status(fiber.StatusOK).JSON(dto.ListOutput{
		Friendships:   friendships,
		Count:         len(friendships),
		FilterApplied: filter,
	})
}

func (h *FriendshipHandler) Request(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)

	var input dto.RequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "to_user_uuid field is required",
		})
	}

	friendship, outcome, err := h.friendshipService.SendRequest(c.UserContext(), account.ID, input.ToUserUUID)
	if err != nil {
		return respondError(c, err)
	}

	out := dto.NewFriendshipOutput(friendship, account.ID)

	switch outcome {
	case service.OutcomeCreated:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "friend request sent",
			"friendship": out,
		})
	case service.OutcomeAlreadyPending:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":    "friend request already exists",
			"friendship": out,
		})
	case service.OutcomeReversePending:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":    "this user already sent you a friend request",
			"suggestion": "accept it using POST /friends/accept",
			"friendship": out,
		})
	case service.OutcomeAlreadyFriends:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":    "already friends",
			"friendship": out,
		})
	default: // OutcomeReopened
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":    "friend request sent",
			"friendship": out,
		})
	}
}

func (h *FriendshipHandler) Accept(c *fiber.Ctx) error {
	return h.decide(c, h.friendshipService.Accept, "friend request accepted")
}

func (h *FriendshipHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.friendshipService.Reject, "friend request rejected")
}

func (h *FriendshipHandler) decide(c *fiber.Ctx,
	op func(ctx context.Context, actorID, otherID string) (*domain.Friendship, error),
	message string) error {
	account := middleware.CurrentAccount(c)

	var input dto.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_uuid field is required",
		})
	}

	friendship, err := op(c.UserContext(), account.ID, input.UserUUID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    message,
		"friendship": dto.NewFriendshipOutput(friendship, account.ID),
	})
}

func (h *FriendshipHandler) Unfriend(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)

	var input dto.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_uuid field is required",
		})
	}

	friendship, removed, err := h.friendshipService.Unfriend(c.UserContext(), account.ID, input.UserUUID)
	if err != nil {
		return respondError(c, err)
	}

	out := dto.NewFriendshipOutput(friendship, account.ID)

	if !removed {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":    "friendship is already in state '" + out.Status + "', nothing changed",
			"friendship": out,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "friend removed",
		"friendship": out,
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
