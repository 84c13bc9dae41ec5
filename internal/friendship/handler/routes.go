package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tavo0132/nexo-backend-api/internal/auth/middleware"
)

func RegisterRoutes(app *fiber.App, h *FriendshipHandler, gate *middleware.AuthMiddleware) {
	friends := app.Group("/friends", gate.RequireAuth())
	friends.Get("", h.List)
	friends.Post("/request", h.Request)
	friends.Post("/accept", h.Accept)
	friends.Post("/reject", h.Reject)
	friends.Post("/unfriend", h.Unfriend)
}
