package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tavo0132/nexo-backend-api/internal/auth/middleware"
)

func RegisterRoutes(app *fiber.App, h *UserHandler, gate *middleware.AuthMiddleware) {
	users := app.Group("/users", gate.RequireAuth())
	users.Get("/me", h.Me)
	users.Patch("/me", h.UpdateMe)
	users.Patch("/me/avatar", h.UpdateAvatar)
	users.Get("/search", h.Search)
	users.Get("/:uuid", h.GetByID)
}
