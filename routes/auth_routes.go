package routes

import (
	"github.com/amrshakerr/editor_portfolio/handlers"
	"github.com/amrshakerr/editor_portfolio/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginOwner)
	auth.Get("/me", middleware.Protected(), handlers.GetMe)
}
