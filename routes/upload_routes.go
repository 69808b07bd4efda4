package routes

import (
	"github.com/amrshakerr/editor_portfolio/handlers"
	"github.com/amrshakerr/editor_portfolio/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected(), middleware.OwnerRequired())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
