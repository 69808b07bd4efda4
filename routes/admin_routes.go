package routes

import (
	"github.com/amrshakerr/editor_portfolio/handlers"
	"github.com/amrshakerr/editor_portfolio/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.OwnerRequired())

	reviews := admin.Group("/reviews")
	reviews.Delete("/:reviewId", handlers.OwnerDeleteReview)
	reviews.Post("/:reviewId/reply", handlers.CreateReply)
	reviews.Put("/:reviewId/reply", handlers.UpdateReply)
	reviews.Delete("/:reviewId/reply", handlers.DeleteReply)

	projects := admin.Group("/projects")
	projects.Post("", handlers.CreateProject)
	projects.Put("/:projectId", handlers.UpdateProject)
	projects.Delete("/:projectId", handlers.DeleteProject)
}
