package routes

import (
	"github.com/amrshakerr/editor_portfolio/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews")
	reviews.Get("", handlers.GetReviews)
	reviews.Get("/summary", handlers.GetRatingSummary)
	reviews.Post("", handlers.CreateReview)
	reviews.Put("/:reviewId", handlers.UpdateReview)
	reviews.Delete("/:reviewId", handlers.DeleteReview)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeRealtime))
}
