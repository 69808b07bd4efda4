package handlers

import (
	"errors"
	"fmt"

	config "github.com/amrshakerr/editor_portfolio/configs"
	"github.com/amrshakerr/editor_portfolio/database"
	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/amrshakerr/editor_portfolio/notifications"
	"github.com/amrshakerr/editor_portfolio/realtime"
	"github.com/amrshakerr/editor_portfolio/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

type UpdateReviewRequest struct {
	DeleteToken string `json:"delete_token" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"required,max=2000"`
}

type DeleteReviewRequest struct {
	DeleteToken string `json:"delete_token" validate:"required"`
}

func GetReviews(c *fiber.Ctx) error {
	// Fetch order is newest first; rating sorts keep that order as the
	// tie-break so equal ratings stay stable.
	var reviews []models.Review
	var err error
	switch c.Query("sort", "newest") {
	case "highest":
		reviews, err = services.ListReviewsByRating(database.DB, true)
	case "lowest":
		reviews, err = services.ListReviewsByRating(database.DB, false)
	default:
		reviews, err = services.ListReviews(database.DB)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	return c.JSON(reviews)
}

func CreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, token, err := services.CreateReview(database.DB, services.ReviewInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidReview) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	realtime.Publish("reviews")

	go notifications.SendEmail(
		config.Config("OWNER_FULL_NAME"),
		config.Config("OWNER_EMAIL"),
		"New review on your portfolio",
		fmt.Sprintf("<h1>New Review</h1><p><b>%s</b> left a %d-star review:</p><p>%s</p>", review.Name, review.Rating, review.Comment),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           review.ID,
		"delete_token": token,
		"created_at":   review.CreatedAt,
	})
}

// UpdateReview and DeleteReview answer an unauthorized request exactly like
// a request for a review that no longer exists. Guessing tokens must learn
// nothing.
func UpdateReview(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return reviewNotFound(c)
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ok, err := services.UpdateReview(database.DB, reviewID, req.DeleteToken, services.ReviewInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidReview) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update review"})
	}
	if !ok {
		return reviewNotFound(c)
	}

	realtime.Publish("reviews")
	return c.JSON(fiber.Map{"success": true})
}

func DeleteReview(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return reviewNotFound(c)
	}

	var req DeleteReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ok, err := services.DeleteReview(database.DB, reviewID, req.DeleteToken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete review"})
	}
	if !ok {
		return reviewNotFound(c)
	}

	realtime.Publish("reviews")
	return c.JSON(fiber.Map{"success": true})
}

func GetRatingSummary(c *fiber.Ctx) error {
	summary, err := services.GetRatingSummary(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute rating summary"})
	}
	return c.JSON(summary)
}

// OwnerDeleteReview is the moderation path: the owner session replaces the
// delete token.
func OwnerDeleteReview(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return reviewNotFound(c)
	}

	if err := services.RemoveReviewAsOwner(database.DB, reviewID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	realtime.Publish("reviews")
	return c.SendStatus(fiber.StatusNoContent)
}

func reviewNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
}
