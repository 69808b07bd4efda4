package handlers

import (
	"errors"

	"github.com/amrshakerr/editor_portfolio/database"
	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/amrshakerr/editor_portfolio/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReplyRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// CreateReply attaches the owner's reply to a review. One reply per review;
// posting again overwrites through UpdateReply instead.
func CreateReply(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return reviewNotFound(c)
	}

	var req ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var reply models.OwnerReply
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			return errors.New("review not found")
		}

		var existing models.OwnerReply
		if err := tx.Where("review_id = ?", reviewID).First(&existing).Error; err == nil {
			return errors.New("a reply for this review already exists")
		}

		reply = models.OwnerReply{
			ReviewID: reviewID,
			Body:     req.Body,
		}
		return tx.Create(&reply).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	realtime.Publish("owner_replies")
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func UpdateReply(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return reviewNotFound(c)
	}

	var req ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var reply models.OwnerReply
	if err := database.DB.Where("review_id = ?", reviewID).First(&reply).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reply not found"})
	}

	reply.Body = req.Body
	if err := database.DB.Save(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update reply"})
	}

	realtime.Publish("owner_replies")
	return c.JSON(reply)
}

func DeleteReply(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return reviewNotFound(c)
	}

	var reply models.OwnerReply
	if err := database.DB.Where("review_id = ?", reviewID).First(&reply).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reply not found"})
	}

	if err := database.DB.Delete(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reply"})
	}

	realtime.Publish("owner_replies")
	return c.SendStatus(fiber.StatusNoContent)
}
