package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/amrshakerr/editor_portfolio/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidReview is returned when a submitted review violates the field
// constraints. It never reaches the database.
var ErrInvalidReview = errors.New("invalid review: name (1-100 chars), rating (1-5) and comment (1-2000 chars) are required")

type ReviewInput struct {
	Name    string
	Rating  int
	Comment string
}

func validateReviewInput(input ReviewInput) error {
	name := strings.TrimSpace(input.Name)
	comment := strings.TrimSpace(input.Comment)

	// Bounds count characters, not bytes: Arabic text is two bytes per
	// letter and must get the full limit.
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return ErrInvalidReview
	}
	if input.Rating < 1 || input.Rating > 5 {
		return ErrInvalidReview
	}
	if comment == "" || utf8.RuneCountInString(comment) > 2000 {
		return ErrInvalidReview
	}
	return nil
}

// CreateReview stores a new review and returns it together with the freshly
// minted delete token. The token is the caller's only chance to capture the
// secret; only its hash is persisted.
func CreateReview(db *gorm.DB, input ReviewInput) (models.Review, string, error) {
	if err := validateReviewInput(input); err != nil {
		return models.Review{}, "", err
	}

	token, err := utils.GenerateDeleteToken()
	if err != nil {
		return models.Review{}, "", err
	}

	review := models.Review{
		Name:            strings.TrimSpace(input.Name),
		Rating:          input.Rating,
		Comment:         strings.TrimSpace(input.Comment),
		DeleteTokenHash: utils.HashDeleteToken(token),
	}

	if err := db.Create(&review).Error; err != nil {
		return models.Review{}, "", err
	}

	InvalidateRatingSummary()
	return review, token, nil
}

// UpdateReview rewrites a review's fields when the presented token matches.
// A missing row and a token mismatch both return (false, nil): callers must
// not be able to tell the two apart.
func UpdateReview(db *gorm.DB, id uuid.UUID, token string, input ReviewInput) (bool, error) {
	if err := validateReviewInput(input); err != nil {
		return false, err
	}

	authorized := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if !utils.VerifyDeleteToken(token, review.DeleteTokenHash) {
			return nil
		}

		review.Name = strings.TrimSpace(input.Name)
		review.Rating = input.Rating
		review.Comment = strings.TrimSpace(input.Comment)
		if err := tx.Save(&review).Error; err != nil {
			return err
		}

		authorized = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if authorized {
		InvalidateRatingSummary()
	}
	return authorized, nil
}

// DeleteReview removes a review when the presented token matches, with the
// same fails-closed contract as UpdateReview. The owner reply, if any, goes
// with it.
func DeleteReview(db *gorm.DB, id uuid.UUID, token string) (bool, error) {
	authorized := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if !utils.VerifyDeleteToken(token, review.DeleteTokenHash) {
			return nil
		}

		if err := tx.Where("review_id = ?", review.ID).Delete(&models.OwnerReply{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}

		authorized = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if authorized {
		InvalidateRatingSummary()
	}
	return authorized, nil
}

// RemoveReviewAsOwner is the moderation path: no token, any review.
func RemoveReviewAsOwner(db *gorm.DB, id uuid.UUID) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			return errors.New("review not found")
		}

		if err := tx.Where("review_id = ?", review.ID).Delete(&models.OwnerReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&review).Error
	})
	if err != nil {
		return err
	}

	// Invalidate only after commit so a concurrent recompute cannot cache
	// the pre-delete rows.
	InvalidateRatingSummary()
	return nil
}

// ListReviews returns every review newest first. The secondary id ordering
// keeps ties deterministic so clients can re-sort stably on top of it.
func ListReviews(db *gorm.DB) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reply").Order("created_at DESC, id").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListReviewsByRating orders by rating with the newest-first fetch order as
// the tie-break, so equal ratings keep their relative positions.
func ListReviewsByRating(db *gorm.DB, highestFirst bool) ([]models.Review, error) {
	direction := "ASC"
	if highestFirst {
		direction = "DESC"
	}

	var reviews []models.Review
	err := db.Preload("Reply").
		Order("rating " + direction).
		Order("created_at DESC, id").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
