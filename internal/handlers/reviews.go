package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
)

// parseItemRef reads and validates the itemType/itemId pair used by reviews
// and comments.
func parseItemRef(c *gin.Context, itemType string, itemID uint) (models.ItemType, bool) {
	switch models.ItemType(itemType) {
	case models.ItemTypeTrip, models.ItemTypeHotel:
	default:
		c.JSON(400, gin.H{"error": "itemType must be 'trip' or 'hotel'"})
		return "", false
	}
	if itemID == 0 {
		c.JSON(400, gin.H{"error": "itemId is required"})
		return "", false
	}
	return models.ItemType(itemType), true
}

// reviewSummary computes the average rating and review count for an item.
func reviewSummary(db *gorm.DB, itemType models.ItemType, itemID uint) (float64, int64) {
	var result struct {
		Avg   float64
		Count int64
	}
	db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Scan(&result)
	return result.Avg, result.Count
}

// GetReviews lists reviews for a trip or hotel
func GetReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query struct {
			ItemType string `form:"itemType" binding:"required"`
			ItemID   uint   `form:"itemId" binding:"required"`
		}
		if err := c.ShouldBindQuery(&query); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		itemType, ok := parseItemRef(c, query.ItemType, query.ItemID)
		if !ok {
			return
		}

		var reviews []models.Review
		if err := db.Preload("User").
			Where("item_type = ? AND item_id = ?", itemType, query.ItemID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		avg, count := reviewSummary(db, itemType, query.ItemID)
		c.JSON(200, gin.H{
			"reviews":       reviews,
			"averageRating": avg,
			"reviewCount":   count,
		})
	}
}

// ReviewInput is the payload for posting a review
type ReviewInput struct {
	ItemType string `json:"itemType" binding:"required"`
	ItemID   uint   `json:"itemId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// CreateReview posts a review; one review per user per item, later posts
// update the earlier one
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		itemType, ok := parseItemRef(c, input.ItemType, input.ItemID)
		if !ok {
			return
		}

		if !itemExists(db, itemType, input.ItemID) {
			c.JSON(404, gin.H{"error": "Item not found"})
			return
		}

		var review models.Review
		err := db.Where("user_id = ? AND item_type = ? AND item_id = ?",
			userId, itemType, input.ItemID).First(&review).Error
		created := false
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{UserID: userId, ItemType: itemType, ItemID: input.ItemID}
			created = true
		case err != nil:
			c.JSON(500, gin.H{"error": "Failed to save review"})
			return
		}

		review.Rating = input.Rating
		review.Title = input.Title
		review.Body = input.Body

		if err := db.Save(&review).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save review"})
			return
		}

		status := 200
		if created {
			status = 201
		}
		c.JSON(status, review)
	}
}

// DeleteReview removes the caller's own review
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var review models.Review
		if err := db.First(&review, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Review not found"})
			return
		}
		if review.UserID != userId {
			c.JSON(403, gin.H{"error": "You can only delete your own reviews"})
			return
		}

		if err := db.Delete(&review).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete review"})
			return
		}
		c.JSON(200, gin.H{"message": "Review deleted"})
	}
}

func itemExists(db *gorm.DB, itemType models.ItemType, itemID uint) bool {
	var count int64
	switch itemType {
	case models.ItemTypeTrip:
		db.Model(&models.Trip{}).Where("id = ?", itemID).Count(&count)
	case models.ItemTypeHotel:
		db.Model(&models.Hotel{}).Where("id = ?", itemID).Count(&count)
	}
	return count > 0
}
