package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
)

// GetComments lists the comment thread for a trip or hotel. When the caller
// is authenticated, likedByMe is filled in for each comment.
func GetComments(db *gorm.DB) gin.HandlerFunc {
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

		var comments []models.Comment
		if err := db.Preload("User").Preload("Likes").
			Where("item_type = ? AND item_id = ?", itemType, query.ItemID).
			Order("created_at ASC").Find(&comments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch comments"})
			return
		}

		userId := c.GetUint("userId")
		for i := range comments {
			comments[i].LikeCount = len(comments[i].Likes)
			if userId != 0 {
				for _, like := range comments[i].Likes {
					if like.UserID == userId {
						comments[i].LikedByMe = true
						break
					}
				}
			}
		}

		c.JSON(200, comments)
	}
}

// CommentInput is the payload for posting a comment
type CommentInput struct {
	ItemType string `json:"itemType" binding:"required"`
	ItemID   uint   `json:"itemId" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

// CreateComment posts a comment on a trip or hotel
func CreateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input CommentInput
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

		comment := models.Comment{
			UserID:   userId,
			ItemType: itemType,
			ItemID:   input.ItemID,
			Body:     input.Body,
		}

		if err := db.Create(&comment).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create comment"})
			return
		}

		db.Preload("User").First(&comment, comment.ID)
		c.JSON(201, comment)
	}
}

// ToggleCommentLike likes a comment, or removes the like if it already exists
func ToggleCommentLike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var comment models.Comment
		if err := db.First(&comment, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Comment not found"})
			return
		}

		var like models.CommentLike
		err := db.Where("comment_id = ? AND user_id = ?", comment.ID, userId).First(&like).Error
		liked := false
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.CommentLike{CommentID: comment.ID, UserID: userId}
			if err := db.Create(&like).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to like comment"})
				return
			}
			liked = true
		case err != nil:
			c.JSON(500, gin.H{"error": "Failed to like comment"})
			return
		default:
			if err := db.Unscoped().Delete(&like).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to unlike comment"})
				return
			}
		}

		var count int64
		db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&count)

		c.JSON(200, gin.H{
			"commentId": comment.ID,
			"liked":     liked,
			"likeCount": count,
		})
	}
}

// DeleteComment removes the caller's own comment
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var comment models.Comment
		if err := db.First(&comment, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Comment not found"})
			return
		}
		if comment.UserID != userId {
			c.JSON(403, gin.H{"error": "You can only delete your own comments"})
			return
		}

		if err := db.Delete(&comment).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete comment"})
			return
		}
		c.JSON(200, gin.H{"message": "Comment deleted"})
	}
}
