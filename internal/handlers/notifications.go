package handlers

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/internal/services"
)

// RegisterFCMToken registers or updates a user's FCM token
func RegisterFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			FCMToken string `json:"fcmToken" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", input.FCMToken).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to register FCM token"})
			return
		}

		// Subscribe to the promotions topic unless the user opted out
		var prefs models.NotificationPreference
		if err := db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
			prefs = *models.DefaultPreferences(userID)
		}

		if prefs.PushEnabled && prefs.PromotionalMessages {
			ctx := context.Background()
			if err := services.SubscribeToTopic(ctx, []string{input.FCMToken}, "promotions"); err != nil {
				c.JSON(200, gin.H{
					"message": "FCM token registered successfully, but topic subscription failed",
					"warning": err.Error(),
				})
				return
			}
		}

		c.JSON(200, gin.H{"message": "FCM token registered successfully"})
	}
}

// RemoveFCMToken removes a user's FCM token
func RemoveFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get user information"})
			return
		}

		if user.FCMToken != "" {
			ctx := context.Background()
			// Token cleanup proceeds even if the unsubscribe fails
			if err := services.UnsubscribeFromTopic(ctx, []string{user.FCMToken}, "promotions"); err != nil {
				log.Printf("Failed to unsubscribe token from promotions: %v", err)
			}
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", "").Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to remove FCM token"})
			return
		}

		c.JSON(200, gin.H{"message": "FCM token removed successfully"})
	}
}

// SendPromotionInput is the admin payload for a promotional push
type SendPromotionInput struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// SendPromotion broadcasts a promotional push to every opted-in traveler
// (admin only)
func SendPromotion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendPromotionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Users with tokens whose preferences allow promotional pushes
		var users []models.User
		if err := db.
			Joins("LEFT JOIN notification_preferences np ON np.user_id = users.id").
			Where("users.fcm_token != ?", "").
			Where("np.id IS NULL OR (np.push_enabled = ? AND np.promotional_messages = ?)", true, true).
			Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch user tokens"})
			return
		}

		if len(users) == 0 {
			c.JSON(400, gin.H{"error": "No users with FCM tokens found"})
			return
		}

		tokens := make([]string, 0, len(users))
		for _, u := range users {
			tokens = append(tokens, u.FCMToken)
		}

		ctx := context.Background()
		response, err := services.SendPromotionNotification(ctx, tokens, input.Title, input.Body, input.ImageURL)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to send promotion", "details": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"message":      "Promotion sent successfully",
			"successCount": response.SuccessCount,
			"failureCount": response.FailureCount,
			"totalTokens":  len(tokens),
		})
	}
}

// TestNotification sends a test notification to the current user
func TestNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get user information"})
			return
		}

		if user.FCMToken == "" {
			c.JSON(400, gin.H{"error": "No FCM token registered for this user"})
			return
		}

		ctx := context.Background()
		payload := services.NotificationPayload{
			Title: "Test Notification",
			Body:  "This is a test notification from Wanderly",
			Data: map[string]interface{}{
				"type":   "test",
				"userId": userID,
			},
		}

		if err := services.SendNotificationToToken(ctx, user.FCMToken, payload); err != nil {
			c.JSON(500, gin.H{"error": "Failed to send test notification", "details": err.Error()})
			return
		}

		c.JSON(200, gin.H{"message": "Test notification sent successfully"})
	}
}
