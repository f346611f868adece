package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
)

// GetNotificationPreferences returns the caller's notification preferences,
// creating the default row on first access
func GetNotificationPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var prefs models.NotificationPreference
		err := db.Where("user_id = ?", userID).First(&prefs).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			prefs = *models.DefaultPreferences(userID)
			if err := db.Create(&prefs).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to create notification preferences"})
				return
			}
		} else if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notification preferences"})
			return
		}

		c.JSON(200, prefs)
	}
}

// UpdateNotificationPreferencesInput patches preference toggles; nil fields
// are left untouched
type UpdateNotificationPreferencesInput struct {
	PushEnabled         *bool `json:"pushEnabled"`
	BookingAlerts       *bool `json:"bookingAlerts"`
	PromotionalMessages *bool `json:"promotionalMessages"`
	EmailEnabled        *bool `json:"emailEnabled"`
	SMSEnabled          *bool `json:"smsEnabled"`
}

// UpdateNotificationPreferences updates the caller's notification toggles
func UpdateNotificationPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input UpdateNotificationPreferencesInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var prefs models.NotificationPreference
		err := db.Where("user_id = ?", userID).First(&prefs).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			prefs = *models.DefaultPreferences(userID)
		} else if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notification preferences"})
			return
		}

		if input.PushEnabled != nil {
			prefs.PushEnabled = *input.PushEnabled
		}
		if input.BookingAlerts != nil {
			prefs.BookingAlerts = *input.BookingAlerts
		}
		if input.PromotionalMessages != nil {
			prefs.PromotionalMessages = *input.PromotionalMessages
		}
		if input.EmailEnabled != nil {
			prefs.EmailEnabled = *input.EmailEnabled
		}
		if input.SMSEnabled != nil {
			prefs.SMSEnabled = *input.SMSEnabled
		}

		if err := db.Save(&prefs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update notification preferences"})
			return
		}

		c.JSON(200, prefs)
	}
}
