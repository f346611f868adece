package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/pkg/utils"
)

// ContactInput is the public contact form payload
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// CreateContactMessage stores a contact form submission and sends an
// acknowledgement email, best-effort
func CreateContactMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		message := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Body:    input.Body,
		}

		if err := db.Create(&message).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to send message"})
			return
		}

		go func() {
			if err := utils.SendContactAcknowledgementEmail(message.Email, message.Name); err != nil {
				log.Printf("Failed to send contact acknowledgement to %s: %v", message.Email, err)
			}
		}()

		c.JSON(201, gin.H{"message": "Message received. We'll get back to you soon."})
	}
}

// GetContactMessages lists contact messages for the back office (admin only)
func GetContactMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var messages []models.ContactMessage
		query := db.Order("created_at DESC")
		if c.Query("unread") == "true" {
			query = query.Where("is_read = ?", false)
		}
		if err := query.Find(&messages).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(200, messages)
	}
}

// MarkContactMessageRead marks a contact message as handled (admin only)
func MarkContactMessageRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var message models.ContactMessage
		if err := db.First(&message, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Message not found"})
			return
		}

		if err := db.Model(&message).Update("is_read", true).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update message"})
			return
		}
		c.JSON(200, gin.H{"message": "Marked as read"})
	}
}
