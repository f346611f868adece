package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderly/wanderly-backend/internal/services"
)

// UploadPhoto stores a catalog photo in S3 or local storage and returns its
// URL (admin only)
func UploadPhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
			return
		}

		folder := c.DefaultPostForm("folder", "photos")
		if folder != "photos" && folder != "trips" && folder != "hotels" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder"})
			return
		}

		imageURL, err := services.UploadImage(file, folder)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to upload photo",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"url": services.GetImageURL(imageURL),
		})
	}
}
