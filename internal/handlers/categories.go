package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
)

// GetCategories lists all trip categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(200, categories)
	}
}

// CategoryInput is the admin payload for creating or updating a category
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a new category (admin only)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		category := models.Category{
			Name:        input.Name,
			Slug:        input.Slug,
			Description: input.Description,
		}

		if err := db.Create(&category).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create category"})
			return
		}

		c.JSON(201, category)
	}
}

// UpdateCategory updates an existing category (admin only)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		category.Name = input.Name
		category.Slug = input.Slug
		category.Description = input.Description

		if err := db.Save(&category).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update category"})
			return
		}

		c.JSON(200, category)
	}
}

// DeleteCategory removes a category (admin only)
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Category{}, c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(200, gin.H{"message": "Category deleted"})
	}
}
