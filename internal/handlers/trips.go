package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
)

// tripResponse flattens a trip row for API responses, resolving price and
// duration through the normalization boundary once, at fetch time.
func tripResponse(trip *models.Trip) gin.H {
	resp := gin.H{
		"id":              trip.ID,
		"slug":            trip.Slug,
		"title":           trip.Title,
		"destination":     trip.Destination,
		"description":     trip.Description,
		"durationDays":    trip.Duration(),
		"maxParticipants": trip.MaxParticipants,
		"price":           trip.PerPersonPrice(),
		"isPublished":     trip.IsPublished,
		"itinerary":       trip.ItineraryDays(),
		"photos":          trip.PhotoURLs(),
	}
	if trip.Category != nil {
		resp["category"] = trip.Category
	}
	if trip.NextDeparture != nil {
		resp["nextDeparture"] = trip.NextDeparture.Format("2006-01-02")
	}
	return resp
}

// GetTrips retrieves all published trips with optional search filters
func GetTrips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		destination := c.Query("destination")
		category := c.Query("category")
		search := c.Query("q")

		var trips []models.Trip
		query := db.Preload("Category").Where("trips.is_published = ?", true)

		if destination != "" {
			query = query.Where("LOWER(trips.destination) LIKE LOWER(?)", "%"+strings.ToLower(destination)+"%")
		}
		if category != "" {
			query = query.Joins("JOIN categories ON categories.id = trips.category_id").
				Where("categories.slug = ?", category)
		}
		if search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(trips.title) LIKE ? OR LOWER(trips.destination) LIKE ?", pattern, pattern)
		}

		if err := query.Order("trips.created_at DESC").Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		results := make([]gin.H, 0, len(trips))
		for i := range trips {
			results = append(results, tripResponse(&trips[i]))
		}

		c.JSON(200, results)
	}
}

// GetTrip retrieves a single trip by slug, including its review average
func GetTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var trip models.Trip
		if err := db.Preload("Category").Where("slug = ? AND is_published = ?", slug, true).
			First(&trip).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		resp := tripResponse(&trip)
		avg, count := reviewSummary(db, models.ItemTypeTrip, trip.ID)
		resp["averageRating"] = avg
		resp["reviewCount"] = count

		c.JSON(200, resp)
	}
}

// TripInput is the admin payload for creating or updating a trip
type TripInput struct {
	Slug            string                `json:"slug" binding:"required"`
	Title           string                `json:"title" binding:"required"`
	Destination     string                `json:"destination" binding:"required"`
	Description     string                `json:"description"`
	CategoryID      *uint                 `json:"categoryId"`
	DurationDays    int                   `json:"durationDays"`
	MaxParticipants int                   `json:"maxParticipants"`
	Price           float64               `json:"price"`
	NextDeparture   *time.Time            `json:"nextDeparture"`
	IsPublished     *bool                 `json:"isPublished"`
	Itinerary       []models.ItineraryDay `json:"itinerary"`
	Photos          []string              `json:"photos"`
}

func (in *TripInput) apply(trip *models.Trip) error {
	trip.Slug = in.Slug
	trip.Title = in.Title
	trip.Destination = in.Destination
	trip.Description = in.Description
	trip.CategoryID = in.CategoryID
	if in.DurationDays > 0 {
		trip.DurationDays = in.DurationDays
	}
	if in.MaxParticipants > 0 {
		trip.MaxParticipants = in.MaxParticipants
	}
	trip.Price = in.Price
	trip.NextDeparture = in.NextDeparture
	if in.IsPublished != nil {
		trip.IsPublished = *in.IsPublished
	}

	if in.Itinerary != nil {
		raw, err := marshalJSON(in.Itinerary)
		if err != nil {
			return err
		}
		trip.Itinerary = raw
	}
	if in.Photos != nil {
		raw, err := marshalJSON(in.Photos)
		if err != nil {
			return err
		}
		trip.Photos = raw
	}
	return nil
}

// CreateTrip creates a new trip (admin only)
func CreateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		trip := models.Trip{DurationDays: 1, MaxParticipants: 10, IsPublished: true}
		if err := input.apply(&trip); err != nil {
			c.JSON(400, gin.H{"error": "Invalid trip payload"})
			return
		}

		if err := db.Create(&trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create trip"})
			return
		}

		c.JSON(201, tripResponse(&trip))
	}
}

// UpdateTrip updates an existing trip (admin only)
func UpdateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trip models.Trip
		if err := db.First(&trip, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		var input TripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := input.apply(&trip); err != nil {
			c.JSON(400, gin.H{"error": "Invalid trip payload"})
			return
		}

		if err := db.Save(&trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update trip"})
			return
		}

		c.JSON(200, tripResponse(&trip))
	}
}

// DeleteTrip removes a trip (admin only)
func DeleteTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Trip{}, c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete trip"})
			return
		}
		c.JSON(200, gin.H{"message": "Trip deleted"})
	}
}

func marshalJSON(v interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
