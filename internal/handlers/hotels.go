package handlers

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/pkg/utils"
)

func hotelResponse(hotel *models.Hotel) gin.H {
	rooms := hotel.RoomRecords()
	roomList := make([]gin.H, 0, len(rooms))
	for _, room := range rooms {
		roomList = append(roomList, gin.H{
			"key":      room.Key,
			"name":     room.Name,
			"capacity": room.Capacity,
			"features": room.Features,
			"price":    hotel.RoomPrice(room.Key),
		})
	}

	return gin.H{
		"id":            hotel.ID,
		"slug":          hotel.Slug,
		"name":          hotel.Name,
		"city":          hotel.City,
		"country":       hotel.Country,
		"address":       hotel.Address,
		"starRating":    hotel.StarRating,
		"latitude":      hotel.Latitude,
		"longitude":     hotel.Longitude,
		"description":   hotel.Description,
		"maxGuests":     hotel.MaxGuests,
		"isPublished":   hotel.IsPublished,
		"pricePerNight": hotel.NightlyPrice(),
		"roomTypes":     roomList,
		"photos":        hotel.PhotoURLs(),
	}
}

// GetHotels retrieves all published hotels with optional search filters
func GetHotels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Query("city")
		search := c.Query("q")

		var hotels []models.Hotel
		query := db.Where("is_published = ?", true)

		if city != "" {
			query = query.Where("LOWER(city) LIKE LOWER(?)", "%"+strings.ToLower(city)+"%")
		}
		if search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern)
		}

		if err := query.Order("created_at DESC").Find(&hotels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotels"})
			return
		}

		results := make([]gin.H, 0, len(hotels))
		for i := range hotels {
			results = append(results, hotelResponse(&hotels[i]))
		}

		c.JSON(200, results)
	}
}

// GetHotel retrieves a single hotel by slug, including its review average
func GetHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var hotel models.Hotel
		if err := db.Where("slug = ? AND is_published = ?", slug, true).First(&hotel).Error; err != nil {
			c.JSON(404, gin.H{"error": "Hotel not found"})
			return
		}

		resp := hotelResponse(&hotel)
		avg, count := reviewSummary(db, models.ItemTypeHotel, hotel.ID)
		resp["averageRating"] = avg
		resp["reviewCount"] = count

		c.JSON(200, resp)
	}
}

// GetNearbyHotels lists published hotels within a radius of a point, sorted
// by distance
func GetNearbyHotels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid latitude"})
			return
		}
		lng, err := strconv.ParseFloat(c.Query("lng"), 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid longitude"})
			return
		}
		radiusKm := 25.0
		if raw := c.Query("radius"); raw != "" {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
				radiusKm = parsed
			}
		}

		var hotels []models.Hotel
		if err := db.Where("is_published = ?", true).Find(&hotels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotels"})
			return
		}

		type hotelWithDistance struct {
			hotel    *models.Hotel
			distance float64
		}

		nearby := make([]hotelWithDistance, 0, len(hotels))
		for i := range hotels {
			h := &hotels[i]
			if h.Latitude == 0 && h.Longitude == 0 {
				continue
			}
			distance := utils.HaversineDistance(lat, lng, h.Latitude, h.Longitude)
			if distance <= radiusKm {
				nearby = append(nearby, hotelWithDistance{hotel: h, distance: distance})
			}
		}

		sort.Slice(nearby, func(i, j int) bool {
			return nearby[i].distance < nearby[j].distance
		})

		results := make([]gin.H, 0, len(nearby))
		for _, entry := range nearby {
			resp := hotelResponse(entry.hotel)
			resp["distanceKm"] = entry.distance
			results = append(results, resp)
		}

		c.JSON(200, results)
	}
}

// HotelInput is the admin payload for creating or updating a hotel
type HotelInput struct {
	Slug        string             `json:"slug" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	City        string             `json:"city" binding:"required"`
	Country     string             `json:"country"`
	Address     string             `json:"address"`
	StarRating  int                `json:"starRating"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Description string             `json:"description"`
	MaxGuests   int                `json:"maxGuests"`
	IsPublished *bool              `json:"isPublished"`
	RoomTypes   []utils.RoomRecord `json:"roomTypes"`
	Photos      []string           `json:"photos"`
}

func (in *HotelInput) apply(hotel *models.Hotel) error {
	hotel.Slug = in.Slug
	hotel.Name = in.Name
	hotel.City = in.City
	hotel.Country = in.Country
	hotel.Address = in.Address
	hotel.StarRating = in.StarRating
	hotel.Latitude = in.Latitude
	hotel.Longitude = in.Longitude
	hotel.Description = in.Description
	if in.MaxGuests > 0 {
		hotel.MaxGuests = in.MaxGuests
	}
	if in.IsPublished != nil {
		hotel.IsPublished = *in.IsPublished
	}

	if in.RoomTypes != nil {
		raw, err := marshalJSON(in.RoomTypes)
		if err != nil {
			return err
		}
		hotel.RoomTypes = raw
	}
	if in.Photos != nil {
		raw, err := marshalJSON(in.Photos)
		if err != nil {
			return err
		}
		hotel.Photos = raw
	}
	return nil
}

// CreateHotel creates a new hotel (admin only)
func CreateHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input HotelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hotel := models.Hotel{MaxGuests: 4, IsPublished: true}
		if err := input.apply(&hotel); err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel payload"})
			return
		}

		if err := db.Create(&hotel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create hotel"})
			return
		}

		c.JSON(201, hotelResponse(&hotel))
	}
}

// UpdateHotel updates an existing hotel (admin only)
func UpdateHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hotel models.Hotel
		if err := db.First(&hotel, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Hotel not found"})
			return
		}

		var input HotelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := input.apply(&hotel); err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel payload"})
			return
		}

		if err := db.Save(&hotel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update hotel"})
			return
		}

		c.JSON(200, hotelResponse(&hotel))
	}
}

// DeleteHotel removes a hotel (admin only)
func DeleteHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Hotel{}, c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete hotel"})
			return
		}
		c.JSON(200, gin.H{"message": "Hotel deleted"})
	}
}
