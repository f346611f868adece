package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/pkg/utils"
)

// QuoteInput asks for a price preview before any draft exists
type QuoteInput struct {
	ItemType    string `json:"itemType" binding:"required"`
	ItemID      uint   `json:"itemId" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	RoomTypeKey string `json:"roomTypeKey"`
	Guests      int    `json:"guests"`
}

// GetQuote combines the price resolver and date calculator into a booking
// price preview
func GetQuote(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input QuoteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		itemType, ok := parseItemRef(c, input.ItemType, input.ItemID)
		if !ok {
			return
		}

		guests := input.Guests
		if guests < 1 {
			guests = 1
		}

		switch itemType {
		case models.ItemTypeTrip:
			var trip models.Trip
			if err := db.First(&trip, input.ItemID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Trip not found"})
				return
			}

			perPerson := trip.PerPersonPrice()
			resp := gin.H{
				"itemType":       models.ItemTypeTrip,
				"itemId":         trip.ID,
				"perPersonPrice": perPerson,
				"durationDays":   trip.Duration(),
				"guests":         guests,
				"total":          perPerson * float64(guests),
			}
			if trip.NextDeparture != nil {
				end := utils.TripEndDate(*trip.NextDeparture, trip.Duration())
				resp["startDate"] = trip.NextDeparture.Format(utils.DateLayout)
				resp["endDate"] = end.Format(utils.DateLayout)
			}
			c.JSON(200, resp)

		case models.ItemTypeHotel:
			var hotel models.Hotel
			if err := db.First(&hotel, input.ItemID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Hotel not found"})
				return
			}

			nightly := hotel.RoomPrice(input.RoomTypeKey)
			nights := utils.Nights(input.StartDate, input.EndDate)
			c.JSON(200, gin.H{
				"itemType":      models.ItemTypeHotel,
				"itemId":        hotel.ID,
				"roomTypeKey":   input.RoomTypeKey,
				"pricePerNight": nightly,
				"nights":        nights,
				"guests":        guests,
				"total":         nightly * float64(nights),
			})
		}
	}
}
