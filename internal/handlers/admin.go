package handlers

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/internal/services"
	"github.com/wanderly/wanderly-backend/pkg/utils"
)

// GetAllBookings lists bookings for the back office with optional status
// filters (admin only)
func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		query := db.Preload("User").Preload("Trip").Preload("Hotel").
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			if !models.ValidBookingStatus(status) {
				c.JSON(400, gin.H{"error": "Invalid status filter"})
				return
			}
			query = query.Where("status = ?", status)
		}
		if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
			if !models.ValidPaymentStatus(paymentStatus) {
				c.JSON(400, gin.H{"error": "Invalid payment status filter"})
				return
			}
			query = query.Where("payment_status = ?", paymentStatus)
		}
		if itemType := c.Query("itemType"); itemType != "" {
			query = query.Where("item_type = ?", itemType)
		}

		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}
		c.JSON(200, bookings)
	}
}

// UpdateBookingStatusInput changes booking and/or payment status
type UpdateBookingStatusInput struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateBookingStatus updates a booking's status and payment status and fans
// the change out to the traveler (admin only)
func UpdateBookingStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateBookingStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.Status == "" && input.PaymentStatus == "" {
			c.JSON(400, gin.H{"error": "Nothing to update"})
			return
		}
		if input.Status != "" && !models.ValidBookingStatus(input.Status) {
			c.JSON(400, gin.H{"error": "Invalid booking status"})
			return
		}
		if input.PaymentStatus != "" && !models.ValidPaymentStatus(input.PaymentStatus) {
			c.JSON(400, gin.H{"error": "Invalid payment status"})
			return
		}

		var booking models.Booking
		if err := db.Preload("User").First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		updates := map[string]interface{}{}
		if input.Status != "" {
			updates["status"] = input.Status
			booking.Status = models.BookingStatus(input.Status)
		}
		if input.PaymentStatus != "" {
			updates["payment_status"] = input.PaymentStatus
			booking.PaymentStatus = models.PaymentStatus(input.PaymentStatus)
		}

		if err := db.Model(&booking).Updates(updates).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		go notifyBookingStatusChange(db, hub, &booking)

		c.JSON(200, booking)
	}
}

// notifyBookingStatusChange tells the booking owner about a status change
// over every channel their preferences allow, each best-effort.
func notifyBookingStatusChange(db *gorm.DB, hub *services.Hub, booking *models.Booking) {
	ctx := context.Background()
	status := string(booking.Status)

	if hub != nil {
		hub.SendBookingStatusUpdate(booking.UserID, services.BookingStatusEvent{
			BookingID:     booking.ID,
			Reference:     booking.Reference,
			Status:        status,
			PaymentStatus: string(booking.PaymentStatus),
		})
	}

	var prefs models.NotificationPreference
	if err := db.Where("user_id = ?", booking.UserID).First(&prefs).Error; err != nil {
		prefs = *models.DefaultPreferences(booking.UserID)
	}

	user := booking.User
	if user.ID == 0 {
		if err := db.First(&user, booking.UserID).Error; err != nil {
			log.Printf("Failed to load user %d for booking status notification: %v", booking.UserID, err)
			return
		}
	}

	travelerName := user.Username
	email := user.Email
	phone := user.PhoneNumber
	if main := booking.MainBooker(); main != nil {
		travelerName = main.FirstName
		if main.Email != "" {
			email = main.Email
		}
		if main.Phone != "" {
			phone = main.Phone
		}
	}

	if prefs.EmailEnabled {
		if err := utils.SendBookingStatusEmail(email, travelerName, booking.Reference, status); err != nil {
			log.Printf("Failed to send status email for %s: %v", booking.Reference, err)
		}
	}
	if prefs.SMSEnabled && phone != "" {
		if err := utils.SendBookingStatusSMS(phone, booking.Reference, status); err != nil {
			log.Printf("Failed to send status SMS for %s: %v", booking.Reference, err)
		}
	}
	if prefs.PushEnabled && prefs.BookingAlerts && user.FCMToken != "" {
		if err := services.SendBookingStatusNotification(ctx, user.FCMToken,
			booking.Reference, status, booking.ID); err != nil {
			log.Printf("Failed to send status push for %s: %v", booking.Reference, err)
		}
	}
}

// GetAdminStats returns back-office dashboard counters (admin only)
func GetAdminStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats struct {
			Trips           int64
			Hotels          int64
			Bookings        int64
			PendingBookings int64
			Users           int64
			UnreadMessages  int64
		}

		db.Model(&models.Trip{}).Count(&stats.Trips)
		db.Model(&models.Hotel{}).Count(&stats.Hotels)
		db.Model(&models.Booking{}).Count(&stats.Bookings)
		db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&stats.PendingBookings)
		db.Model(&models.User{}).Count(&stats.Users)
		db.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&stats.UnreadMessages)

		var revenue float64
		db.Model(&models.Booking{}).Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total_price), 0)").Scan(&revenue)

		c.JSON(200, gin.H{
			"trips":           stats.Trips,
			"hotels":          stats.Hotels,
			"bookings":        stats.Bookings,
			"pendingBookings": stats.PendingBookings,
			"users":           stats.Users,
			"unreadMessages":  stats.UnreadMessages,
			"paidRevenue":     revenue,
		})
	}
}
