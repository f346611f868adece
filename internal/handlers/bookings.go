package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/internal/services"
	"github.com/wanderly/wanderly-backend/pkg/utils"
)

// BookingDeps bundles the stores the booking endpoints work against.
type BookingDeps struct {
	DB     *gorm.DB
	Drafts *services.DraftStore
	Guard  *services.SubmitGuard
	Hub    *services.Hub
}

func draftResponse(draft *services.BookingDraft) gin.H {
	slots := make([]gin.H, 0, len(draft.Slots))
	for i := range draft.Slots {
		slots = append(slots, gin.H{
			"participant": draft.Slots[i].Participant,
			"expanded":    draft.Slots[i].Expanded,
			"completion":  draft.Completion(i),
		})
	}

	return gin.H{
		"id":                    draft.ID,
		"itemType":              draft.ItemType,
		"itemId":                draft.ItemID,
		"startDate":             draft.StartDate,
		"endDate":               draft.EndDate,
		"roomTypeKey":           draft.RoomTypeKey,
		"participantCount":      draft.ParticipantCount(),
		"slots":                 slots,
		"agreedToTerms":         draft.AgreedToTerms,
		"emergencyContactName":  draft.EmergencyContactName,
		"emergencyContactPhone": draft.EmergencyContactPhone,
	}
}

// loadDraft fetches the caller's draft or writes the error response.
func loadDraft(c *gin.Context, deps BookingDeps) (*services.BookingDraft, bool) {
	userId := c.GetUint("userId")
	draft, err := deps.Drafts.Get(c.Request.Context(), userId, c.Param("id"))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.JSON(404, gin.H{"error": "Draft not found or expired"})
		} else {
			c.JSON(500, gin.H{"error": "Failed to load draft"})
		}
		return nil, false
	}
	return draft, true
}

func saveDraft(c *gin.Context, deps BookingDeps, draft *services.BookingDraft) bool {
	if err := deps.Drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(500, gin.H{"error": "Failed to save draft"})
		return false
	}
	return true
}

// CreateBookingDraftInput starts a booking form session
type CreateBookingDraftInput struct {
	ItemType    string `json:"itemType" binding:"required"`
	ItemID      uint   `json:"itemId" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	RoomTypeKey string `json:"roomTypeKey"`
}

// CreateBookingDraft opens a new draft for a trip or hotel
func CreateBookingDraft(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input CreateBookingDraftInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		itemType, ok := parseItemRef(c, input.ItemType, input.ItemID)
		if !ok {
			return
		}
		if !itemExists(deps.DB, itemType, input.ItemID) {
			c.JSON(404, gin.H{"error": "Item not found"})
			return
		}

		draft := services.NewBookingDraft(uuid.NewString(), userId, itemType, input.ItemID)
		draft.StartDate = input.StartDate
		draft.EndDate = input.EndDate
		draft.RoomTypeKey = input.RoomTypeKey

		if !saveDraft(c, deps, draft) {
			return
		}
		c.JSON(201, draftResponse(draft))
	}
}

// GetBookingDraft returns the current draft state
func GetBookingDraft(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}
		c.JSON(200, draftResponse(draft))
	}
}

// UpdateBookingDraftInput patches draft-level fields; nil fields are left
// untouched
type UpdateBookingDraftInput struct {
	StartDate             *string `json:"startDate"`
	EndDate               *string `json:"endDate"`
	RoomTypeKey           *string `json:"roomTypeKey"`
	AgreedToTerms         *bool   `json:"agreedToTerms"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
}

// UpdateBookingDraft patches dates, room selection, terms and emergency
// contact on the draft
func UpdateBookingDraft(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}

		var input UpdateBookingDraftInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.StartDate != nil {
			draft.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			draft.EndDate = *input.EndDate
		}
		if input.RoomTypeKey != nil {
			draft.RoomTypeKey = *input.RoomTypeKey
		}
		if input.AgreedToTerms != nil {
			draft.AgreedToTerms = *input.AgreedToTerms
		}
		if input.EmergencyContactName != nil {
			draft.EmergencyContactName = *input.EmergencyContactName
		}
		if input.EmergencyContactPhone != nil {
			draft.EmergencyContactPhone = *input.EmergencyContactPhone
		}

		if !saveDraft(c, deps, draft) {
			return
		}
		c.JSON(200, draftResponse(draft))
	}
}

// SetDraftParticipantCount grows or shrinks the participant slot list
func SetDraftParticipantCount(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}

		var input struct {
			Count int `json:"count" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		draft.SetParticipantCount(input.Count)
		if !saveDraft(c, deps, draft) {
			return
		}
		c.JSON(200, draftResponse(draft))
	}
}

// SetDraftMainBooker moves the main-booker flag to the given slot
func SetDraftMainBooker(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}

		var input struct {
			Index *int `json:"index" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := draft.SetMainBooker(*input.Index); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !saveDraft(c, deps, draft) {
			return
		}
		c.JSON(200, draftResponse(draft))
	}
}

// SetDraftParticipant fills in one participant slot
func SetDraftParticipant(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid participant index"})
			return
		}

		var participant models.Participant
		if err := c.ShouldBindJSON(&participant); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := draft.SetParticipant(index, participant); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !saveDraft(c, deps, draft) {
			return
		}
		c.JSON(200, gin.H{
			"participant": draft.Slots[index].Participant,
			"completion":  draft.Completion(index),
		})
	}
}

// ToggleDraftSlot expands or collapses one participant sub-form
func ToggleDraftSlot(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid participant index"})
			return
		}

		if err := draft.ToggleSlot(index); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !saveDraft(c, deps, draft) {
			return
		}
		c.JSON(200, gin.H{"expanded": draft.Slots[index].Expanded})
	}
}

// DeleteBookingDraft discards a draft without submitting
func DeleteBookingDraft(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		if err := deps.Drafts.Delete(c.Request.Context(), userId, c.Param("id")); err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete draft"})
			return
		}
		c.JSON(200, gin.H{"message": "Draft discarded"})
	}
}

// SubmitBookingInput carries the client-generated idempotency key
type SubmitBookingInput struct {
	RequestID string `json:"requestId" binding:"required,uuid"`
}

// SubmitBooking validates the draft and creates the persisted booking.
// Submits are idempotent on requestId: a duplicate returns the booking the
// first submit created.
func SubmitBooking(deps BookingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input SubmitBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Duplicate submit (double-click, retry): hand back the existing row.
		var existing models.Booking
		if err := deps.DB.Where("request_id = ? AND user_id = ?", input.RequestID, userId).
			First(&existing).Error; err == nil {
			c.JSON(200, existing)
			return
		}

		draft, ok := loadDraft(c, deps)
		if !ok {
			return
		}

		booking, errs, err := buildBooking(deps.DB, draft, userId, input.RequestID)
		if len(errs) > 0 {
			c.JSON(422, gin.H{"errors": errs})
			return
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		reserved, err := deps.Guard.Reserve(c.Request.Context(), input.RequestID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}
		if !reserved {
			// Another submit with this requestId is in flight or done.
			if err := deps.DB.Where("request_id = ?", input.RequestID).First(&existing).Error; err == nil {
				c.JSON(200, existing)
				return
			}
			c.JSON(409, gin.H{"error": "Booking submit already in progress"})
			return
		}

		if err := deps.DB.Create(booking).Error; err != nil {
			if releaseErr := deps.Guard.Release(c.Request.Context(), input.RequestID); releaseErr != nil {
				log.Printf("Failed to release submit guard for %s: %v", input.RequestID, releaseErr)
			}
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		if err := deps.Drafts.Delete(c.Request.Context(), userId, draft.ID); err != nil {
			log.Printf("Failed to delete draft %s after submit: %v", draft.ID, err)
		}

		go notifyBookingReceived(deps, booking)

		c.JSON(201, booking)
	}
}

// buildBooking resolves the item, validates the draft and assembles the
// denormalized booking row. Validation failures come back in the map, not
// the error.
func buildBooking(db *gorm.DB, draft *services.BookingDraft, userID uint, requestID string) (*models.Booking, map[string]string, error) {
	reference, err := utils.GenerateBookingReference("WND")
	if err != nil {
		return nil, nil, err
	}

	booking := &models.Booking{
		Reference:        reference,
		RequestID:        requestID,
		UserID:           userID,
		ItemType:         draft.ItemType,
		ParticipantCount: draft.ParticipantCount(),
		Status:           models.BookingStatusPending,
		PaymentStatus:    models.PaymentStatusPending,

		EmergencyContactName:  draft.EmergencyContactName,
		EmergencyContactPhone: draft.EmergencyContactPhone,
	}

	maxParticipants := 0
	switch draft.ItemType {
	case models.ItemTypeTrip:
		var trip models.Trip
		if err := db.First(&trip, draft.ItemID).Error; err != nil {
			return nil, nil, err
		}
		maxParticipants = trip.MaxParticipants
		booking.TripID = &trip.ID
		booking.ItemTitle = trip.Title
		booking.UnitPrice = trip.PerPersonPrice()
		booking.TotalPrice = booking.UnitPrice * float64(draft.ParticipantCount())

		if start, err := time.Parse(utils.DateLayout, draft.StartDate); err == nil {
			end := utils.TripEndDate(start, trip.Duration())
			booking.StartDate = &start
			booking.EndDate = &end
		} else if trip.NextDeparture != nil {
			start := *trip.NextDeparture
			end := utils.TripEndDate(start, trip.Duration())
			booking.StartDate = &start
			booking.EndDate = &end
		}

	case models.ItemTypeHotel:
		var hotel models.Hotel
		if err := db.First(&hotel, draft.ItemID).Error; err != nil {
			return nil, nil, err
		}
		maxParticipants = hotel.MaxGuests
		booking.HotelID = &hotel.ID
		booking.ItemTitle = hotel.Name
		booking.RoomTypeKey = draft.RoomTypeKey
		booking.UnitPrice = hotel.RoomPrice(draft.RoomTypeKey)
		booking.Nights = utils.Nights(draft.StartDate, draft.EndDate)
		booking.TotalPrice = booking.UnitPrice * float64(booking.Nights)

		if start, err := time.Parse(utils.DateLayout, draft.StartDate); err == nil {
			booking.StartDate = &start
		}
		if end, err := time.Parse(utils.DateLayout, draft.EndDate); err == nil {
			booking.EndDate = &end
		}
	}

	if errs := services.ValidateBookingDraft(draft, maxParticipants); len(errs) > 0 {
		return nil, errs, nil
	}

	raw, err := marshalJSON(draft.Participants())
	if err != nil {
		return nil, nil, err
	}
	booking.Participants = raw

	return booking, nil, nil
}

// notifyBookingReceived fans the new booking out to the back office and
// confirms to the traveler, each best-effort.
func notifyBookingReceived(deps BookingDeps, booking *models.Booking) {
	ctx := context.Background()

	if deps.Hub != nil {
		deps.Hub.SendBookingReceived(services.BookingReceivedEvent{
			BookingID: booking.ID,
			Reference: booking.Reference,
			ItemTitle: booking.ItemTitle,
			Total:     booking.TotalPrice,
		})
	}

	var user models.User
	if err := deps.DB.First(&user, booking.UserID).Error; err != nil {
		log.Printf("Failed to load user %d for booking confirmation: %v", booking.UserID, err)
		return
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

	startDate := ""
	if booking.StartDate != nil {
		startDate = booking.StartDate.Format(utils.DateLayout)
	}
	if err := utils.SendBookingConfirmationEmail(email, travelerName, booking.Reference,
		booking.ItemTitle, startDate, booking.TotalPrice); err != nil {
		log.Printf("Failed to send booking confirmation email for %s: %v", booking.Reference, err)
	}
	if phone != "" {
		if err := utils.SendBookingConfirmationSMS(phone, booking.Reference, booking.ItemTitle); err != nil {
			log.Printf("Failed to send booking confirmation SMS for %s: %v", booking.Reference, err)
		}
	}

	if user.FCMToken != "" {
		if err := services.SendBookingReceivedNotification(ctx, user.FCMToken,
			booking.Reference, booking.ItemTitle, booking.ID); err != nil {
			log.Printf("Failed to send booking push for %s: %v", booking.Reference, err)
		}
	}
}

// GetMyBookings lists the caller's bookings, newest first
func GetMyBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		query := db.Preload("Trip").Preload("Hotel").
			Where("user_id = ?", userId).Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			if !models.ValidBookingStatus(status) {
				c.JSON(400, gin.H{"error": "Invalid status filter"})
				return
			}
			query = query.Where("status = ?", status)
		}

		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}
		c.JSON(200, bookings)
	}
}

// GetBooking returns one booking; owners and admins only
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		role := c.GetString("userRole")

		var booking models.Booking
		if err := db.Preload("Trip").Preload("Hotel").Preload("User").
			First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.UserID != userId && role != string(models.UserRoleAdmin) {
			c.JSON(403, gin.H{"error": "Not your booking"})
			return
		}
		c.JSON(200, booking)
	}
}
