package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wanderly/wanderly-backend/internal/database"
	"github.com/wanderly/wanderly-backend/internal/handlers"
	"github.com/wanderly/wanderly-backend/internal/middleware"
	"github.com/wanderly/wanderly-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis backs booking drafts and submit idempotency
	rdb, err := services.NewRedisClient()
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	drafts := services.NewDraftStore(rdb)
	guard := services.NewSubmitGuard(rdb)

	// Initialize Firebase (optional - will log warning if not configured)
	if err := services.InitFirebase(); err != nil {
		log.Printf("Firebase initialization warning: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	bookingDeps := handlers.BookingDeps{
		DB:     db,
		Drafts: drafts,
		Guard:  guard,
		Hub:    hub,
	}

	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve static files
	r.Static("/uploads", "/app/uploads")

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
			auth.POST("/verify-email", handlers.VerifyEmail(db))
			auth.POST("/forgot-password", handlers.RequestPasswordReset(db))
			auth.POST("/verify-otp", handlers.VerifyOTP(db))
			auth.POST("/reset-password", handlers.ResetPassword(db))
		}

		// Public catalog
		api.GET("/trips", handlers.GetTrips(db))
		api.GET("/trips/:slug", handlers.GetTrip(db))
		api.GET("/hotels", handlers.GetHotels(db))
		api.GET("/hotels/nearby", handlers.GetNearbyHotels(db))
		api.GET("/hotels/:slug", handlers.GetHotel(db))
		api.GET("/categories", handlers.GetCategories(db))
		api.GET("/reviews", handlers.GetReviews(db))
		api.GET("/comments", handlers.GetComments(db))
		api.POST("/quote", handlers.GetQuote(db))
		api.POST("/contact", handlers.CreateContactMessage(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			bookings := protected.Group("/bookings")
			{
				bookings.GET("", handlers.GetMyBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))

				bookings.POST("/drafts", handlers.CreateBookingDraft(bookingDeps))
				bookings.GET("/drafts/:id", handlers.GetBookingDraft(bookingDeps))
				bookings.PATCH("/drafts/:id", handlers.UpdateBookingDraft(bookingDeps))
				bookings.DELETE("/drafts/:id", handlers.DeleteBookingDraft(bookingDeps))
				bookings.PUT("/drafts/:id/participant-count", handlers.SetDraftParticipantCount(bookingDeps))
				bookings.PUT("/drafts/:id/main-booker", handlers.SetDraftMainBooker(bookingDeps))
				bookings.PUT("/drafts/:id/participants/:index", handlers.SetDraftParticipant(bookingDeps))
				bookings.POST("/drafts/:id/slots/:index/toggle", handlers.ToggleDraftSlot(bookingDeps))
				bookings.POST("/drafts/:id/submit", handlers.SubmitBooking(bookingDeps))
			}

			reviews := protected.Group("/reviews")
			{
				reviews.POST("", handlers.CreateReview(db))
				reviews.DELETE("/:id", handlers.DeleteReview(db))
			}

			comments := protected.Group("/comments")
			{
				comments.POST("", handlers.CreateComment(db))
				comments.POST("/:id/like", handlers.ToggleCommentLike(db))
				comments.DELETE("/:id", handlers.DeleteComment(db))
			}

			notifications := protected.Group("/notifications")
			{
				notifications.POST("/register-token", handlers.RegisterFCMToken(db))
				notifications.DELETE("/remove-token", handlers.RemoveFCMToken(db))
				notifications.POST("/test", handlers.TestNotification(db))
				notifications.GET("/preferences", handlers.GetNotificationPreferences(db))
				notifications.PUT("/preferences", handlers.UpdateNotificationPreferences(db))
			}
		}

		// Back office
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.GET("/stats", handlers.GetAdminStats(db))

			admin.GET("/bookings", handlers.GetAllBookings(db))
			admin.PATCH("/bookings/:id/status", handlers.UpdateBookingStatus(db, hub))

			admin.POST("/trips", handlers.CreateTrip(db))
			admin.PUT("/trips/:id", handlers.UpdateTrip(db))
			admin.DELETE("/trips/:id", handlers.DeleteTrip(db))

			admin.POST("/hotels", handlers.CreateHotel(db))
			admin.PUT("/hotels/:id", handlers.UpdateHotel(db))
			admin.DELETE("/hotels/:id", handlers.DeleteHotel(db))

			admin.POST("/categories", handlers.CreateCategory(db))
			admin.PUT("/categories/:id", handlers.UpdateCategory(db))
			admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

			admin.GET("/contact-messages", handlers.GetContactMessages(db))
			admin.PATCH("/contact-messages/:id/read", handlers.MarkContactMessageRead(db))

			admin.POST("/uploads", handlers.UploadPhoto())
			admin.POST("/promotions", handlers.SendPromotion(db))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
