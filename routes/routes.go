package routes

import (
	"net/http"
	"time"

	"mindwell/handlers"
	"mindwell/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterTherapistRoutes registers the public therapist directory.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/therapists")
	{
		api.GET("", hb.Therapists.ListTherapists)
		api.GET("/:id/availability", hb.Therapists.Availability)
	}
}

// RegisterBookingRoutes sets up the reservation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.Verifier))
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListMyBookings)
		api.GET("/limit", hb.Booking.BookingLimit)
		api.DELETE("/:id", hb.Booking.CancelBooking)
	}
}

// RegisterScreeningRoutes registers quiz scoring. Anonymous users get a score;
// signed-in users also get the result recorded.
func RegisterScreeningRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/screening")
	{
		api.Use(middleware.OptionalAuthMiddleware(hb.Verifier))
		api.POST("/:quiz", hb.Screening.SubmitQuiz)
	}
}

// RegisterTrackingRoutes registers the caller's progress endpoints.
func RegisterTrackingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tracking")
	{
		api.Use(middleware.AuthMiddleware(hb.Verifier))
		api.GET("/quizzes", hb.Tracking.QuizHistory)
		api.DELETE("/quizzes", hb.Tracking.ClearQuizHistory)
		api.GET("/courses", hb.Tracking.CourseProgress)
		api.PUT("/courses/:courseId", hb.Tracking.SetCourseProgress)
	}
}

// RegisterChatRoutes registers the support chatbot.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/chat", hb.Chat.Chat)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if hb.RateLimiter != nil {
		r.Use(hb.RateLimiter.Middleware())
	}

	RegisterHealthRoute(r)
	RegisterTherapistRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterScreeningRoutes(r, hb)
	RegisterTrackingRoutes(r, hb)
	RegisterChatRoutes(r, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
}
