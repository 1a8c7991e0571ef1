package handlers

import (
	"mindwell/middleware"
)

// HandlerBundle groups all endpoint handlers and the middleware they depend on.
type HandlerBundle struct {
	Verifier    middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter

	Booking    *BookingHandler
	Therapists *TherapistHandler
	Screening  *ScreeningHandler
	Tracking   *TrackingHandler
	Chat       *ChatHandler
}
