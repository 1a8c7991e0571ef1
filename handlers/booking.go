package handlers

import (
	"net/http"

	"mindwell/models"
	"mindwell/services/booking"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the signed-in user's bookings.
type BookingHandler struct {
	Service booking.ReservationService
}

// CreateBooking reserves a slot for the caller.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var input models.BookingRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Debug("Invalid booking request", zap.Error(err))
		utils.JSONCodedError(c, http.StatusBadRequest, string(booking.CodeInvalidRequest), "therapistId, date, time and sessionType are required.")
		return
	}

	b, err := h.Service.ReserveSlot(c.Request.Context(), booking.ReserveRequest{
		UserID:        userID,
		UserEmail:     c.GetString("email"),
		TherapistID:   input.TherapistID,
		TherapistName: input.TherapistName,
		Date:          input.Date,
		Time:          input.Time,
		SessionType:   input.SessionType,
	})
	if err != nil {
		writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookings returns the caller's bookings, newest first.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking cancels one of the caller's bookings.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	bookingID := c.Param("id")

	b, err := h.Service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeReservationError(c, err)
		return
	}
	if b.UserID != userID {
		getLogger(c).Warn("Cancel attempted on another user's booking", zap.String("bookingID", bookingID))
		writeReservationError(c, booking.ErrForbidden)
		return
	}

	if _, err := h.Service.CancelBooking(c.Request.Context(), bookingID); err != nil {
		writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true, "bookingId": bookingID})
}

// BookingLimit reports how many confirmed bookings the caller holds.
func (h *BookingHandler) BookingLimit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	count, err := h.Service.CountConfirmedBookings(c.Request.Context(), userID)
	if err != nil {
		writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"confirmed":  count,
		"limit":      booking.MaxBookingsPerUser,
		"underLimit": count < booking.MaxBookingsPerUser,
	})
}
