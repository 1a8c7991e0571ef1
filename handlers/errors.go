package handlers

import (
	"errors"
	"net/http"

	"mindwell/services/booking"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var reservationStatus = map[booking.ErrorCode]int{
	booking.CodeBookingLimitExceeded: http.StatusTooManyRequests,
	booking.CodeSlotAlreadyTaken:     http.StatusConflict,
	booking.CodeConflictRetry:        http.StatusServiceUnavailable,
	booking.CodeNotFound:             http.StatusNotFound,
	booking.CodeStoreUnavailable:     http.StatusServiceUnavailable,
	booking.CodeInvalidRequest:       http.StatusBadRequest,
	booking.CodeForbidden:            http.StatusForbidden,
}

// writeReservationError maps a reservation failure to its HTTP status and
// user-facing message. Internal causes only go to the log.
func writeReservationError(c *gin.Context, err error) {
	var re *booking.ReservationError
	if !errors.As(err, &re) {
		getLogger(c).Error("Unclassified booking error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred. Please try again later.")
		return
	}
	status, ok := reservationStatus[re.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if re.Code.Retryable() {
		c.Header("Retry-After", "1")
	}
	utils.JSONCodedError(c, status, string(re.Code), re.Message)
}
