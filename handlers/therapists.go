package handlers

import (
	"net/http"

	"mindwell/services/booking"

	"github.com/gin-gonic/gin"
)

// TherapistHandler serves the public therapist directory.
type TherapistHandler struct {
	Service booking.ReservationService
}

func (h *TherapistHandler) ListTherapists(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"therapists": booking.ListTherapists()})
}

// Availability lists the day's fixed slots for a therapist. The result is
// advisory; a free slot can still be taken before it is booked.
func (h *TherapistHandler) Availability(c *gin.Context) {
	slots, err := h.Service.AvailableTimes(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
