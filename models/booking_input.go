package models

// BookingRequestInput is the client payload for reserving a slot.
type BookingRequestInput struct {
	TherapistID   string `json:"therapistId" binding:"required"`
	TherapistName string `json:"therapistName"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	SessionType   string `json:"sessionType" binding:"required"`
}
