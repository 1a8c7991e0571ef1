package models

// ReminderPayload is the asynq payload for a session reminder.
type ReminderPayload struct {
	BookingID     string `json:"bookingId"`
	UserID        string `json:"userId"`
	TherapistName string `json:"therapistName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	SessionType   string `json:"sessionType"`
}
