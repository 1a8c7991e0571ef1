package models

// SlotTimes are the bookable session start times, 24-hour local time.
var SlotTimes = []string{"09:00", "10:30", "14:00", "15:30"}

// SessionTypes are the accepted session media.
var SessionTypes = []string{SessionTypeVideo, SessionTypePhone, SessionTypeChat}

// SlotReservation marks one (therapist, date, time) triple as occupied.
// The document existing is the reservation; IsBooked is informational.
type SlotReservation struct {
	ID          string `bson:"_id" json:"id" firestore:"-"`
	TherapistID string `bson:"therapistId" json:"therapistId" firestore:"therapistId"`
	Date        string `bson:"date" json:"date" firestore:"date"`
	Time        string `bson:"time" json:"time" firestore:"time"`
	IsBooked    bool   `bson:"isBooked" json:"isBooked" firestore:"isBooked"`
	BookingID   string `bson:"bookingId" json:"bookingId" firestore:"bookingId"`
}

// IsSlotTime reports whether t is one of SlotTimes.
func IsSlotTime(t string) bool {
	for _, s := range SlotTimes {
		if s == t {
			return true
		}
	}
	return false
}

// IsSessionType reports whether s is one of SessionTypes.
func IsSessionType(s string) bool {
	for _, st := range SessionTypes {
		if st == s {
			return true
		}
	}
	return false
}

// AvailableSlot is one bookable time on a given day, as returned to clients.
type AvailableSlot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
