package models

import "time"

// Booking statuses. A booking starts confirmed; cancelled is terminal.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Session media offered by therapists.
const (
	SessionTypeVideo = "video"
	SessionTypePhone = "phone"
	SessionTypeChat  = "chat"
)

// Booking represents one therapist session reservation. Records are never deleted;
// cancellation only flips Status.
type Booking struct {
	ID            string    `bson:"_id" json:"id" firestore:"id"`
	UserID        string    `bson:"userId" json:"userId" firestore:"userId"`
	UserEmail     string    `bson:"userEmail" json:"userEmail" firestore:"userEmail"`
	TherapistID   string    `bson:"therapistId" json:"therapistId" firestore:"therapistId"`
	TherapistName string    `bson:"therapistName" json:"therapistName" firestore:"therapistName"`
	Date          string    `bson:"date" json:"date" firestore:"date"` // "YYYY-MM-DD"
	Time          string    `bson:"time" json:"time" firestore:"time"` // one of SlotTimes
	SessionType   string    `bson:"sessionType" json:"sessionType" firestore:"sessionType"`
	Status        string    `bson:"status" json:"status" firestore:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
}

// IsConfirmed reports whether the booking still holds its slot.
func (b Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}
