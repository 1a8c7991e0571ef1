package booking

import (
	"strconv"
	"strings"
)

// Characters the document stores reject (or treat as path separators) in ids.
var idReplacer = strings.NewReplacer(":", "-", ".", "-", "/", "-")

// BookingID derives the deterministic booking id for a user's reservation of a slot.
func BookingID(userID, therapistID, date, t string) string {
	return idReplacer.Replace(strings.Join([]string{userID, therapistID, date, t}, "_"))
}

// SlotID derives the slot reservation id for a (therapist, date, time) triple.
func SlotID(therapistID, date, t string) string {
	return idReplacer.Replace(strings.Join([]string{therapistID, date, t}, "_"))
}

// generationID returns the id of the nth booking a user made for the same slot.
// The first keeps the bare id so it matches BookingID.
func generationID(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "_" + strconv.Itoa(n)
}
