package models

// Therapist is a bookable practitioner from the static catalogue.
type Therapist struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Specialties  []string `json:"specialties"`
	SessionTypes []string `json:"sessionTypes"`
}
