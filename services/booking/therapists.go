package booking

import "mindwell/models"

var allSessionTypes = []string{models.SessionTypeVideo, models.SessionTypePhone, models.SessionTypeChat}

// therapists is the fixed directory of bookable practitioners.
var therapists = []models.Therapist{
	{ID: "1", Name: "Dr. Amara Okafor", Title: "Clinical Psychologist", Specialties: []string{"depression", "anxiety"}, SessionTypes: allSessionTypes},
	{ID: "2", Name: "Dr. Lena Fischer", Title: "Perinatal Psychiatrist", Specialties: []string{"postnatal depression", "pregnancy"}, SessionTypes: []string{models.SessionTypeVideo, models.SessionTypePhone}},
	{ID: "3", Name: "Samuel Mwangi", Title: "Counselling Psychologist", Specialties: []string{"stress", "burnout"}, SessionTypes: allSessionTypes},
	{ID: "4", Name: "Priya Raman", Title: "Cognitive Behavioural Therapist", Specialties: []string{"anxiety", "panic", "OCD"}, SessionTypes: allSessionTypes},
	{ID: "5", Name: "Dr. Tomás Herrera", Title: "Psychiatrist", Specialties: []string{"bipolar disorder", "medication review"}, SessionTypes: []string{models.SessionTypeVideo}},
	{ID: "6", Name: "Grace Achieng", Title: "Family Therapist", Specialties: []string{"relationships", "parenting"}, SessionTypes: allSessionTypes},
	{ID: "7", Name: "Dr. Hannah Cole", Title: "Trauma Specialist", Specialties: []string{"PTSD", "grief"}, SessionTypes: allSessionTypes},
	{ID: "8", Name: "Yusuf Ibrahim", Title: "Addiction Counsellor", Specialties: []string{"substance use", "habits"}, SessionTypes: []string{models.SessionTypePhone, models.SessionTypeChat}},
}

// ListTherapists returns the therapist directory.
func ListTherapists() []models.Therapist {
	out := make([]models.Therapist, len(therapists))
	copy(out, therapists)
	return out
}

// LookupTherapist finds a therapist by id.
func LookupTherapist(id string) (models.Therapist, bool) {
	for _, t := range therapists {
		if t.ID == id {
			return t, true
		}
	}
	return models.Therapist{}, false
}

func offers(t models.Therapist, sessionType string) bool {
	for _, st := range t.SessionTypes {
		if st == sessionType {
			return true
		}
	}
	return false
}
