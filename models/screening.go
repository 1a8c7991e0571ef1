package models

import "time"

// Quiz identifiers.
const (
	QuizPHQ9      = "phq9"
	QuizEPDS      = "epds"
	QuizLifestyle = "lifestyle"
)

// ScreeningResult is the scored outcome of one quiz submission.
type ScreeningResult struct {
	Quiz           string `json:"quiz"`
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore"`
	Severity       string `json:"severity"`
	Interpretation string `json:"interpretation"`
	Recommendation string `json:"recommendation,omitempty"`
	SelfHarmRisk   bool   `json:"selfHarmRisk"`
}

// QuizRecord is a ScreeningResult kept in a user's tracking history.
type QuizRecord struct {
	ID         string          `json:"id"`
	Result     ScreeningResult `json:"result"`
	Answers    []int           `json:"answers"`
	RecordedAt time.Time       `json:"recordedAt"`
}

// CourseProgress is a user's completion percentage of one self-help course.
type CourseProgress struct {
	CourseID  string    `json:"courseId"`
	Percent   int       `json:"percent"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScreeningInput is the client payload for scoring one quiz.
type ScreeningInput struct {
	Answers []int `json:"answers" binding:"required"`
}

// CourseProgressInput is the client payload for updating course progress.
type CourseProgressInput struct {
	Percent *int `json:"percent" binding:"required"`
}
