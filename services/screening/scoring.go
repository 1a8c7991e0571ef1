package screening

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"mindwell/models"
)

// ErrInvalidAnswers is returned when a submission has the wrong number of
// answers or an answer outside the quiz's scale.
var ErrInvalidAnswers = errors.New("invalid answers")

// ErrUnknownQuiz is returned for a quiz id the service does not score.
var ErrUnknownQuiz = errors.New("unknown quiz")

type band struct {
	min, max       int
	severity       string
	interpretation string
	advice         string
}

const (
	phq9Items  = 9
	epdsItems  = 10
	itemMaxVal = 3
)

var phq9Bands = []band{
	{0, 4, "minimal", "Minimal or no depressive symptoms.", "Keep up the habits that support your wellbeing."},
	{5, 9, "mild", "Mild depressive symptoms.", "Watchful waiting; repeat the questionnaire in two weeks."},
	{10, 14, "moderate", "Moderate depressive symptoms.", "Consider talking to a therapist about a treatment plan."},
	{15, 19, "moderately severe", "Moderately severe depressive symptoms.", "We recommend booking a session with a therapist soon."},
	{20, 27, "severe", "Severe depressive symptoms.", "Please reach out to a mental health professional as soon as possible."},
}

var epdsBands = []band{
	{0, 9, "unlikely", "Depression not likely.", "Continue to look after yourself and repeat the check if things change."},
	{10, 12, "possible", "Possible depression.", "Talk to your midwife, health visitor or a therapist about how you feel."},
	{13, 30, "probable", "Probable depression.", "We recommend booking a session with a perinatal specialist."},
}

// Service scores screening questionnaires.
type Service struct {
	// Intn picks a random index in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

func NewService() *Service {
	return &Service{Intn: rand.IntN}
}

// Score dispatches to the scorer for quiz.
func (s *Service) Score(quiz string, answers []int) (models.ScreeningResult, error) {
	switch quiz {
	case models.QuizPHQ9:
		return ScorePHQ9(answers)
	case models.QuizEPDS:
		return ScoreEPDS(answers)
	case models.QuizLifestyle:
		return s.AssessLifestyle(answers)
	default:
		return models.ScreeningResult{}, fmt.Errorf("%w: %q", ErrUnknownQuiz, quiz)
	}
}

// ScorePHQ9 scores the nine-item Patient Health Questionnaire. Any answer above
// zero on item 9 (thoughts of self-harm) sets SelfHarmRisk regardless of total.
func ScorePHQ9(answers []int) (models.ScreeningResult, error) {
	total, err := sumScale(answers, phq9Items)
	if err != nil {
		return models.ScreeningResult{}, fmt.Errorf("phq9: %w", err)
	}
	res := fromBand(models.QuizPHQ9, total, phq9Items*itemMaxVal, phq9Bands)
	res.SelfHarmRisk = answers[8] > 0
	return res, nil
}

// ScoreEPDS scores the ten-item Edinburgh Postnatal Depression Scale. Answers
// are the already-keyed item scores. Item 10 flags self-harm risk.
func ScoreEPDS(answers []int) (models.ScreeningResult, error) {
	total, err := sumScale(answers, epdsItems)
	if err != nil {
		return models.ScreeningResult{}, fmt.Errorf("epds: %w", err)
	}
	res := fromBand(models.QuizEPDS, total, epdsItems*itemMaxVal, epdsBands)
	res.SelfHarmRisk = answers[9] > 0
	return res, nil
}

func sumScale(answers []int, items int) (int, error) {
	if len(answers) != items {
		return 0, fmt.Errorf("%w: got %d answers, want %d", ErrInvalidAnswers, len(answers), items)
	}
	total := 0
	for i, a := range answers {
		if a < 0 || a > itemMaxVal {
			return 0, fmt.Errorf("%w: answer %d is %d, want 0-%d", ErrInvalidAnswers, i+1, a, itemMaxVal)
		}
		total += a
	}
	return total, nil
}

func fromBand(quiz string, total, max int, bands []band) models.ScreeningResult {
	res := models.ScreeningResult{Quiz: quiz, Score: total, MaxScore: max}
	for _, b := range bands {
		if total >= b.min && total <= b.max {
			res.Severity = b.severity
			res.Interpretation = b.interpretation
			res.Recommendation = b.advice
			break
		}
	}
	return res
}
