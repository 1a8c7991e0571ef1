package screening

import (
	"fmt"

	"mindwell/models"
)

// lifestyleWeights[q][choice] is the risk weight of a choice on question q:
// sleep, exercise, diet, alcohol, screen time, social contact, stress, loneliness.
var lifestyleWeights = [][]int{
	{0, 1, 2, 3}, // hours of sleep: 7-9, 6, 5, <5
	{0, 1, 2, 3}, // exercise days per week: 5+, 3-4, 1-2, none
	{0, 1, 2, 3}, // balanced meals per day: 3, 2, 1, irregular
	{0, 1, 2, 3}, // alcohol: never, monthly, weekly, daily
	{0, 0, 1, 2}, // leisure screen hours: <1, 1-3, 3-6, 6+
	{0, 1, 2, 3}, // time with friends or family: daily, weekly, monthly, rarely
	{0, 1, 2, 3}, // perceived stress: low .. very high
	{0, 1, 2, 3}, // feeling lonely: never .. always
}

var lifestyleBands = []struct {
	min, max       int
	risk           string
	interpretation string
}{
	{0, 7, "low", "Your lifestyle shows few risk factors for low mood."},
	{8, 15, "moderate", "Some of your habits may be affecting your mood."},
	{16, 23, "high", "Several habits are putting your mental health at risk."},
}

var lifestyleAdvice = map[string][]string{
	"low": {
		"Keep your routine steady; consistency protects your mood.",
		"Try a new outdoor activity this week to keep things fresh.",
		"Share a healthy habit with a friend and do it together.",
	},
	"moderate": {
		"Aim for a fixed bedtime and 7-9 hours of sleep.",
		"A 20 minute walk three times a week can lift your mood.",
		"Plan one screen-free evening and spend it with someone you like.",
		"Try our breathing exercises when stress builds up.",
	},
	"high": {
		"Consider booking a session with one of our therapists.",
		"Start small: one regular meal time and one short walk each day.",
		"Reach out to someone you trust today and tell them how you feel.",
		"Cutting back on alcohol can noticeably improve sleep and mood.",
	},
}

// AssessLifestyle maps survey choices to a risk band and picks one piece of advice
// for that band at random.
func (s *Service) AssessLifestyle(answers []int) (models.ScreeningResult, error) {
	if len(answers) != len(lifestyleWeights) {
		return models.ScreeningResult{}, fmt.Errorf("lifestyle: %w: got %d answers, want %d",
			ErrInvalidAnswers, len(answers), len(lifestyleWeights))
	}
	total, max := 0, 0
	for q, choice := range answers {
		weights := lifestyleWeights[q]
		if choice < 0 || choice >= len(weights) {
			return models.ScreeningResult{}, fmt.Errorf("lifestyle: %w: answer %d is %d, want 0-%d",
				ErrInvalidAnswers, q+1, choice, len(weights)-1)
		}
		total += weights[choice]
		max += weights[len(weights)-1]
	}

	res := models.ScreeningResult{Quiz: models.QuizLifestyle, Score: total, MaxScore: max}
	for _, b := range lifestyleBands {
		if total >= b.min && total <= b.max {
			res.Severity = b.risk
			res.Interpretation = b.interpretation
			break
		}
	}
	advice := lifestyleAdvice[res.Severity]
	res.Recommendation = advice[s.pick(len(advice))]
	return res, nil
}

func (s *Service) pick(n int) int {
	if s.Intn == nil {
		return 0
	}
	return s.Intn(n)
}
