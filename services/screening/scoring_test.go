package screening

import (
	"errors"
	"testing"

	"mindwell/models"
)

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScorePHQ9(t *testing.T) {
	tests := []struct {
		name         string
		answers      []int
		wantScore    int
		wantSeverity string
		wantSelfHarm bool
	}{
		{"all zero", repeat(0, 9), 0, "minimal", false},
		{"upper minimal", []int{1, 1, 1, 1, 0, 0, 0, 0, 0}, 4, "minimal", false},
		{"lower mild", []int{1, 1, 1, 1, 1, 0, 0, 0, 0}, 5, "mild", false},
		{"moderate", []int{2, 2, 2, 2, 2, 0, 0, 0, 0}, 10, "moderate", false},
		{"moderately severe", []int{3, 3, 3, 3, 3, 0, 0, 0, 0}, 15, "moderately severe", false},
		{"severe with item 9", []int{3, 3, 3, 3, 3, 2, 2, 0, 1}, 20, "severe", true},
		{"item 9 alone", []int{0, 0, 0, 0, 0, 0, 0, 0, 1}, 1, "minimal", true},
		{"max", repeat(3, 9), 27, "severe", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScorePHQ9(tt.answers)
			if err != nil {
				t.Fatalf("ScorePHQ9() error = %v", err)
			}
			if got.Score != tt.wantScore || got.Severity != tt.wantSeverity || got.SelfHarmRisk != tt.wantSelfHarm {
				t.Errorf("ScorePHQ9() = %d/%s/%v, want %d/%s/%v",
					got.Score, got.Severity, got.SelfHarmRisk, tt.wantScore, tt.wantSeverity, tt.wantSelfHarm)
			}
			if got.MaxScore != 27 {
				t.Errorf("MaxScore = %d, want 27", got.MaxScore)
			}
		})
	}
}

func TestScoreEPDS(t *testing.T) {
	tests := []struct {
		name         string
		answers      []int
		wantSeverity string
		wantSelfHarm bool
	}{
		{"zero", repeat(0, 10), "unlikely", false},
		{"nine", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 0}, "unlikely", false},
		{"ten", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, "possible", true},
		{"twelve", []int{2, 2, 1, 1, 1, 1, 1, 1, 2, 0}, "possible", false},
		{"thirteen", []int{2, 2, 2, 1, 1, 1, 1, 1, 2, 0}, "probable", false},
		{"max", repeat(3, 10), "probable", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreEPDS(tt.answers)
			if err != nil {
				t.Fatalf("ScoreEPDS() error = %v", err)
			}
			if got.Severity != tt.wantSeverity || got.SelfHarmRisk != tt.wantSelfHarm {
				t.Errorf("ScoreEPDS() = %s/%v (score %d), want %s/%v",
					got.Severity, got.SelfHarmRisk, got.Score, tt.wantSeverity, tt.wantSelfHarm)
			}
		})
	}
}

func TestScore_InvalidAnswers(t *testing.T) {
	svc := &Service{}
	tests := []struct {
		name    string
		quiz    string
		answers []int
	}{
		{"phq9 too few", models.QuizPHQ9, repeat(0, 8)},
		{"phq9 out of range", models.QuizPHQ9, []int{0, 0, 0, 4, 0, 0, 0, 0, 0}},
		{"epds negative", models.QuizEPDS, []int{0, 0, -1, 0, 0, 0, 0, 0, 0, 0}},
		{"lifestyle too many", models.QuizLifestyle, repeat(0, 9)},
		{"lifestyle bad choice", models.QuizLifestyle, []int{0, 0, 0, 0, 4, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Score(tt.quiz, tt.answers); !errors.Is(err, ErrInvalidAnswers) {
				t.Errorf("Score() error = %v, want ErrInvalidAnswers", err)
			}
		})
	}
	if _, err := svc.Score("gad7", nil); !errors.Is(err, ErrUnknownQuiz) {
		t.Errorf("Score(gad7) error = %v, want ErrUnknownQuiz", err)
	}
}

func TestAssessLifestyle(t *testing.T) {
	svc := &Service{Intn: func(n int) int { return n - 1 }}

	tests := []struct {
		name     string
		answers  []int
		wantRisk string
		wantTip  string
	}{
		{"healthy", repeat(0, 8), "low", lifestyleAdvice["low"][2]},
		{"mixed", repeat(2, 8), "moderate", lifestyleAdvice["moderate"][3]},
		{"risky", repeat(3, 8), "high", lifestyleAdvice["high"][3]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.AssessLifestyle(tt.answers)
			if err != nil {
				t.Fatalf("AssessLifestyle() error = %v", err)
			}
			if got.Severity != tt.wantRisk {
				t.Errorf("risk = %s (score %d), want %s", got.Severity, got.Score, tt.wantRisk)
			}
			if got.Recommendation != tt.wantTip {
				t.Errorf("recommendation = %q, want %q", got.Recommendation, tt.wantTip)
			}
			if got.MaxScore != 23 {
				t.Errorf("MaxScore = %d, want 23", got.MaxScore)
			}
		})
	}
}
