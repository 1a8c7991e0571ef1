package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"mindwell/models"

	"github.com/google/uuid"
)

// MaxQuizHistory is how many quiz results are kept per user.
const MaxQuizHistory = 50

var (
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidUser     = errors.New("user id is required")
	ErrInvalidCourse   = errors.New("course id is required")
)

// Tracker records quiz results and course progress per user.
// Read-modify-write cycles are not atomic; each user only writes their own keys.
type Tracker struct {
	Store KVStore
	Now   func() time.Time
}

func NewTracker(store KVStore) *Tracker {
	return &Tracker{Store: store, Now: time.Now}
}

func quizKey(userID string) string   { return "quizzes:" + userID }
func courseKey(userID string) string { return "courses:" + userID }

// RecordQuizResult prepends result to the user's history and returns the stored record.
func (t *Tracker) RecordQuizResult(ctx context.Context, userID string, result models.ScreeningResult, answers []int) (*models.QuizRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	history, err := t.QuizHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec := models.QuizRecord{
		ID:         uuid.NewString(),
		Result:     result,
		Answers:    append([]int(nil), answers...),
		RecordedAt: t.now().UTC(),
	}
	history = append([]models.QuizRecord{rec}, history...)
	if len(history) > MaxQuizHistory {
		history = history[:MaxQuizHistory]
	}
	if err := t.put(ctx, quizKey(userID), history); err != nil {
		return nil, err
	}
	return &rec, nil
}

// QuizHistory returns the user's quiz results, newest first.
func (t *Tracker) QuizHistory(ctx context.Context, userID string) ([]models.QuizRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	history := []models.QuizRecord{}
	if err := t.get(ctx, quizKey(userID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ClearQuizHistory removes every stored quiz result for the user.
func (t *Tracker) ClearQuizHistory(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}
	if err := t.Store.Delete(ctx, quizKey(userID)); err != nil {
		return fmt.Errorf("clear quiz history: %w", err)
	}
	return nil
}

// SetCourseProgress stores the completion percentage for one course.
func (t *Tracker) SetCourseProgress(ctx context.Context, userID, courseID string, percent int) (*models.CourseProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrInvalidCourse
	}
	if percent < 0 || percent > 100 {
		return nil, ErrInvalidProgress
	}
	progress := map[string]models.CourseProgress{}
	if err := t.get(ctx, courseKey(userID), &progress); err != nil {
		return nil, err
	}
	p := models.CourseProgress{CourseID: courseID, Percent: percent, UpdatedAt: t.now().UTC()}
	progress[courseID] = p
	if err := t.put(ctx, courseKey(userID), progress); err != nil {
		return nil, err
	}
	return &p, nil
}

// CourseProgress returns the user's progress for every course, sorted by course id.
func (t *Tracker) CourseProgress(ctx context.Context, userID string) ([]models.CourseProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	progress := map[string]models.CourseProgress{}
	if err := t.get(ctx, courseKey(userID), &progress); err != nil {
		return nil, err
	}
	out := make([]models.CourseProgress, 0, len(progress))
	for _, p := range progress {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

// get decodes key into v, leaving v untouched when the key is missing.
func (t *Tracker) get(ctx context.Context, key string, v any) error {
	raw, err := t.Store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (t *Tracker) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := t.Store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
