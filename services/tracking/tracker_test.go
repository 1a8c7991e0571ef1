package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindwell/models"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

func newTestTracker() *Tracker {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Tracker{
		Store: NewMemoryKVStore(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	}
}

func TestQuizHistory_NewestFirst(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()

	for _, score := range []int{3, 12, 21} {
		if _, err := tr.RecordQuizResult(ctx, "u1", models.ScreeningResult{Quiz: models.QuizPHQ9, Score: score}, []int{score}); err != nil {
			t.Fatalf("RecordQuizResult: %v", err)
		}
	}

	history, err := tr.QuizHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("QuizHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(history))
	}
	if history[0].Result.Score != 21 || history[2].Result.Score != 3 {
		t.Errorf("history not newest first: %d ... %d", history[0].Result.Score, history[2].Result.Score)
	}
	if history[0].ID == "" || history[0].ID == history[1].ID {
		t.Errorf("records should have distinct ids")
	}

	other, err := tr.QuizHistory(ctx, "u2")
	if err != nil || len(other) != 0 {
		t.Errorf("QuizHistory(u2) = %v, %v; want empty", other, err)
	}
}

func TestQuizHistory_Capped(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()

	for i := 0; i < MaxQuizHistory+5; i++ {
		if _, err := tr.RecordQuizResult(ctx, "u1", models.ScreeningResult{Score: i}, nil); err != nil {
			t.Fatalf("RecordQuizResult: %v", err)
		}
	}
	history, _ := tr.QuizHistory(ctx, "u1")
	if len(history) != MaxQuizHistory {
		t.Fatalf("len(history) = %d, want %d", len(history), MaxQuizHistory)
	}
	if history[0].Result.Score != MaxQuizHistory+4 {
		t.Errorf("newest score = %d, want %d", history[0].Result.Score, MaxQuizHistory+4)
	}
}

func TestClearQuizHistory(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()

	if _, err := tr.RecordQuizResult(ctx, "u1", models.ScreeningResult{Score: 1}, nil); err != nil {
		t.Fatal(err)
	}
	if err := tr.ClearQuizHistory(ctx, "u1"); err != nil {
		t.Fatalf("ClearQuizHistory: %v", err)
	}
	history, _ := tr.QuizHistory(ctx, "u1")
	if len(history) != 0 {
		t.Errorf("history after clear = %d entries, want 0", len(history))
	}
}

func TestSetCourseProgress(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()

	tests := []struct {
		name    string
		course  string
		percent int
		wantErr error
	}{
		{"start", "cbt-basics", 0, nil},
		{"update", "cbt-basics", 40, nil},
		{"complete other", "mindful-breathing", 100, nil},
		{"negative", "cbt-basics", -1, ErrInvalidProgress},
		{"over", "cbt-basics", 101, ErrInvalidProgress},
		{"no course", " ", 10, ErrInvalidCourse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.SetCourseProgress(ctx, "u1", tt.course, tt.percent)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetCourseProgress() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	progress, err := tr.CourseProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("CourseProgress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("len(progress) = %d, want 2", len(progress))
	}
	if progress[0].CourseID != "cbt-basics" || progress[0].Percent != 40 {
		t.Errorf("progress[0] = %+v, want cbt-basics at 40", progress[0])
	}
	if progress[1].CourseID != "mindful-breathing" || progress[1].Percent != 100 {
		t.Errorf("progress[1] = %+v, want mindful-breathing at 100", progress[1])
	}
}

func TestTracker_RequiresUser(t *testing.T) {
	tr := newTestTracker()
	if _, err := tr.QuizHistory(context.Background(), ""); !errors.Is(err, ErrInvalidUser) {
		t.Errorf("QuizHistory(\"\") error = %v, want ErrInvalidUser", err)
	}
	if err := tr.ClearQuizHistory(context.Background(), ""); !errors.Is(err, ErrInvalidUser) {
		t.Errorf("ClearQuizHistory(\"\") error = %v, want ErrInvalidUser", err)
	}
}

func TestTracker_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	tr := NewTracker(failingStore{err: boom})

	if _, err := tr.QuizHistory(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Errorf("QuizHistory error = %v, want wrapped %v", err, boom)
	}
	if _, err := tr.SetCourseProgress(context.Background(), "u1", "c", 5); !errors.Is(err, boom) {
		t.Errorf("SetCourseProgress error = %v, want wrapped %v", err, boom)
	}
}

func TestMemoryKVStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryKVStore()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}
	val := []byte("v1")
	_ = s.Set(ctx, "k", val)
	val[0] = 'x'
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Errorf("Get(k) = %q, %v; want v1", got, err)
	}
	_ = s.Delete(ctx, "k")
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrKeyNotFound", err)
	}
}
