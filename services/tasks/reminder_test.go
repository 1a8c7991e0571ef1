package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindwell/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeQueue struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	q.opts = append(q.opts, opts)
	return &asynq.TaskInfo{ID: "reminder_x"}, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) interface{} {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func TestScheduleSessionReminder(t *testing.T) {
	loc := time.UTC
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, loc)
	booking := models.Booking{ID: "u1_1_2030-01-02_09-00", UserID: "u1", TherapistName: "Dr. Sarah Johnson", Date: "2030-01-02", Time: "09:00", SessionType: "video"}

	tests := []struct {
		name      string
		booking   models.Booking
		queueErr  error
		wantTasks int
		wantErr   bool
	}{
		{"future session", booking, nil, 1, false},
		{"reminder time passed", models.Booking{ID: "b2", Date: "2030-01-01", Time: "09:00"}, nil, 0, false},
		{"duplicate task id", booking, asynq.ErrTaskIDConflict, 0, false},
		{"queue down", booking, errors.New("dial tcp: refused"), 0, true},
		{"bad time", models.Booking{ID: "b3", Date: "2030-01-02", Time: "nine"}, nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQueue{err: tt.queueErr}
			s := &ReminderScheduler{Queue: q, Lead: time.Hour, Location: loc, Now: func() time.Time { return now }, Logger: zap.NewNop()}

			err := s.ScheduleSessionReminder(context.Background(), tt.booking)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ScheduleSessionReminder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(q.tasks) != tt.wantTasks {
				t.Fatalf("enqueued %d tasks, want %d", len(q.tasks), tt.wantTasks)
			}
			if tt.wantTasks == 0 {
				return
			}
			want := time.Date(2030, 1, 2, 8, 0, 0, 0, loc)
			if got, _ := optionValue(q.opts[0], asynq.ProcessAtOpt).(time.Time); !got.Equal(want) {
				t.Errorf("ProcessAt = %v, want %v", got, want)
			}
			if got := optionValue(q.opts[0], asynq.TaskIDOpt); got != "reminder_"+tt.booking.ID {
				t.Errorf("TaskID = %v", got)
			}
			p, err := ParseReminderPayload(q.tasks[0])
			if err != nil || p.BookingID != tt.booking.ID || p.UserID != "u1" {
				t.Errorf("payload = %+v, %v", p, err)
			}
		})
	}
}

func TestParseReminderPayload_Invalid(t *testing.T) {
	for _, raw := range []string{"not json", "{}"} {
		if _, err := ParseReminderPayload(asynq.NewTask(TypeSessionReminder, []byte(raw))); err == nil {
			t.Errorf("ParseReminderPayload(%q) expected error", raw)
		}
	}
}
