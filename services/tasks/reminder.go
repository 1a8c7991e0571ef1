package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mindwell/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSessionReminder = "reminder:session"

// NewReminderTask builds the reminder task for a booking. The task id is derived
// from the booking id so a booking is never reminded twice.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder_" + payload.BookingID),
		asynq.MaxRetry(3),
		asynq.Retention(24 * time.Hour),
	}

	return task, opts, nil
}

// ParseReminderPayload decodes a task built by NewReminderTask.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	if p.BookingID == "" {
		return p, errors.New("invalid reminder payload: missing booking id")
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues a push reminder Lead before each booked session.
type ReminderScheduler struct {
	Queue    Enqueuer
	Lead     time.Duration
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

// ScheduleSessionReminder enqueues the reminder for b. Sessions whose reminder
// time has already passed are skipped.
func (s *ReminderScheduler) ScheduleSessionReminder(ctx context.Context, b models.Booking) error {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, loc)
	if err != nil {
		return fmt.Errorf("session time for %s: %w", b.ID, err)
	}
	fireAt := start.Add(-s.Lead)

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if !fireAt.After(now) {
		s.logger().Debug("Reminder time already passed", zap.String("bookingID", b.ID))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID:     b.ID,
		UserID:        b.UserID,
		TherapistName: b.TherapistName,
		Date:          b.Date,
		Time:          b.Time,
		SessionType:   b.SessionType,
	}, fireAt)
	if err != nil {
		return err
	}

	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", b.ID, err)
	}
	s.logger().Info("Session reminder scheduled", zap.String("bookingID", b.ID), zap.String("taskID", info.ID), zap.Time("fireAt", fireAt))
	return nil
}

func (s *ReminderScheduler) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
