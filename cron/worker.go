package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindwell/models"
	"mindwell/services/booking"
	"mindwell/services/notification"
	"mindwell/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingReader looks up the booking a reminder refers to.
type BookingReader interface {
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
}

// InitReminderWorker runs the reminder worker in background and returns the
// server so the caller can shut it down.
func InitReminderWorker(redisOpt asynq.RedisClientOpt, notifSvc notification.NotificationService, bookings BookingReader, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, HandleReminderTask(notifSvc, bookings, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker gave up; reminders will not be sent")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask sends the reminder push unless the booking was cancelled
// after the reminder was queued.
func HandleReminderTask(notifSvc notification.NotificationService, bookings BookingReader, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			logger.Warn("Dropping reminder task", zap.Error(err))
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		log := logger.With(zap.String("bookingID", p.BookingID))

		b, err := bookings.GetBooking(ctx, p.BookingID)
		if errors.Is(err, booking.ErrNotFound) {
			log.Info("Booking gone; reminder skipped")
			return nil
		}
		if err != nil {
			return err
		}
		if !b.IsConfirmed() {
			log.Info("Booking cancelled; reminder skipped")
			return nil
		}

		if err := notifSvc.SendSessionReminder(ctx, p); err != nil {
			log.Warn("Reminder push failed", zap.Error(err))
			return err
		}
		log.Info("Reminder sent")
		return nil
	}
}
