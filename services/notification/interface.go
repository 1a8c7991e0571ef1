package notification

import (
	"context"
	"fmt"
	"regexp"

	"mindwell/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// MessageSender sends one FCM message. *messaging.Client satisfies it.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
	SendSessionReminder(ctx context.Context, reminder models.ReminderPayload) error
}

// DefaultNotificationService pushes to the per-user topic the web client subscribes to.
type DefaultNotificationService struct {
	sender MessageSender
	logger *zap.Logger
}

func NewDefaultNotificationService(sender MessageSender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sender == nil {
		return nil, fmt.Errorf("notification service initialization error: message sender is nil")
	}
	if logger == nil {
		logger = zap.L()
	}
	return &DefaultNotificationService{sender: sender, logger: logger}, nil
}

var topicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9\-_.~%]`)

// UserTopic is the FCM topic a user's devices subscribe to.
func UserTopic(userID string) string {
	return "user_" + topicUnsafe.ReplaceAllString(userID, "-")
}

func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, b models.Booking) error {
	title := "Session booked"
	body := fmt.Sprintf("Your %s session with %s is confirmed for %s at %s.", b.SessionType, b.TherapistName, b.Date, b.Time)
	return s.sendToUser(ctx, b.UserID, title, body, map[string]string{
		"type":      "booking_confirmed",
		"bookingId": b.ID,
	})
}

func (s *DefaultNotificationService) SendSessionReminder(ctx context.Context, r models.ReminderPayload) error {
	title := "Upcoming session"
	body := fmt.Sprintf("Your %s session with %s starts at %s.", r.SessionType, r.TherapistName, r.Time)
	return s.sendToUser(ctx, r.UserID, title, body, map[string]string{
		"type":      "session_reminder",
		"bookingId": r.BookingID,
		"date":      r.Date,
		"time":      r.Time,
	})
}

func (s *DefaultNotificationService) sendToUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	if userID == "" {
		return fmt.Errorf("sendToUser: empty user id")
	}
	msg := &messaging.Message{
		Topic: UserTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{"Urgency": "high"},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendToUser: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Push sent", zap.String("topic", msg.Topic), zap.String("messageID", id))
	return nil
}
