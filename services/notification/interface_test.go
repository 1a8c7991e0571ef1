package notification

import (
	"context"
	"errors"
	"testing"

	"mindwell/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "projects/test/messages/1", nil
}

func TestUserTopic(t *testing.T) {
	tests := []struct {
		userID string
		want   string
	}{
		{"abc123", "user_abc123"},
		{"a b@c", "user_a-b-c"},
		{"x.y~z", "user_x.y~z"},
	}
	for _, tt := range tests {
		if got := UserTopic(tt.userID); got != tt.want {
			t.Errorf("UserTopic(%q) = %q, want %q", tt.userID, got, tt.want)
		}
	}
}

func TestNotifyBookingConfirmed(t *testing.T) {
	sender := &fakeSender{}
	svc, err := NewDefaultNotificationService(sender, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	b := models.Booking{ID: "b1", UserID: "u1", TherapistName: "Dr. Sarah Johnson", Date: "2030-01-02", Time: "09:00", SessionType: "video"}
	if err := svc.NotifyBookingConfirmed(context.Background(), b); err != nil {
		t.Fatalf("NotifyBookingConfirmed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	m := sender.sent[0]
	if m.Topic != "user_u1" || m.Data["bookingId"] != "b1" || m.Data["type"] != "booking_confirmed" {
		t.Errorf("unexpected message: topic=%s data=%v", m.Topic, m.Data)
	}
}

func TestSendSessionReminder_SendError(t *testing.T) {
	boom := errors.New("fcm down")
	svc, _ := NewDefaultNotificationService(&fakeSender{err: boom}, zap.NewNop())

	err := svc.SendSessionReminder(context.Background(), models.ReminderPayload{BookingID: "b1", UserID: "u1"})
	if !errors.Is(err, boom) {
		t.Errorf("SendSessionReminder error = %v, want wrapped %v", err, boom)
	}
}

func TestNewDefaultNotificationService_NilSender(t *testing.T) {
	if _, err := NewDefaultNotificationService(nil, nil); err == nil {
		t.Error("expected error for nil sender")
	}
}
