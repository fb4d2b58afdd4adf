package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	sent []EmailMessage
}

func (s *capturingSender) Send(_ context.Context, msg EmailMessage) error {
	s.sent = append(s.sent, msg)
	return nil
}

func TestBookingConfirmation(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(sender, nil)

	err := svc.BookingConfirmation(t.Context(), BookingDetails{
		Name:     "John Smith",
		Email:    "john@email.com",
		Date:     "2025-03-10",
		Time:     "14:00",
		Location: "Our office",
		Message:  "Looking forward to it.",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "john@email.com", msg.To)
	assert.Equal(t, "John Smith", msg.ToName)
	assert.Contains(t, msg.Body, "Date: 2025-03-10")
	assert.Contains(t, msg.Body, "Time: 14:00")
	assert.Contains(t, msg.Body, "Location: Our office")
	assert.Contains(t, msg.Body, "Your note: Looking forward to it.")
}

func TestBookingConfirmationRequiresEmail(t *testing.T) {
	svc := NewService(&capturingSender{}, nil)

	err := svc.BookingConfirmation(t.Context(), BookingDetails{Name: "John"})
	assert.Error(t, err)
}

func TestBookingConfirmationWithoutSenderIsNoop(t *testing.T) {
	svc := NewService(nil, nil)

	err := svc.BookingConfirmation(t.Context(), BookingDetails{Name: "John", Email: "j@e.com"})
	assert.NoError(t, err)
}

func TestSendGridSenderRequiresAPIKey(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{}, nil))
}

func TestStubEmailSender(t *testing.T) {
	sender := NewStubEmailSender(nil)
	assert.NoError(t, sender.Send(t.Context(), EmailMessage{To: "j@e.com", Subject: "hi"}))
}
