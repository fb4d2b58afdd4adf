package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// BookingDetails carries the fields the confirmation email interpolates.
type BookingDetails struct {
	Name     string
	Email    string
	Phone    string
	Date     string
	Time     string
	Location string
	Message  string
}

// Service sends client-facing notifications.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender disables email.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

// BookingConfirmation emails the client that their consultation request was
// received.
func (s *Service) BookingConfirmation(ctx context.Context, details BookingDetails) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping booking confirmation")
		return nil
	}
	if details.Email == "" {
		return fmt.Errorf("notify: booking confirmation requires a client email")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", details.Name)
	body.WriteString("Thank you for scheduling a consultation with Elite Properties.\n\n")
	fmt.Fprintf(&body, "Date: %s\nTime: %s\n", details.Date, details.Time)
	if details.Location != "" {
		fmt.Fprintf(&body, "Location: %s\n", details.Location)
	}
	if details.Message != "" {
		fmt.Fprintf(&body, "\nYour note: %s\n", details.Message)
	}
	body.WriteString("\nOne of our brokers will contact you shortly to confirm the details.\n\nElite Properties")

	msg := EmailMessage{
		To:      details.Email,
		ToName:  details.Name,
		Subject: "Your broker consultation request",
		Body:    body.String(),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: booking confirmation: %w", err)
	}
	return nil
}
