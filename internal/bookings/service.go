package bookings

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/eliteproperties/realty-platform/internal/assistant"
	"github.com/eliteproperties/realty-platform/internal/calendar"
	"github.com/eliteproperties/realty-platform/internal/notify"
	"github.com/eliteproperties/realty-platform/internal/observability/metrics"
	"github.com/eliteproperties/realty-platform/pkg/logging"
)

var bookingsTracer = otel.Tracer("realty.internal.bookings")

// Notifier sends the client-facing confirmation for an accepted booking.
type Notifier interface {
	BookingConfirmation(ctx context.Context, details notify.BookingDetails) error
}

// Service accepts consultation requests. Each accepted booking also lands on
// the shared broker calendar; the conflict check there is advisory and never
// blocks acceptance.
type Service struct {
	repo         Repository
	events       calendar.Repository
	notifier     Notifier
	slotDuration time.Duration
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
}

var _ assistant.BookingSink = (*Service)(nil)

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithMetrics records booking submission metrics.
func WithMetrics(m *metrics.BookingMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs a bookings service. events and notifier may be nil
// when the calendar or email collaborators are not configured.
func NewService(repo Repository, events calendar.Repository, notifier Notifier, slotDuration time.Duration, logger *logging.Logger, opts ...ServiceOption) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if slotDuration <= 0 {
		slotDuration = calendar.DefaultSlotDuration
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		repo:         repo,
		events:       events,
		notifier:     notifier,
		slotDuration: slotDuration,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit persists a booking request, places it on the broker calendar, and
// sends the confirmation email. Calendar and email failures are logged but do
// not fail the submission.
func (s *Service) Submit(ctx context.Context, booking *Booking) (*Booking, error) {
	return s.submit(ctx, booking, "api")
}

func (s *Service) submit(ctx context.Context, booking *Booking, source string) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.submit")
	defer span.End()

	stored, err := s.repo.Create(ctx, booking)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission(source, false)
		return nil, err
	}
	s.metrics.ObserveSubmission(source, true)
	span.SetAttributes(attribute.String("realty.booking_id", stored.ID))
	s.logger.Info("booking submitted", "booking_id", stored.ID, "client", stored.ClientName)

	s.scheduleEvent(ctx, stored)

	if s.notifier != nil {
		details := notify.BookingDetails{
			Name:     stored.ClientName,
			Email:    stored.ClientEmail,
			Phone:    stored.ClientPhone,
			Date:     stored.PreferredDate,
			Time:     stored.PreferredTime,
			Location: stored.PreferredLocation,
			Message:  stored.Message,
		}
		if err := s.notifier.BookingConfirmation(ctx, details); err != nil {
			s.logger.Error("failed to send booking confirmation", "error", err, "booking_id", stored.ID)
		}
	}

	return stored, nil
}

// SubmitWizardBooking adapts a completed chat wizard record into a booking
// submission.
func (s *Service) SubmitWizardBooking(ctx context.Context, record assistant.BookingRecord) error {
	booking := &Booking{
		ClientName:        record.Name,
		ClientEmail:       record.Email,
		ClientPhone:       record.Phone,
		PreferredDate:     record.Date,
		PreferredTime:     record.Time,
		PreferredLocation: record.Location,
		Message:           "Scheduled via chat assistant",
	}
	_, err := s.submit(ctx, booking, "chat")
	return err
}

// scheduleEvent places the booking on the broker calendar. The wizard stores
// date and time verbatim, so an unparseable slot just skips the calendar.
func (s *Service) scheduleEvent(ctx context.Context, booking *Booking) {
	if s.events == nil {
		return
	}

	start, err := calendar.ParseSlot(booking.PreferredDate, booking.PreferredTime)
	if err != nil {
		s.logger.Warn("booking has no parseable slot, skipping calendar event",
			"booking_id", booking.ID, "date", booking.PreferredDate, "time", booking.PreferredTime)
		return
	}

	existing, err := s.events.List(ctx)
	if err != nil {
		s.logger.Error("failed to load calendar for conflict check", "error", err, "booking_id", booking.ID)
	} else if check := calendar.CheckConflict(start, s.slotDuration, existing); check.HasConflict {
		s.metrics.ObserveConflict()
		s.logger.Warn("booking overlaps existing calendar events",
			"booking_id", booking.ID, "conflicts", len(check.Conflicts))
	}

	event := &calendar.Event{
		ClientName: booking.ClientName,
		Start:      start,
		End:        start.Add(s.slotDuration),
		Property:   booking.PreferredLocation,
	}
	if _, err := s.events.Create(ctx, event); err != nil {
		s.logger.Error("failed to create calendar event", "error", err, "booking_id", booking.ID)
	}
}
