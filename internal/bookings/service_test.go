package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteproperties/realty-platform/internal/assistant"
	"github.com/eliteproperties/realty-platform/internal/calendar"
	"github.com/eliteproperties/realty-platform/internal/notify"
)

type recordingNotifier struct {
	mu      sync.Mutex
	details []notify.BookingDetails
}

func (n *recordingNotifier) BookingConfirmation(_ context.Context, details notify.BookingDetails) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.details = append(n.details, details)
	return nil
}

func validBooking() *Booking {
	return &Booking{
		ClientName:        "John Smith",
		ClientEmail:       "john.smith@email.com",
		ClientPhone:       "+1-555-0123",
		PreferredDate:     "2025-03-10",
		PreferredTime:     "14:00",
		PreferredLocation: "Our office",
		Message:           "Interested in the villa.",
	}
}

func TestServiceSubmit(t *testing.T) {
	repo := NewInMemoryRepository()
	events := calendar.NewInMemoryRepository()
	notifier := &recordingNotifier{}
	svc := NewService(repo, events, notifier, time.Hour, nil)

	stored, err := svc.Submit(t.Context(), validBooking())
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, StatusPending, stored.Status)

	// The accepted booking lands on the broker calendar as a one-hour slot.
	evs, err := events.List(t.Context())
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "John Smith", evs[0].ClientName)
	assert.Equal(t, time.Hour, evs[0].End.Sub(evs[0].Start))
	assert.Equal(t, "Our office", evs[0].Property)

	require.Len(t, notifier.details, 1)
	assert.Equal(t, "john.smith@email.com", notifier.details[0].Email)
}

func TestServiceSubmitRejectsInvalid(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, nil, time.Hour, nil)

	_, err := svc.Submit(t.Context(), &Booking{ClientName: "John"})
	assert.ErrorIs(t, err, ErrInvalidBooking)
}

func TestServiceSubmitConflictIsAdvisory(t *testing.T) {
	repo := NewInMemoryRepository()
	events := calendar.NewInMemoryRepository()
	svc := NewService(repo, events, nil, time.Hour, nil)

	_, err := svc.Submit(t.Context(), validBooking())
	require.NoError(t, err)

	// A second booking in the same slot is still accepted.
	overlapping := validBooking()
	overlapping.ClientName = "Eva Svoboda"
	overlapping.PreferredTime = "14:30"
	stored, err := svc.Submit(t.Context(), overlapping)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)

	evs, err := events.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, evs, 2)
}

func TestServiceSubmitSkipsCalendarOnBadSlot(t *testing.T) {
	repo := NewInMemoryRepository()
	events := calendar.NewInMemoryRepository()
	svc := NewService(repo, events, nil, time.Hour, nil)

	booking := validBooking()
	booking.PreferredDate = "next tuesday"
	booking.PreferredTime = "afternoon"

	stored, err := svc.Submit(t.Context(), booking)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	evs, err := events.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestServiceSubmitWizardBooking(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, calendar.NewInMemoryRepository(), nil, time.Hour, nil)

	record := assistant.BookingRecord{
		Name:     "John Smith",
		Email:    "john@email.com",
		Phone:    "+1-555-0100",
		Date:     "2025-03-10",
		Time:     "14:00",
		Location: "online",
	}
	require.NoError(t, svc.SubmitWizardBooking(t.Context(), record))

	stored, err := repo.List(t.Context(), Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "John Smith", stored[0].ClientName)
	assert.Equal(t, "Scheduled via chat assistant", stored[0].Message)
	assert.Equal(t, StatusPending, stored[0].Status)
}
