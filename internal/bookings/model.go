package bookings

import (
	"errors"
	"strings"
	"time"
)

// Status tracks a booking through its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrBookingNotFound = errors.New("bookings: booking not found")
	ErrInvalidBooking  = errors.New("bookings: missing required fields: clientName, clientEmail, clientPhone")
	ErrInvalidStatus   = errors.New("bookings: invalid status")
)

// Booking is a broker consultation request, submitted either through the
// booking form or by the chat assistant's wizard.
type Booking struct {
	ID                string    `json:"id"`
	PropertyID        string    `json:"propertyId,omitempty"`
	ClientName        string    `json:"clientName"`
	ClientEmail       string    `json:"clientEmail"`
	ClientPhone       string    `json:"clientPhone"`
	PreferredDate     string    `json:"preferredDate"`
	PreferredTime     string    `json:"preferredTime"`
	PreferredLocation string    `json:"preferredLocation,omitempty"`
	Message           string    `json:"message,omitempty"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Validate checks the fields required to accept a booking.
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.ClientName) == "" ||
		strings.TrimSpace(b.ClientEmail) == "" ||
		strings.TrimSpace(b.ClientPhone) == "" {
		return ErrInvalidBooking
	}
	return nil
}

// Filter narrows a booking listing. Zero values mean "no constraint".
type Filter struct {
	Status     Status
	PropertyID string
}

// Matches reports whether the booking satisfies every present field.
func (f Filter) Matches(b Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.PropertyID != "" && b.PropertyID != f.PropertyID {
		return false
	}
	return true
}
