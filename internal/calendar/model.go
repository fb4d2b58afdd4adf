package calendar

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEventNotFound = errors.New("calendar: event not found")
	ErrInvalidEvent  = errors.New("calendar: invalid event")
)

// Event is a scheduled consultation on the shared broker calendar.
// JSON field names follow the original calendar API.
type Event struct {
	ID         string    `json:"id"`
	ClientName string    `json:"cname"`
	Start      time.Time `json:"estart"`
	End        time.Time `json:"eend"`
	Property   string    `json:"property"`
}

// Validate checks the fields required to store an event.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.ClientName) == "" {
		return ErrInvalidEvent
	}
	if e.Start.IsZero() || e.End.IsZero() || !e.End.After(e.Start) {
		return ErrInvalidEvent
	}
	return nil
}
