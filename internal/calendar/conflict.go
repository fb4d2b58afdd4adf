package calendar

import (
	"fmt"
	"time"
)

// DefaultSlotDuration is the fixed length of a consultation slot.
const DefaultSlotDuration = time.Hour

// ConflictCheck is the result of testing a proposed slot against the calendar.
type ConflictCheck struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	HasConflict bool      `json:"hasConflict"`
	Conflicts   []Event   `json:"conflicts"`
}

// ParseSlot combines a YYYY-MM-DD date and an HH:MM time into the start of a
// proposed slot.
func ParseSlot(date, clock string) (time.Time, error) {
	start, err := time.Parse("2006-01-02T15:04", date+"T"+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid date/time %q %q: %w", date, clock, err)
	}
	return start, nil
}

// CheckConflict tests a proposed slot of the given duration against existing
// events. Two intervals conflict iff start < existingEnd && end >
// existingStart; touching endpoints do not conflict.
func CheckConflict(start time.Time, duration time.Duration, events []Event) ConflictCheck {
	if duration <= 0 {
		duration = DefaultSlotDuration
	}
	end := start.Add(duration)

	check := ConflictCheck{
		Start:     start,
		End:       end,
		Conflicts: []Event{},
	}
	for _, ev := range events {
		if start.Before(ev.End) && end.After(ev.Start) {
			check.Conflicts = append(check.Conflicts, ev)
		}
	}
	check.HasConflict = len(check.Conflicts) > 0
	return check
}
