package assistant

import "fmt"

// Booking wizard step sequence. Exactly one field is collected per turn.
const (
	stepName = iota + 1
	stepEmail
	stepPhone
	stepDate
	stepTime
	stepLocation
)

// BookingFlow is the active state of the six-step booking wizard.
type BookingFlow struct {
	Step      int               `json:"step"`
	Collected map[string]string `json:"collected"`
}

// BookingRecord holds the fields a completed wizard hands to the booking
// collaborator. The wizard itself never persists anything.
type BookingRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// StartBookingFlow opens a new wizard at the name step and returns the
// opening prompt.
func StartBookingFlow() (*BookingFlow, string) {
	return &BookingFlow{Step: stepName, Collected: map[string]string{}},
		"Let's schedule your meeting! First, what's your full name?"
}

// Advance consumes one message as the answer to the current step. The message
// is stored verbatim; format validation belongs to the booking submission
// layer, not here. On the final step it returns the assembled record with
// done=true and the flow must be discarded by the caller.
func (f *BookingFlow) Advance(message string) (reply string, record *BookingRecord, done bool) {
	if f.Collected == nil {
		f.Collected = map[string]string{}
	}

	switch f.Step {
	case stepName:
		f.Collected["name"] = message
		f.Step = stepEmail
		return fmt.Sprintf("Nice to meet you, %s! What's your email address?", message), nil, false

	case stepEmail:
		f.Collected["email"] = message
		f.Step = stepPhone
		return "Great! What's your phone number?", nil, false

	case stepPhone:
		f.Collected["phone"] = message
		f.Step = stepDate
		return "What date would work best for you? (Please use format: YYYY-MM-DD)", nil, false

	case stepDate:
		f.Collected["date"] = message
		f.Step = stepTime
		return "What time would you prefer? (Please use format: HH:MM)", nil, false

	case stepTime:
		f.Collected["time"] = message
		f.Step = stepLocation
		return "Where would you like to meet? (Our office, property location, or online)", nil, false

	case stepLocation:
		rec := &BookingRecord{
			Name:     f.Collected["name"],
			Email:    f.Collected["email"],
			Phone:    f.Collected["phone"],
			Date:     f.Collected["date"],
			Time:     f.Collected["time"],
			Location: message,
		}
		confirmation := fmt.Sprintf(
			"Perfect! I've scheduled your meeting for %s at %s at %s. Our broker will contact you at %s to confirm the details. Is there anything specific you'd like to discuss during the meeting?",
			rec.Date, rec.Time, rec.Location, rec.Email,
		)
		return confirmation, rec, true

	default:
		return "Thank you for providing all the details! Our team will be in touch soon.", nil, true
	}
}
