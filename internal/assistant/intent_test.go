package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{"greeting hello", "Hello!", IntentGreeting},
		{"greeting hey", "hey, anyone around?", IntentGreeting},
		{"property house", "I want to buy a house", IntentProperty},
		{"property search", "search for apartments", IntentProperty},
		{"property looking", "looking to relocate soon", IntentProperty},
		{"greeting inside another word", "I'm looking for something new", IntentGreeting},
		{"booking meeting", "can we set up a meeting?", IntentBooking},
		{"booking consultation", "I'd like a consultation", IntentBooking},
		{"fallback", "tell me a joke", IntentFallback},
		{"empty", "", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.message))
		})
	}
}

func TestClassifyIntentPriorityOrder(t *testing.T) {
	// Greeting outranks everything, property outranks booking.
	assert.Equal(t, IntentGreeting, ClassifyIntent("hello, I want to book a house tour"))
	assert.Equal(t, IntentProperty, ClassifyIntent("find me a house and book a meeting"))
}
