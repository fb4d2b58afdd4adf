package assistant

import "strings"

// Intent is the coarse category assigned to one user message.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentProperty Intent = "property-search"
	IntentBooking  Intent = "booking"
	IntentFallback Intent = "fallback"
)

type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules are evaluated top-down; the first rule whose vocabulary appears
// in the message wins. Property keywords are checked before booking keywords,
// so a message mentioning both resolves to a property search.
var intentRules = []intentRule{
	{IntentGreeting, []string{"hello", "hi", "hey"}},
	{IntentProperty, []string{"property", "house", "apartment", "plot", "buy", "purchase", "show", "find", "search", "looking"}},
	{IntentBooking, []string{"book", "meeting", "appointment", "broker", "schedule", "consultation"}},
}

// ClassifyIntent maps a raw message to an intent by keyword containment.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		if containsAny(lower, rule.keywords...) {
			return rule.intent
		}
	}
	return IntentFallback
}

func containsAny(lower string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
