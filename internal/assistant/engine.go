package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/eliteproperties/realty-platform/internal/brokers"
	"github.com/eliteproperties/realty-platform/internal/insights"
	"github.com/eliteproperties/realty-platform/internal/properties"
	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Reply pools per intent. Tests assert pool membership, never a specific
// paraphrase.
var replyPools = map[Intent][]string{
	IntentGreeting: {
		"Hello! I'm here to help you find your dream property or schedule a meeting with our brokers. What can I assist you with today?",
		"Hi there! I'm your real estate assistant. I can help you explore properties or book meetings with our expert brokers. How may I help?",
		"Welcome! I'm here to make your property search easy. Ask me about available properties or schedule a broker consultation.",
	},
	IntentFallback: {
		"I'm here to help with property searches and broker meetings. Could you tell me more about what you're looking for?",
		"I can assist you with finding properties or scheduling broker consultations. What would you like to know?",
		"I'd love to help! I specialize in property inquiries and booking meetings with brokers. What can I do for you?",
	},
}

// Engine runs the per-turn conversation logic over the read-only listing,
// broker, and insight collections. It mutates only the Context handed to it;
// each chat session owns exactly one Context.
type Engine struct {
	listings properties.Repository
	brokers  brokers.Repository
	insights insights.Repository
	matcher  *Matcher
	actions  []QuickAction
	pick     func(n int) int
	logger   *logging.Logger
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithReplyPicker overrides the random pool selection, for tests.
func WithReplyPicker(pick func(n int) int) EngineOption {
	return func(e *Engine) {
		if pick != nil {
			e.pick = pick
		}
	}
}

// WithQuickActions overrides the default action chips.
func WithQuickActions(actions []QuickAction) EngineOption {
	return func(e *Engine) {
		e.actions = actions
	}
}

// NewEngine wires the engine to its collaborators.
func NewEngine(listings properties.Repository, brokerRepo brokers.Repository, insightRepo insights.Repository, matcher *Matcher, logger *logging.Logger, opts ...EngineOption) *Engine {
	if listings == nil {
		panic("assistant: listings repository cannot be nil")
	}
	if brokerRepo == nil {
		panic("assistant: brokers repository cannot be nil")
	}
	if insightRepo == nil {
		panic("assistant: insights repository cannot be nil")
	}
	if matcher == nil {
		matcher = NewMatcher(0, 0, 0)
	}
	if logger == nil {
		logger = logging.Default()
	}

	e := &Engine{
		listings: listings,
		brokers:  brokerRepo,
		insights: insightRepo,
		matcher:  matcher,
		actions:  DefaultQuickActions(),
		pick:     rand.IntN,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTurn runs one message through the conversation, mutating convo in
// place and returning the reply for this turn.
func (e *Engine) ProcessTurn(ctx context.Context, convo *Context, message string) (*Reply, error) {
	if convo == nil {
		return nil, errors.New("assistant: conversation context required")
	}

	// An active wizard consumes every message until it completes, regardless
	// of what the classifier would say about it.
	if convo.BookingFlow != nil {
		text, record, done := convo.BookingFlow.Advance(message)
		if !done {
			return &Reply{Kind: ReplyBookingStep, Text: text}, nil
		}
		convo.BookingFlow = nil
		if record != nil {
			return &Reply{Kind: ReplyBookingDone, Text: text, Booking: record}, nil
		}
		return &Reply{Kind: ReplyText, Text: text}, nil
	}

	switch ClassifyIntent(message) {
	case IntentGreeting:
		return &Reply{Kind: ReplyQuickActions, Text: e.fromPool(IntentGreeting), QuickActions: e.actions}, nil

	case IntentProperty:
		convo.LastIntent = IntentProperty
		return e.propertySearch(ctx, convo, message)

	case IntentBooking:
		convo.LastIntent = IntentBooking
		flow, prompt := StartBookingFlow()
		convo.BookingFlow = flow
		roster, err := e.brokers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("assistant: failed to load brokers: %w", err)
		}
		// Broker roster is attached on flow initiation only.
		return &Reply{Kind: ReplyBrokers, Text: prompt, Brokers: roster}, nil
	}

	return e.fallback(ctx, convo, message)
}

// Reset clears the context back to its initial empty state.
func (e *Engine) Reset(convo *Context) {
	if convo != nil {
		*convo = Context{}
	}
}

// fallback handles messages no primary rule claimed: a prior property search
// carries forward as a single-turn refinement, then secondary keyword
// families, then a generic reply.
func (e *Engine) fallback(ctx context.Context, convo *Context, message string) (*Reply, error) {
	if convo.LastIntent == IntentProperty {
		return e.propertySearch(ctx, convo, message)
	}

	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "agent", "expert", "contact", "janek"):
		roster, err := e.brokers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("assistant: failed to load brokers: %w", err)
		}
		return &Reply{
			Kind:    ReplyBrokers,
			Text:    "Here are our experienced real estate professionals who can help you:",
			Brokers: roster,
		}, nil

	case containsAny(lower, "market", "trend", "price", "analysis"):
		insight, err := e.insights.Latest(ctx)
		if err != nil && !errors.Is(err, insights.ErrInsightNotFound) {
			return nil, fmt.Errorf("assistant: failed to load market insight: %w", err)
		}
		if insight != nil {
			return &Reply{
				Kind:    ReplyInsight,
				Text:    "Here's the latest market insight for your area:",
				Insight: insight,
			}, nil
		}

	case containsAny(lower, "help", "option", "what can"):
		return &Reply{
			Kind:         ReplyQuickActions,
			Text:         "I can help you with various real estate needs. Here are some quick actions you can take:",
			QuickActions: e.actions,
		}, nil
	}

	return &Reply{Kind: ReplyText, Text: e.fromPool(IntentFallback)}, nil
}

func (e *Engine) propertySearch(ctx context.Context, convo *Context, message string) (*Reply, error) {
	listings, err := e.listings.List(ctx, properties.SearchFilter{})
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to load listings: %w", err)
	}

	result := e.matcher.Search(message, listings)
	if !result.Shortcut {
		// Filters replace wholesale on each search turn, never merge.
		f := result.Filter
		convo.SearchFilter = &f
	}

	return &Reply{Kind: ReplyProperties, Text: result.Text, Properties: result.Listings}, nil
}

func (e *Engine) fromPool(intent Intent) string {
	pool := replyPools[intent]
	return pool[e.pick(len(pool))]
}
