package assistant

import (
	"github.com/eliteproperties/realty-platform/internal/brokers"
	"github.com/eliteproperties/realty-platform/internal/insights"
	"github.com/eliteproperties/realty-platform/internal/properties"
)

// ReplyKind tags which payload accompanies a reply.
type ReplyKind string

const (
	ReplyText         ReplyKind = "text"
	ReplyProperties   ReplyKind = "properties"
	ReplyBrokers      ReplyKind = "brokers"
	ReplyInsight      ReplyKind = "insight"
	ReplyQuickActions ReplyKind = "quick_actions"
	ReplyBookingStep  ReplyKind = "booking_step"
	ReplyBookingDone  ReplyKind = "booking_confirmed"
)

// Reply is one assistant turn: text plus at most one typed payload, selected
// by Kind.
type Reply struct {
	Kind         ReplyKind               `json:"kind"`
	Text         string                  `json:"text"`
	Properties   []properties.Listing    `json:"properties,omitempty"`
	Brokers      []brokers.Broker        `json:"brokers,omitempty"`
	Insight      *insights.MarketInsight `json:"insight,omitempty"`
	QuickActions []QuickAction           `json:"quickActions,omitempty"`
	Booking      *BookingRecord          `json:"booking,omitempty"`
}

// Context is the per-session conversation state. At most one of SearchFilter
// and BookingFlow drives a given turn's branching.
type Context struct {
	LastIntent   Intent                   `json:"lastIntent,omitempty"`
	SearchFilter *properties.SearchFilter `json:"searchFilter,omitempty"`
	BookingFlow  *BookingFlow             `json:"bookingFlow,omitempty"`
}

// NewContext returns the initial empty conversation state.
func NewContext() *Context {
	return &Context{}
}

// QuickAction is a suggested action chip surfaced alongside replies.
type QuickAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Action      string `json:"action"`
	Variant     string `json:"variant"`
}

// DefaultQuickActions is the fixed set of action chips offered on greetings
// and help requests.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{
			ID:          "1",
			Title:       "Schedule Property Tour",
			Description: "Book a guided tour of available properties",
			Icon:        "calendar",
			Action:      "schedule_tour",
			Variant:     "primary",
		},
		{
			ID:          "2",
			Title:       "Get Market Report",
			Description: "Download latest market analysis",
			Icon:        "trending-up",
			Action:      "market_report",
			Variant:     "secondary",
		},
		{
			ID:          "3",
			Title:       "Mortgage Calculator",
			Description: "Calculate your monthly payments",
			Icon:        "calculator",
			Action:      "mortgage_calc",
			Variant:     "outline",
		},
		{
			ID:          "4",
			Title:       "Contact Expert",
			Description: "Speak with a real estate professional",
			Icon:        "phone",
			Action:      "contact_expert",
			Variant:     "secondary",
		},
	}
}
