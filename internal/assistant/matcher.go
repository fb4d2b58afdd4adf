package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eliteproperties/realty-platform/internal/properties"
)

const (
	defaultLuxuryThreshold = 700000
	defaultLowBudgetCutoff = 50000
	defaultShortlistSize   = 3
)

// Matcher applies extracted criteria or shortcut queries ("cheapest",
// "luxury") to the listing collection and phrases a summary of what it found.
type Matcher struct {
	luxuryThreshold int
	lowBudgetCutoff int
	shortlistSize   int
}

// NewMatcher creates a matcher; non-positive arguments fall back to defaults.
func NewMatcher(luxuryThreshold, lowBudgetCutoff, shortlistSize int) *Matcher {
	if luxuryThreshold <= 0 {
		luxuryThreshold = defaultLuxuryThreshold
	}
	if lowBudgetCutoff <= 0 {
		lowBudgetCutoff = defaultLowBudgetCutoff
	}
	if shortlistSize <= 0 {
		shortlistSize = defaultShortlistSize
	}
	return &Matcher{
		luxuryThreshold: luxuryThreshold,
		lowBudgetCutoff: lowBudgetCutoff,
		shortlistSize:   shortlistSize,
	}
}

// MatchResult is one property-search turn's outcome.
type MatchResult struct {
	Text     string
	Listings []properties.Listing
	Filter   properties.SearchFilter
	Shortcut bool
}

// Search routes a message through the shortcut rules or the criteria
// extractor and filters the listing collection. A zero-match search returns a
// default shortlist rather than an empty result.
func (m *Matcher) Search(message string, listings []properties.Listing) MatchResult {
	lower := strings.ToLower(message)

	if containsAny(lower, "cheapest", "lowest price", "most affordable") {
		return MatchResult{
			Text:     "Here are our most affordable properties:",
			Listings: shortlist(sortedByPrice(listings, true), m.shortlistSize),
			Shortcut: true,
		}
	}

	if containsAny(lower, "luxury", "expensive", "premium") {
		var luxury []properties.Listing
		for _, l := range listings {
			if l.Price > m.luxuryThreshold {
				luxury = append(luxury, l)
			}
		}
		if len(luxury) == 0 {
			luxury = shortlist(sortedByPrice(listings, false), m.shortlistSize)
		}
		return MatchResult{
			Text:     "Here are our luxury properties:",
			Listings: luxury,
			Shortcut: true,
		}
	}

	filter := ExtractCriteria(message)
	matched := filter.Apply(listings)

	if len(matched) > 0 {
		return MatchResult{
			Text:     m.summarize(filter, len(matched)),
			Listings: matched,
			Filter:   filter,
		}
	}

	text := "I couldn't find any properties matching those exact criteria."
	if filter.MaxPrice > 0 && filter.MaxPrice < m.lowBudgetCutoff {
		text = fmt.Sprintf("I understand you're looking for properties under $%s, but our current inventory starts at higher price points.", formatPrice(filter.MaxPrice))
	}
	text += " However, here are some of our popular properties that might interest you. You can try searching with different criteria like 'houses under $600k' or 'apartments with 2 bedrooms'."

	return MatchResult{
		Text:     text,
		Listings: shortlist(listings, m.shortlistSize),
		Filter:   filter,
	}
}

// summarize phrases the applied criteria in a fixed order: type, price
// bounds, bedrooms, location.
func (m *Matcher) summarize(f properties.SearchFilter, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Great! I found %d properties that match your criteria", count)
	if f.Type != "" {
		fmt.Fprintf(&b, " for %ss", f.Type)
	}
	if f.MaxPrice != 0 {
		fmt.Fprintf(&b, " under $%s", formatPrice(f.MaxPrice))
	}
	if f.MinPrice != 0 {
		fmt.Fprintf(&b, " over $%s", formatPrice(f.MinPrice))
	}
	if f.Bedrooms != 0 {
		fmt.Fprintf(&b, " with %d bedrooms", f.Bedrooms)
	}
	if f.Location != "" {
		fmt.Fprintf(&b, " in %s", f.Location)
	}
	b.WriteString(". Here are the properties:")
	return b.String()
}

func sortedByPrice(listings []properties.Listing, ascending bool) []properties.Listing {
	out := make([]properties.Listing, len(listings))
	copy(out, listings)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}

func shortlist(listings []properties.Listing, n int) []properties.Listing {
	if len(listings) > n {
		listings = listings[:n]
	}
	out := make([]properties.Listing, len(listings))
	copy(out, listings)
	return out
}

// formatPrice renders an amount with thousands separators, e.g. 700000
// becomes "700,000".
func formatPrice(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
