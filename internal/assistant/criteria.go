package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/eliteproperties/realty-platform/internal/properties"
)

var (
	priceTokenPattern = regexp.MustCompile(`\$?(\d+)k?`)
	bedroomPattern    = regexp.MustCompile(`(\d+)\s*(bed|bedroom)`)
)

// locationPatterns capture the word following a location preposition, e.g.
// "in austin" or "near malibu". First match wins.
var locationPatterns = buildLocationPatterns("in", "at", "near", "around")

func buildLocationPatterns(keywords ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		out[i] = regexp.MustCompile(kw + `\s+([a-zA-Z\s,]+?)(?:\s|$|,)`)
	}
	return out
}

// ExtractCriteria parses a free-text message into a structured search filter.
// Each rule applies independently; a signal that never appears leaves its
// field at the zero value, which Apply treats as "no constraint".
func ExtractCriteria(message string) properties.SearchFilter {
	lower := strings.ToLower(message)
	var f properties.SearchFilter

	switch {
	case containsAny(lower, "house", "villa"):
		f.Type = properties.TypeHouse
	case containsAny(lower, "apartment", "condo"):
		f.Type = properties.TypeApartment
	case containsAny(lower, "plot", "land"):
		f.Type = properties.TypePlot
	}

	// Bedroom counts are parsed first and removed before the price scan so
	// that "3 bedroom house under $500k" does not read 3 as a price token.
	priceSource := lower
	if m := bedroomPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.Bedrooms = n
		}
		priceSource = bedroomPattern.ReplaceAllString(lower, " ")
	}

	if prices := extractPrices(priceSource); len(prices) > 0 {
		lo, hi := prices[0], prices[0]
		for _, p := range prices[1:] {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		switch {
		case containsAny(lower, "under", "below"):
			f.MaxPrice = hi
		case containsAny(lower, "over", "above"):
			f.MinPrice = lo
		case len(prices) == 2:
			f.MinPrice = lo
			f.MaxPrice = hi
		default:
			// A single unqualified amount reads as a budget ceiling.
			f.MaxPrice = prices[0]
		}
	}

	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			f.Location = strings.TrimSpace(m[1])
			break
		}
	}

	return f
}

// extractPrices pulls every numeric token, honoring a "k" thousands suffix
// and an optional "$" prefix.
func extractPrices(text string) []int {
	tokens := priceTokenPattern.FindAllString(text, -1)
	prices := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		thousands := strings.HasSuffix(tok, "k")
		n, err := strconv.Atoi(strings.Trim(tok, "$k"))
		if err != nil {
			continue
		}
		if thousands {
			n *= 1000
		}
		prices = append(prices, n)
	}
	return prices
}
