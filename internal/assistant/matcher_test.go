package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteproperties/realty-platform/internal/properties"
)

func testListings() []properties.Listing {
	return []properties.Listing{
		{ID: "1", Title: "Modern Villa", Price: 750000, Location: "Beverly Hills, CA", Bedrooms: 4, Bathrooms: 3, Type: properties.TypeHouse, Status: properties.StatusAvailable},
		{ID: "2", Title: "Downtown Penthouse", Price: 1200000, Location: "Manhattan, NY", Bedrooms: 3, Bathrooms: 2, Type: properties.TypeApartment, Status: properties.StatusAvailable},
		{ID: "3", Title: "Family Home", Price: 485000, Location: "Austin, TX", Bedrooms: 3, Bathrooms: 2, Type: properties.TypeHouse, Status: properties.StatusAvailable},
		{ID: "4", Title: "Development Plot", Price: 320000, Location: "Phoenix, AZ", Type: properties.TypePlot, Status: properties.StatusAvailable},
		{ID: "5", Title: "Beachfront Estate", Price: 1850000, Location: "Malibu, CA", Bedrooms: 5, Bathrooms: 4, Type: properties.TypeHouse, Status: properties.StatusAvailable},
		{ID: "6", Title: "City Loft", Price: 625000, Location: "Portland, OR", Bedrooms: 2, Bathrooms: 1, Type: properties.TypeApartment, Status: properties.StatusAvailable},
	}
}

func listingPrices(listings []properties.Listing) []int {
	out := make([]int, len(listings))
	for i, l := range listings {
		out[i] = l.Price
	}
	return out
}

func TestMatcherCheapestShortcut(t *testing.T) {
	m := NewMatcher(0, 0, 0)

	result := m.Search("show me the cheapest properties", testListings())

	assert.True(t, result.Shortcut)
	assert.Equal(t, "Here are our most affordable properties:", result.Text)
	assert.Equal(t, []int{320000, 485000, 625000}, listingPrices(result.Listings))
}

func TestMatcherLuxuryShortcut(t *testing.T) {
	m := NewMatcher(0, 0, 0)

	result := m.Search("show me luxury properties", testListings())

	assert.True(t, result.Shortcut)
	assert.Equal(t, "Here are our luxury properties:", result.Text)
	for _, l := range result.Listings {
		assert.Greater(t, l.Price, 700000)
	}
}

func TestMatcherLuxuryFallsBackToHighestPriced(t *testing.T) {
	// With a threshold above the whole inventory, luxury falls back to the
	// three highest-priced listings.
	m := NewMatcher(5000000, 0, 0)

	result := m.Search("premium properties please", testListings())

	assert.Equal(t, []int{1850000, 1200000, 750000}, listingPrices(result.Listings))
}

func TestMatcherCriteriaSearch(t *testing.T) {
	m := NewMatcher(0, 0, 0)

	result := m.Search("show me houses under $800k", testListings())

	assert.False(t, result.Shortcut)
	assert.Equal(t, "Great! I found 2 properties that match your criteria for houses under $800,000. Here are the properties:", result.Text)
	assert.Equal(t, []int{750000, 485000}, listingPrices(result.Listings))
	assert.Equal(t, properties.SearchFilter{Type: properties.TypeHouse, MaxPrice: 800000}, result.Filter)
}

func TestMatcherResultsAreSubsetSatisfyingFilter(t *testing.T) {
	m := NewMatcher(0, 0, 0)
	listings := testListings()

	result := m.Search("3 bedroom houses under $900k", listings)

	require.NotEmpty(t, result.Listings)
	for _, l := range result.Listings {
		assert.True(t, result.Filter.Matches(l))
	}
}

func TestMatcherEmptyResultReturnsDefaultSample(t *testing.T) {
	m := NewMatcher(0, 0, 0)
	listings := testListings()

	result := m.Search("houses under $10k", listings)

	require.Len(t, result.Listings, 3)
	assert.Equal(t, listings[0].ID, result.Listings[0].ID)
	assert.Contains(t, result.Text, "our current inventory starts at higher price points")
	assert.Contains(t, result.Text, "try searching with different criteria")
}

func TestMatcherEmptyResultWithoutLowBudgetClause(t *testing.T) {
	m := NewMatcher(0, 0, 0)

	result := m.Search("7 bedroom apartments", testListings())

	require.Len(t, result.Listings, 3)
	assert.Contains(t, result.Text, "I couldn't find any properties matching those exact criteria.")
	assert.NotContains(t, result.Text, "higher price points")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "500", formatPrice(500))
	assert.Equal(t, "50,000", formatPrice(50000))
	assert.Equal(t, "700,000", formatPrice(700000))
	assert.Equal(t, "1,850,000", formatPrice(1850000))
}
