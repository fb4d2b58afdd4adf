package properties

import (
	"errors"
	"strings"
)

// ListingType categorizes a property listing.
type ListingType string

const (
	TypeHouse     ListingType = "house"
	TypeApartment ListingType = "apartment"
	TypePlot      ListingType = "plot"
)

// ListingStatus tracks the sales state of a listing.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusPending   ListingStatus = "pending"
	StatusSold      ListingStatus = "sold"
)

var (
	ErrListingNotFound = errors.New("properties: listing not found")
	ErrInvalidListing  = errors.New("properties: invalid listing")
)

// Listing represents a property offered on the marketing site.
type Listing struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         int           `json:"price"`
	Location      string        `json:"location"`
	Bedrooms      int           `json:"bedrooms"`
	Bathrooms     int           `json:"bathrooms"`
	SquareFootage int           `json:"squareFootage"`
	ImageURL      string        `json:"imageUrl"`
	Images        []string      `json:"images,omitempty"`
	Type          ListingType   `json:"type"`
	Status        ListingStatus `json:"status"`
}

// Validate checks the fields required to store a listing.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrInvalidListing
	}
	if l.Price <= 0 {
		return ErrInvalidListing
	}
	switch l.Type {
	case TypeHouse, TypeApartment, TypePlot:
	default:
		return ErrInvalidListing
	}
	return nil
}

// SearchFilter narrows a listing collection. Zero values mean "no constraint";
// present fields combine with AND semantics.
type SearchFilter struct {
	Type     ListingType `json:"type,omitempty"`
	MinPrice int         `json:"minPrice,omitempty"`
	MaxPrice int         `json:"maxPrice,omitempty"`
	Bedrooms int         `json:"bedrooms,omitempty"`
	Location string      `json:"location,omitempty"`
	Status   ListingStatus
}

// IsZero reports whether no constraint is set.
func (f SearchFilter) IsZero() bool {
	return f.Type == "" && f.MinPrice == 0 && f.MaxPrice == 0 && f.Bedrooms == 0 && f.Location == "" && f.Status == ""
}

// Matches reports whether the listing satisfies every present field of the
// filter. Bedrooms is an exact match, not a lower bound. Location is a
// case-insensitive substring match.
func (f SearchFilter) Matches(l Listing) bool {
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.MaxPrice != 0 && l.Price > f.MaxPrice {
		return false
	}
	if f.MinPrice != 0 && l.Price < f.MinPrice {
		return false
	}
	if f.Bedrooms != 0 && l.Bedrooms != f.Bedrooms {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	return true
}

// Apply returns the order-preserving subsequence of listings matching the filter.
func (f SearchFilter) Apply(listings []Listing) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
