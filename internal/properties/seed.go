package properties

// SeedListings is the demo inventory served when no database is configured.
func SeedListings() []Listing {
	return []Listing{
		{
			ID:            "1",
			Title:         "Modern Luxury Villa",
			Description:   "Stunning contemporary villa with panoramic views, infinity pool, and smart home technology.",
			Price:         750000,
			Location:      "Beverly Hills, CA",
			Bedrooms:      5,
			Bathrooms:     4,
			SquareFootage: 4200,
			ImageURL:      "/public/images/properties/villa.png",
			Type:          TypeHouse,
			Status:        StatusAvailable,
		},
		{
			ID:            "2",
			Title:         "Downtown Penthouse",
			Description:   "Exclusive penthouse in the heart of the city with floor-to-ceiling windows and private terrace.",
			Price:         1200000,
			Location:      "Manhattan, NY",
			Bedrooms:      3,
			Bathrooms:     3,
			SquareFootage: 2800,
			ImageURL:      "/public/images/properties/penthouse.png",
			Type:          TypeApartment,
			Status:        StatusAvailable,
		},
		{
			ID:            "3",
			Title:         "Cozy Suburban Home",
			Description:   "Charming family home in a quiet neighborhood with a large backyard and modern kitchen.",
			Price:         485000,
			Location:      "Austin, TX",
			Bedrooms:      4,
			Bathrooms:     2,
			SquareFootage: 2400,
			ImageURL:      "/public/images/properties/suburban.png",
			Type:          TypeHouse,
			Status:        StatusAvailable,
		},
		{
			ID:            "4",
			Title:         "Prime Development Plot",
			Description:   "Excellent opportunity for development in a rapidly growing area with utilities ready.",
			Price:         320000,
			Location:      "Phoenix, AZ",
			Bedrooms:      0,
			Bathrooms:     0,
			SquareFootage: 10000,
			ImageURL:      "/public/images/properties/plot.png",
			Type:          TypePlot,
			Status:        StatusAvailable,
		},
		{
			ID:            "5",
			Title:         "Beach House Paradise",
			Description:   "Oceanfront property with direct beach access, wraparound deck, and breathtaking sunsets.",
			Price:         950000,
			Location:      "Malibu, CA",
			Bedrooms:      4,
			Bathrooms:     3,
			SquareFootage: 3100,
			ImageURL:      "/public/images/properties/beach.png",
			Type:          TypeHouse,
			Status:        StatusPending,
		},
		{
			ID:            "6",
			Title:         "Urban Loft",
			Description:   "Industrial-chic loft with exposed brick, high ceilings, and walkable downtown location.",
			Price:         625000,
			Location:      "Portland, OR",
			Bedrooms:      2,
			Bathrooms:     2,
			SquareFootage: 1600,
			ImageURL:      "/public/images/properties/loft.png",
			Type:          TypeApartment,
			Status:        StatusAvailable,
		},
	}
}
