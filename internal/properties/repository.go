package properties

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository provides access to the listing collection.
type Repository interface {
	List(ctx context.Context, filter SearchFilter) ([]Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	Create(ctx context.Context, listing *Listing) (*Listing, error)
	Update(ctx context.Context, listing *Listing) (*Listing, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps listings in memory, seeded with the demo
// inventory. Used when no database is configured and in tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	listings []Listing
}

// NewInMemoryRepository creates a repository seeded with the given listings.
func NewInMemoryRepository(seed []Listing) *InMemoryRepository {
	listings := make([]Listing, len(seed))
	copy(listings, seed)
	return &InMemoryRepository{listings: listings}
}

// List returns listings matching the filter, preserving insertion order.
func (r *InMemoryRepository) List(_ context.Context, filter SearchFilter) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter.Apply(r.listings), nil
}

// GetByID returns a single listing.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.listings {
		if r.listings[i].ID == id {
			l := r.listings[i]
			return &l, nil
		}
	}
	return nil, ErrListingNotFound
}

// Create stores a new listing, assigning an ID when absent.
func (r *InMemoryRepository) Create(_ context.Context, listing *Listing) (*Listing, error) {
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *listing
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Status == "" {
		stored.Status = StatusAvailable
	}
	r.listings = append(r.listings, stored)
	return &stored, nil
}

// Update replaces an existing listing.
func (r *InMemoryRepository) Update(_ context.Context, listing *Listing) (*Listing, error) {
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.listings {
		if r.listings[i].ID == listing.ID {
			r.listings[i] = *listing
			stored := r.listings[i]
			return &stored, nil
		}
	}
	return nil, ErrListingNotFound
}

// Delete removes a listing.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.listings {
		if r.listings[i].ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return nil
		}
	}
	return ErrListingNotFound
}
