package brokers

import (
	"context"
	"errors"
	"sync"
)

// Availability describes whether a broker can take new consultations.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	Offline   Availability = "offline"
)

// ErrBrokerNotFound is returned when a broker lookup misses.
var ErrBrokerNotFound = errors.New("brokers: broker not found")

// Broker represents a real estate professional surfaced by the assistant.
type Broker struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Experience   string       `json:"experience"`
	Specialties  []string     `json:"specialties"`
	Rating       float64      `json:"rating"`
	Reviews      int          `json:"reviews"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	ImageURL     string       `json:"imageUrl"`
	Availability Availability `json:"availability"`
}

// Repository provides read access to the broker roster.
type Repository interface {
	List(ctx context.Context) ([]Broker, error)
	ListAvailable(ctx context.Context) ([]Broker, error)
	GetByID(ctx context.Context, id string) (*Broker, error)
}

// InMemoryRepository serves the roster from memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	brokers []Broker
}

// NewInMemoryRepository creates a repository with the given roster.
func NewInMemoryRepository(seed []Broker) *InMemoryRepository {
	brokers := make([]Broker, len(seed))
	copy(brokers, seed)
	return &InMemoryRepository{brokers: brokers}
}

// List returns every broker.
func (r *InMemoryRepository) List(_ context.Context) ([]Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Broker, len(r.brokers))
	copy(out, r.brokers)
	return out, nil
}

// ListAvailable returns brokers currently accepting consultations.
func (r *InMemoryRepository) ListAvailable(_ context.Context) ([]Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Broker
	for _, b := range r.brokers {
		if b.Availability == Available {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetByID returns a single broker.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.brokers {
		if r.brokers[i].ID == id {
			b := r.brokers[i]
			return &b, nil
		}
	}
	return nil, ErrBrokerNotFound
}

// SeedBrokers is the demo roster.
func SeedBrokers() []Broker {
	return []Broker{
		{
			ID:           "1",
			Name:         "Janek Krupicka",
			Title:        "Senior Real Estate Specialist",
			Experience:   "10 years",
			Specialties:  []string{"Luxury Properties", "Investment Consulting", "Market Analysis"},
			Rating:       4.9,
			Reviews:      145,
			Phone:        "+420-777-123-456",
			Email:        "janek.krupicka@eliteproperties.com",
			ImageURL:     "/public/images/broker/broker.png",
			Availability: Available,
		},
	}
}
