package insights

import (
	"context"
	"errors"
	"sync"
)

// Trend is the direction of a market movement.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ErrInsightNotFound is returned when no insight matches.
var ErrInsightNotFound = errors.New("insights: insight not found")

// DataPoint is one labeled value in an insight series.
type DataPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MarketInsight is a market snippet surfaced by the assistant and the site.
type MarketInsight struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Trend       Trend       `json:"trend"`
	Percentage  float64     `json:"percentage"`
	Timeframe   string      `json:"timeframe"`
	Description string      `json:"description"`
	Data        []DataPoint `json:"data"`
}

// Repository provides read access to market insights.
type Repository interface {
	List(ctx context.Context) ([]MarketInsight, error)
	Latest(ctx context.Context) (*MarketInsight, error)
}

// InMemoryRepository serves insights from memory.
type InMemoryRepository struct {
	mu       sync.RWMutex
	insights []MarketInsight
}

// NewInMemoryRepository creates a repository with the given insights.
func NewInMemoryRepository(seed []MarketInsight) *InMemoryRepository {
	insights := make([]MarketInsight, len(seed))
	copy(insights, seed)
	return &InMemoryRepository{insights: insights}
}

// List returns every insight.
func (r *InMemoryRepository) List(_ context.Context) ([]MarketInsight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MarketInsight, len(r.insights))
	copy(out, r.insights)
	return out, nil
}

// Latest returns the first insight, the one the assistant embeds.
func (r *InMemoryRepository) Latest(_ context.Context) (*MarketInsight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.insights) == 0 {
		return nil, ErrInsightNotFound
	}
	m := r.insights[0]
	return &m, nil
}

// SeedInsights is the demo insight collection.
func SeedInsights() []MarketInsight {
	return []MarketInsight{
		{
			ID:          "1",
			Title:       "Housing Market Trends",
			Trend:       TrendUp,
			Percentage:  12.5,
			Timeframe:   "Last 6 months",
			Description: "Property values have shown steady growth with increased demand in suburban areas.",
			Data: []DataPoint{
				{Label: "Jan", Value: 450000},
				{Label: "Feb", Value: 465000},
				{Label: "Mar", Value: 478000},
				{Label: "Apr", Value: 485000},
				{Label: "May", Value: 492000},
				{Label: "Jun", Value: 506000},
			},
		},
		{
			ID:          "2",
			Title:       "Rental Market Analysis",
			Trend:       TrendStable,
			Percentage:  2.1,
			Timeframe:   "This quarter",
			Description: "Rental prices remain stable with slight increases in premium locations.",
			Data: []DataPoint{
				{Label: "Q1", Value: 2800},
				{Label: "Q2", Value: 2850},
				{Label: "Q3", Value: 2860},
				{Label: "Q4", Value: 2900},
			},
		},
	}
}
