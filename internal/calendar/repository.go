package calendar

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides access to calendar events.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, event *Event) (*Event, error)
}

// InMemoryRepository keeps events in memory.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryRepository creates an empty in-memory event store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// List returns all events in creation order.
func (r *InMemoryRepository) List(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

// Create stores a new event.
func (r *InMemoryRepository) Create(_ context.Context, event *Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *event
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.events = append(r.events, stored)
	return &stored, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores events in the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("calendar: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(db querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all events ordered by start time.
func (r *PostgresRepository) List(ctx context.Context) ([]Event, error) {
	rows, err := r.db.Query(ctx, `SELECT id, client_name, event_start, event_end, property FROM calendar_events ORDER BY event_start`)
	if err != nil {
		return nil, fmt.Errorf("calendar: list failed: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.ClientName, &ev.Start, &ev.End, &ev.Property); err != nil {
			return nil, fmt.Errorf("calendar: scan failed: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calendar: list scan failed: %w", err)
	}
	return events, nil
}

// Create inserts a new event row.
func (r *PostgresRepository) Create(ctx context.Context, event *Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	stored := *event
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	query := `
		INSERT INTO calendar_events (id, client_name, event_start, event_end, property)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.Exec(ctx, query,
		stored.ID,
		stored.ClientName,
		stored.Start,
		stored.End,
		stored.Property,
	); err != nil {
		return nil, fmt.Errorf("calendar: insert failed: %w", err)
	}
	return &stored, nil
}
