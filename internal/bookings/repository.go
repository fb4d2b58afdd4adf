package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides persistence for bookings.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	Create(ctx context.Context, booking *Booking) (*Booking, error)
	Update(ctx context.Context, booking *Booking) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps bookings in memory.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings []Booking
	now      func() time.Time
}

// NewInMemoryRepository creates an empty in-memory booking store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

// List returns bookings matching the filter, newest first.
func (r *InMemoryRepository) List(_ context.Context, filter Filter) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if filter.Matches(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetByID returns a single booking.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

// Create stores a new booking as pending.
func (r *InMemoryRepository) Create(_ context.Context, booking *Booking) (*Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *booking
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Status = StatusPending
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.bookings = append(r.bookings, stored)
	return &stored, nil
}

// Update replaces a booking's mutable fields, keeping ID and CreatedAt.
func (r *InMemoryRepository) Update(_ context.Context, booking *Booking) (*Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == booking.ID {
			updated := *booking
			updated.CreatedAt = r.bookings[i].CreatedAt
			updated.UpdatedAt = r.now().UTC()
			r.bookings[i] = updated
			out := updated
			return &out, nil
		}
	}
	return nil, ErrBookingNotFound
}

// UpdateStatus changes only the lifecycle state.
func (r *InMemoryRepository) UpdateStatus(_ context.Context, id string, status Status) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
			r.bookings[i].UpdatedAt = r.now().UTC()
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

// Delete removes a booking.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return ErrBookingNotFound
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const bookingColumns = "id, property_id, client_name, client_email, client_phone, preferred_date, preferred_time, preferred_location, message, status, created_at, updated_at"

// PostgresRepository stores bookings in the relational database.
type PostgresRepository struct {
	db  querier
	now func() time.Time
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{db: pool, now: time.Now}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(db querier) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// List returns bookings matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings"
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.PropertyID != "" {
		add("property_id = $%d", filter.PropertyID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: list scan failed: %w", err)
	}
	return bookings, nil
}

// GetByID returns a single booking.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := r.db.QueryRow(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Create inserts a new pending booking row.
func (r *PostgresRepository) Create(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	stored := *booking
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Status = StatusPending
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if _, err := r.db.Exec(ctx, query,
		stored.ID,
		stored.PropertyID,
		stored.ClientName,
		stored.ClientEmail,
		stored.ClientPhone,
		stored.PreferredDate,
		stored.PreferredTime,
		stored.PreferredLocation,
		stored.Message,
		string(stored.Status),
		stored.CreatedAt,
		stored.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("bookings: insert failed: %w", err)
	}
	return &stored, nil
}

// Update replaces a booking's mutable fields.
func (r *PostgresRepository) Update(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	updated := *booking
	updated.UpdatedAt = r.now().UTC()

	query := `
		UPDATE bookings
		SET property_id = $2, client_name = $3, client_email = $4, client_phone = $5,
		    preferred_date = $6, preferred_time = $7, preferred_location = $8,
		    message = $9, status = $10, updated_at = $11
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		updated.ID,
		updated.PropertyID,
		updated.ClientName,
		updated.ClientEmail,
		updated.ClientPhone,
		updated.PreferredDate,
		updated.PreferredTime,
		updated.PreferredLocation,
		updated.Message,
		string(updated.Status),
		updated.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBookingNotFound
	}
	return &updated, nil
}

// UpdateStatus changes only the lifecycle state.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	tag, err := r.db.Exec(ctx,
		"UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1",
		id, string(status), r.now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: status update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBookingNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM bookings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("bookings: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var status string
	if err := row.Scan(
		&b.ID,
		&b.PropertyID,
		&b.ClientName,
		&b.ClientEmail,
		&b.ClientPhone,
		&b.PreferredDate,
		&b.PreferredTime,
		&b.PreferredLocation,
		&b.Message,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("bookings: scan failed: %w", err)
	}
	b.Status = Status(status)
	return &b, nil
}
