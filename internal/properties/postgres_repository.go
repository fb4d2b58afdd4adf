package properties

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgxpool.Pool the repository needs; pgxmock
// implements it for tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores listings in the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("properties: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(db querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listingColumns = `id, title, description, price, location, bedrooms, bathrooms, square_footage, image_url, images, type, status`

// List returns listings matching the filter in insertion order.
func (r *PostgresRepository) List(ctx context.Context, filter SearchFilter) ([]Listing, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.MinPrice != 0 {
		add("price >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice != 0 {
		add("price <= $%d", filter.MaxPrice)
	}
	if filter.Bedrooms != 0 {
		add("bedrooms = $%d", filter.Bedrooms)
	}
	if filter.Location != "" {
		add("location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}

	query := "SELECT " + listingColumns + " FROM listings"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("properties: list failed: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("properties: list scan failed: %w", err)
	}
	return listings, nil
}

// GetByID fetches a single listing.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	row := r.db.QueryRow(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = $1", id)
	l, err := scanListing(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("properties: select failed: %w", err)
	}
	return &l, nil
}

// Create inserts a new listing row.
func (r *PostgresRepository) Create(ctx context.Context, listing *Listing) (*Listing, error) {
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	stored := *listing
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Status == "" {
		stored.Status = StatusAvailable
	}
	query := `
		INSERT INTO listings (id, title, description, price, location, bedrooms, bathrooms, square_footage, image_url, images, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if _, err := r.db.Exec(ctx, query,
		stored.ID,
		stored.Title,
		stored.Description,
		stored.Price,
		stored.Location,
		stored.Bedrooms,
		stored.Bathrooms,
		stored.SquareFootage,
		stored.ImageURL,
		stored.Images,
		stored.Type,
		stored.Status,
	); err != nil {
		return nil, fmt.Errorf("properties: insert failed: %w", err)
	}
	return &stored, nil
}

// Update replaces an existing listing row.
func (r *PostgresRepository) Update(ctx context.Context, listing *Listing) (*Listing, error) {
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	query := `
		UPDATE listings
		SET title = $2, description = $3, price = $4, location = $5, bedrooms = $6,
		    bathrooms = $7, square_footage = $8, image_url = $9, images = $10, type = $11, status = $12
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Location,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.SquareFootage,
		listing.ImageURL,
		listing.Images,
		listing.Type,
		listing.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("properties: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrListingNotFound
	}
	stored := *listing
	return &stored, nil
}

// Delete removes a listing row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM listings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("properties: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.Price,
		&l.Location,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.SquareFootage,
		&l.ImageURL,
		&l.Images,
		&l.Type,
		&l.Status,
	)
	return l, err
}
