package venues

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday/backend/internal/models"
)

// Repository handles venue persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a venues repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetIDByName returns the id of the venue with the exact name.
// Returns pgx.ErrNoRows when no venue matches.
func (r *Repository) GetIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	const q = `SELECT id FROM venues WHERE name = $1`
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, q, name).Scan(&id)
	return id, err
}

// InsertName inserts a venue with only the name populated.
func (r *Repository) InsertName(ctx context.Context, name string) (uuid.UUID, error) {
	const q = `INSERT INTO venues (name) VALUES ($1) RETURNING id`
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, q, name).Scan(&id)
	return id, err
}

// Create inserts a venue with optional address and capacity.
func (r *Repository) Create(ctx context.Context, v *models.Venue) error {
	const q = `INSERT INTO venues (name, address, capacity) VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, v.Name, v.Address, v.Capacity).Scan(&v.ID, &v.CreatedAt)
}

// List returns all venues ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, address, capacity, created_at FROM venues ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
