package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday/backend/internal/models"
)

// Repository handles event and event-venue persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert creates an event row.
func (r *Repository) Insert(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (organization_id, name, sport_type, event_date, description, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), $6)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, e.OrganizationID, e.Name, e.SportType, e.EventDate, e.Description, e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID returns an event by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT id, organization_id, name, sport_type, event_date, COALESCE(description,''), created_by, created_at, updated_at
		FROM events WHERE id = $1`
	var e models.Event
	err := r.pool.QueryRow(ctx, q, id).Scan(&e.ID, &e.OrganizationID, &e.Name, &e.SportType,
		&e.EventDate, &e.Description, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns events owned by any of the given organizations,
// optionally filtered by a case-insensitive name substring and an
// exact sport type, ordered by ascending event date.
func (r *Repository) List(ctx context.Context, orgIDs []uuid.UUID, search, sportType string) ([]models.Event, error) {
	q := `SELECT id, organization_id, name, sport_type, event_date, COALESCE(description,''), created_by, created_at, updated_at
		FROM events WHERE organization_id = ANY($1)`
	args := []interface{}{orgIDs}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += ` AND name ILIKE $2`
	}
	if sportType != "" {
		args = append(args, sportType)
		if search != "" {
			q += ` AND sport_type = $3`
		} else {
			q += ` AND sport_type = $2`
		}
	}
	q += ` ORDER BY event_date ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Name, &e.SportType,
			&e.EventDate, &e.Description, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateOwned updates the event only when the caller created it.
// Matching zero rows is not an error.
func (r *Repository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, name, sportType string, eventDate time.Time, description string) error {
	const q = `UPDATE events SET name = $1, sport_type = $2, event_date = $3, description = NULLIF($4,''), updated_at = NOW()
		WHERE id = $5 AND created_by = $6`
	_, err := r.pool.Exec(ctx, q, name, sportType, eventDate, description, id, userID)
	return err
}

// DeleteOwned deletes the event only when the caller created it.
// Matching zero rows is not an error; event_venues rows go with the
// event via the schema's cascade.
func (r *Repository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	const q = `DELETE FROM events WHERE id = $1 AND created_by = $2`
	_, err := r.pool.Exec(ctx, q, id, userID)
	return err
}

// DeleteLinks removes all venue links for an event.
func (r *Repository) DeleteLinks(ctx context.Context, eventID uuid.UUID) error {
	const q = `DELETE FROM event_venues WHERE event_id = $1`
	_, err := r.pool.Exec(ctx, q, eventID)
	return err
}

// InsertLink links a venue to an event.
func (r *Repository) InsertLink(ctx context.Context, eventID, venueID uuid.UUID) error {
	const q = `INSERT INTO event_venues (event_id, venue_id) VALUES ($1, $2)
		ON CONFLICT (event_id, venue_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, q, eventID, venueID)
	return err
}

// VenuesByEventIDs returns the venues linked to each of the given events.
func (r *Repository) VenuesByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]models.Venue, error) {
	if len(eventIDs) == 0 {
		return map[uuid.UUID][]models.Venue{}, nil
	}
	const q = `SELECT ev.event_id, v.id, v.name, v.address, v.capacity, v.created_at
		FROM event_venues ev
		INNER JOIN venues v ON v.id = ev.venue_id
		WHERE ev.event_id = ANY($1)
		ORDER BY v.name`
	rows, err := r.pool.Query(ctx, q, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[uuid.UUID][]models.Venue)
	for rows.Next() {
		var eventID uuid.UUID
		var v models.Venue
		if err := rows.Scan(&eventID, &v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt); err != nil {
			return nil, err
		}
		result[eventID] = append(result[eventID], v)
	}
	return result, rows.Err()
}
