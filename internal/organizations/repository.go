package organizations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday/backend/internal/models"
)

// Repository handles organization, membership, and profile persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateOrganization inserts an organization and returns its id.
func (r *Repository) CreateOrganization(ctx context.Context, name string) (uuid.UUID, error) {
	const q = `INSERT INTO organizations (name) VALUES ($1) RETURNING id`
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, q, name).Scan(&id)
	return id, err
}

// CreateMembership links a user to an organization with a role.
func (r *Repository) CreateMembership(ctx context.Context, orgID, userID uuid.UUID, role string) error {
	const q = `INSERT INTO organization_members (organization_id, user_id, role) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, q, orgID, userID, role)
	return err
}

// UpsertProfile creates or overwrites the profile keyed by user id.
func (r *Repository) UpsertProfile(ctx context.Context, userID uuid.UUID, name, email string) error {
	const q = `INSERT INTO profiles (id, name, email) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, updated_at = NOW()`
	_, err := r.pool.Exec(ctx, q, userID, name, email)
	return err
}

// ListMembershipOrgIDs returns the organization ids the user belongs to.
func (r *Repository) ListMembershipOrgIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT organization_id FROM organization_members WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListOrganizationsForUser returns organizations the user is a member of.
func (r *Repository) ListOrganizationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error) {
	const q = `SELECT o.id, o.name, o.created_at, o.updated_at
		FROM organizations o
		INNER JOIN organization_members m ON m.organization_id = o.id
		WHERE m.user_id = $1
		ORDER BY o.name`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Organization
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Member is an organization member with profile details.
type Member struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

// ListMembers returns members of an organization with their profile data.
func (r *Repository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]Member, error) {
	const q = `SELECT m.user_id, COALESCE(p.name, ''), COALESCE(p.email, ''), m.role, m.created_at
		FROM organization_members m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.organization_id = $1
		ORDER BY m.created_at ASC`
	rows, err := r.pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
