// Package venues maintains the shared, name-deduplicated venue
// directory. Venue names are the natural key: event writes reference
// venues by name and resolve them to ids here.
package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store is the persistence surface the directory needs.
type Store interface {
	GetIDByName(ctx context.Context, name string) (uuid.UUID, error)
	InsertName(ctx context.Context, name string) (uuid.UUID, error)
}

// Directory resolves venue names to ids, creating missing venues.
type Directory struct {
	store Store
}

// NewDirectory creates a venue directory.
func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

// Resolve returns the id of the venue with the exact, case-sensitive
// name, inserting a name-only venue on miss. Not transactional with
// the caller's follow-up writes: a venue created here survives even
// if the caller's next step fails, which is fine — the directory is
// append-only in practice and orphaned venues are harmless.
func (d *Directory) Resolve(ctx context.Context, name string) (uuid.UUID, error) {
	id, err := d.store.GetIDByName(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("look up venue %q: %w", name, err)
	}
	id, err = d.store.InsertName(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create venue %q: %w", name, err)
	}
	return id, nil
}
