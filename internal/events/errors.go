package events

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOrganization means the caller has no membership to scope a
	// write to.
	ErrNoOrganization = errors.New("no organization found")
	// ErrAccessDenied means the record belongs to an organization the
	// caller is not a member of.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound means no event exists with the requested id.
	ErrNotFound = errors.New("event not found")
)

// VenueError reports which venue name a multi-venue write failed on.
// The enclosing event row and any links written before the failure
// remain persisted; callers must treat the operation as non-atomic.
type VenueError struct {
	Name string
	Link bool
	Err  error
}

func (e *VenueError) Error() string {
	if e.Link {
		return fmt.Sprintf("failed to link venue: %s", e.Name)
	}
	return fmt.Sprintf("failed to create venue: %s", e.Name)
}

func (e *VenueError) Unwrap() error { return e.Err }
