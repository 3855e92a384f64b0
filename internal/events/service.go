package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/matchday/backend/internal/models"
)

// Store is the event persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context, orgIDs []uuid.UUID, search, sportType string) ([]models.Event, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, name, sportType string, eventDate time.Time, description string) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
	DeleteLinks(ctx context.Context, eventID uuid.UUID) error
	InsertLink(ctx context.Context, eventID, venueID uuid.UUID) error
	VenuesByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]models.Venue, error)
}

// MembershipStore resolves the caller's organizations.
type MembershipStore interface {
	ListMembershipOrgIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// VenueResolver resolves a venue name to its id, creating it on miss.
type VenueResolver interface {
	Resolve(ctx context.Context, name string) (uuid.UUID, error)
}

// Input is a validated event write payload. Venues are referenced by
// name and resolved to ids at write time.
type Input struct {
	Name        string
	SportType   string
	EventDate   time.Time
	Description string
	VenueNames  []string
}

// Service implements the event operations, scoped to the caller's
// organization memberships.
type Service struct {
	store   Store
	members MembershipStore
	venues  VenueResolver
	logger  *zap.Logger
}

// NewService creates an event service.
func NewService(store Store, members MembershipStore, venues VenueResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, members: members, venues: venues, logger: logger}
}

// List returns the caller's organization events, optionally filtered
// by a case-insensitive name substring and a sport type ("all" or
// empty means no sport filter), ordered by ascending event date. A
// caller with no membership gets an empty list, not an error.
func (s *Service) List(ctx context.Context, userID uuid.UUID, search, sportType string) ([]models.Event, error) {
	orgIDs, err := s.members.ListMembershipOrgIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(orgIDs) == 0 {
		return []models.Event{}, nil
	}
	if sportType == "all" {
		sportType = ""
	}
	list, err := s.store.List(ctx, orgIDs, search, sportType)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if err := s.attachVenues(ctx, list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Event{}
	}
	return list, nil
}

// Create inserts an event for the caller's organization and links its
// venues, resolving each distinct name through the venue directory.
// The event row and links written before a mid-loop venue failure
// remain persisted; the returned VenueError names the failing venue.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in Input) (*models.Event, error) {
	orgIDs, err := s.members.ListMembershipOrgIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(orgIDs) == 0 {
		return nil, ErrNoOrganization
	}

	e := &models.Event{
		OrganizationID: orgIDs[0],
		Name:           in.Name,
		SportType:      in.SportType,
		EventDate:      in.EventDate,
		Description:    in.Description,
		CreatedBy:      userID,
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	if err := s.linkVenues(ctx, e.ID, in.VenueNames); err != nil {
		return nil, err
	}

	if err := s.attachVenuesOne(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update rewrites the event row, matching only rows the caller
// created — an ownership mismatch matches zero rows and still returns
// success. All venue links are then dropped and rebuilt from the new
// name list, so the event briefly has no venues.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in Input) error {
	if err := s.store.UpdateOwned(ctx, id, userID, in.Name, in.SportType, in.EventDate, in.Description); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if err := s.store.DeleteLinks(ctx, id); err != nil {
		return fmt.Errorf("remove old venues: %w", err)
	}
	return s.linkVenues(ctx, id, in.VenueNames)
}

// Delete removes the event, matching only rows the caller created.
// An ownership mismatch matches zero rows and still returns success.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.DeleteOwned(ctx, id, userID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// GetByID fetches one event with its venues. Unlike List, which
// trusts its organization filter, this re-verifies that the event's
// organization is among the caller's memberships.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Event, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	orgIDs, err := s.members.ListMembershipOrgIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	allowed := false
	for _, orgID := range orgIDs {
		if orgID == e.OrganizationID {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	if err := s.attachVenuesOne(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) linkVenues(ctx context.Context, eventID uuid.UUID, names []string) error {
	for _, name := range distinct(names) {
		venueID, err := s.venues.Resolve(ctx, name)
		if err != nil {
			s.logger.Warn("venue resolution failed",
				zap.String("event_id", eventID.String()),
				zap.String("venue", name),
				zap.Error(err))
			return &VenueError{Name: name, Err: err}
		}
		if err := s.store.InsertLink(ctx, eventID, venueID); err != nil {
			s.logger.Warn("venue link failed",
				zap.String("event_id", eventID.String()),
				zap.String("venue", name),
				zap.Error(err))
			return &VenueError{Name: name, Link: true, Err: err}
		}
	}
	return nil
}

func (s *Service) attachVenues(ctx context.Context, list []models.Event) error {
	ids := make([]uuid.UUID, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	byEvent, err := s.store.VenuesByEventIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load venues: %w", err)
	}
	for i := range list {
		list[i].Venues = byEvent[list[i].ID]
		if list[i].Venues == nil {
			list[i].Venues = []models.Venue{}
		}
	}
	return nil
}

func (s *Service) attachVenuesOne(ctx context.Context, e *models.Event) error {
	byEvent, err := s.store.VenuesByEventIDs(ctx, []uuid.UUID{e.ID})
	if err != nil {
		return fmt.Errorf("load venues: %w", err)
	}
	e.Venues = byEvent[e.ID]
	if e.Venues == nil {
		e.Venues = []models.Venue{}
	}
	return nil
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
