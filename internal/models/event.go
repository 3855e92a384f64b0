package models

import (
	"time"

	"github.com/google/uuid"
)

// SportTypes is the fixed set of sports an event can be scheduled for.
var SportTypes = []string{
	"soccer",
	"basketball",
	"tennis",
	"football",
	"baseball",
	"volleyball",
	"hockey",
	"cricket",
	"rugby",
	"golf",
}

// IsValidSportType reports whether s is one of SportTypes.
func IsValidSportType(s string) bool {
	for _, t := range SportTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Event is a scheduled sports event owned by an organization. Venues
// holds the resolved venue rows linked through event_venues.
type Event struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	SportType      string    `json:"sport_type"`
	EventDate      time.Time `json:"event_date"`
	Description    string    `json:"description,omitempty"`
	CreatedBy      uuid.UUID `json:"created_by"`
	Venues         []Venue   `json:"venues"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
