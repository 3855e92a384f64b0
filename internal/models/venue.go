package models

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a physical location in the shared, name-deduplicated
// directory. Address and capacity are optional; venues created as a
// side effect of event writes carry only a name.
type Venue struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
