package events

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchday/backend/internal/middleware"
	"github.com/matchday/backend/internal/validation"
	"github.com/matchday/backend/pkg/response"
)

// WriteRequest is the body for POST /events and PUT /events/:id.
// Venues carries venue names; each is resolved to an id at write time.
type WriteRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	SportType   string   `json:"sport_type" binding:"required,oneof=soccer basketball tennis football baseball volleyball hockey cricket rugby golf"`
	EventDate   string   `json:"event_date" binding:"required"`
	Description string   `json:"description" binding:"omitempty,max=1000"`
	Venues      []string `json:"venues" binding:"required,min=1,dive,required,max=100"`
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Handler handles event HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an events handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /events. Query params: search (name substring),
// sport (exact sport type, "all" for no filter).
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.svc.List(c.Request.Context(), userID, c.Query("search"), c.Query("sport"))
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	in, ok := bindWriteRequest(c)
	if !ok {
		return
	}

	e, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err, "failed to create event")
		return
	}
	response.Created(c, e)
}

// GetByID handles GET /events/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	e, err := h.svc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err, "failed to load event")
		return
	}
	response.OK(c, e)
}

// Update handles PUT /events/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	in, ok := bindWriteRequest(c)
	if !ok {
		return
	}

	if err := h.svc.Update(c.Request.Context(), userID, id, in); err != nil {
		writeError(c, err, "failed to update event")
		return
	}
	response.OK(c, gin.H{"event_id": id})
}

// Delete handles DELETE /events/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		response.Internal(c, "failed to delete event")
		return
	}
	response.NoContent(c)
}

func bindWriteRequest(c *gin.Context) (Input, bool) {
	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.Message(err))
		return Input{}, false
	}
	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		response.BadRequest(c, "event_date must be an RFC3339 timestamp or YYYY-MM-DD date")
		return Input{}, false
	}
	return Input{
		Name:        req.Name,
		SportType:   req.SportType,
		EventDate:   eventDate,
		Description: req.Description,
		VenueNames:  req.Venues,
	}, true
}

func writeError(c *gin.Context, err error, fallback string) {
	var venueErr *VenueError
	switch {
	case errors.Is(err, ErrNoOrganization):
		response.BadRequest(c, "no organization found")
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "event not found")
	case errors.Is(err, ErrAccessDenied):
		response.Forbidden(c, "access denied")
	case errors.As(err, &venueErr):
		response.Internal(c, venueErr.Error())
	default:
		response.Internal(c, fallback)
	}
}
