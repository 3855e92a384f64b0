package venues

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matchday/backend/internal/models"
	"github.com/matchday/backend/internal/validation"
	"github.com/matchday/backend/pkg/response"
)

// CreateRequest is the body for POST /venues.
type CreateRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Address  *string `json:"address" binding:"omitempty,max=200"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
}

// Handler handles venue HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a venues handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /venues.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}

	v := &models.Venue{Name: req.Name, Address: req.Address, Capacity: req.Capacity}
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Conflict(c, "a venue with this name already exists")
			return
		}
		response.Internal(c, "failed to create venue")
		return
	}
	response.Created(c, v)
}

// List handles GET /venues.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list venues")
		return
	}
	if list == nil {
		list = []models.Venue{}
	}
	response.OK(c, list)
}
