package organizations

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchday/backend/internal/middleware"
	"github.com/matchday/backend/internal/models"
	"github.com/matchday/backend/pkg/response"
)

// Handler handles organization HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an organizations handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListMyOrganizations handles GET /organizations. Returns orgs the current user is a member of.
func (h *Handler) ListMyOrganizations(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	orgs, err := h.repo.ListOrganizationsForUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	response.OK(c, orgs)
}

// ListMembers handles GET /organizations/:id/members. The caller must
// be a member of the organization.
func (h *Handler) ListMembers(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	memberOrgs, err := h.repo.ListMembershipOrgIDs(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load memberships")
		return
	}
	member := false
	for _, id := range memberOrgs {
		if id == orgID {
			member = true
			break
		}
	}
	if !member {
		response.Forbidden(c, "not a member of this organization")
		return
	}

	members, err := h.repo.ListMembers(c.Request.Context(), orgID)
	if err != nil {
		response.Internal(c, "failed to load members")
		return
	}
	response.OK(c, members)
}
