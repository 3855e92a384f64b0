package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matchday/backend/internal/bootstrap"
	"github.com/matchday/backend/internal/models"
	"github.com/matchday/backend/internal/validation"
	"github.com/matchday/backend/pkg/response"
	"github.com/matchday/backend/pkg/utils"
)

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	Name             string `json:"name" binding:"required,max=100"`
	OrganizationName string `json:"organization_name" binding:"required,max=100"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo      *Repository
	jwt       *JWTService
	bootstrap *bootstrap.Service
	exchanger Exchanger // nil when OAuth is not configured
	revoker   Revoker   // nil when Redis is not configured
	logger    *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, bootstrapSvc *bootstrap.Service, exchanger Exchanger, revoker Revoker, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, bootstrap: bootstrapSvc, exchanger: exchanger, revoker: revoker, logger: logger}
}

// Signup handles POST /auth/signup. Creates the user, provisions
// tenancy with the supplied organization name, and returns a token.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.Name)
	if err != nil {
		response.Internal(c, "failed to create user")
		return
	}

	result, err := h.bootstrap.Ensure(c.Request.Context(), bootstrap.Identity{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		OrgName:  req.OrganizationName,
	})
	if err != nil {
		h.logger.Error("signup bootstrap failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		response.Internal(c, "failed to create organization")
		return
	}
	if len(result.Warnings) > 0 {
		h.logger.Warn("signup completed with warnings",
			zap.String("user_id", user.ID.String()),
			zap.Strings("warnings", result.Warnings))
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	// OAuth-provisioned users have no password hash
	if user.PasswordHash == "" || !utils.CheckPassword(req.Password, user.PasswordHash) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Logout handles POST /auth/logout. Revokes the presented token until
// its natural expiry. Without a revocation store the token simply
// ages out client-side.
func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Unauthorized(c, "missing authorization header")
		return
	}
	claims, err := h.jwt.Validate(token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		return
	}
	if h.revoker != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.revoker.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			h.logger.Warn("token revocation failed", zap.Error(err))
		}
	}
	response.OK(c, gin.H{"logged_out": true})
}

// OAuthCallback handles GET /auth/callback. Exchanges the provider
// code for an identity, provisions the user and tenancy on first
// login, and returns a token. This is the first-login bootstrap path:
// provisioning warnings are logged, never surfaced as failures.
func (h *Handler) OAuthCallback(c *gin.Context) {
	if h.exchanger == nil {
		response.NotFound(c, "oauth login is not configured")
		return
	}
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing code")
		return
	}

	identity, err := h.exchanger.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("oauth exchange failed", zap.Error(err))
		response.Unauthorized(c, "authentication failed")
		return
	}

	user, err := h.repo.GetOrCreateByEmail(c.Request.Context(), identity.Email, identity.Name)
	if err != nil {
		response.Internal(c, "failed to provision user")
		return
	}

	result, err := h.bootstrap.Ensure(c.Request.Context(), bootstrap.Identity{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: identity.Name,
	})
	if err != nil {
		h.logger.Error("oauth bootstrap failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		response.Internal(c, "failed to create organization")
		return
	}
	if len(result.Warnings) > 0 {
		h.logger.Warn("oauth bootstrap completed with warnings",
			zap.String("user_id", user.ID.String()),
			zap.Strings("warnings", result.Warnings))
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
