// Package bootstrap provisions tenancy for newly authenticated
// identities: one organization, one admin membership, one profile.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matchday/backend/internal/models"
)

// Identity describes an authenticated identity entering bootstrap.
// FullName is the explicit name from the signup form, DisplayName the
// provider-supplied hint, OrgName the organization-name hint.
type Identity struct {
	ID          uuid.UUID
	Email       string
	FullName    string
	DisplayName string
	OrgName     string
}

// Store is the tenant-store surface bootstrap needs.
type Store interface {
	ListMembershipOrgIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CreateOrganization(ctx context.Context, name string) (uuid.UUID, error)
	CreateMembership(ctx context.Context, orgID, userID uuid.UUID, role string) error
	UpsertProfile(ctx context.Context, userID uuid.UUID, name, email string) error
}

// Result reports what Ensure did. Warnings carries messages for
// best-effort steps that failed; the caller proceeds regardless.
type Result struct {
	OrganizationID uuid.UUID
	Provisioned    bool
	Warnings       []string
}

// Service runs first-login provisioning.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a bootstrap service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Ensure makes sure the identity has tenancy. Idempotent: an identity
// with any existing membership is left untouched. The three writes are
// independent calls, not a transaction; organization insert failure is
// fatal, membership and profile failures are logged and surfaced as
// warnings only. Two concurrent first calls for the same identity can
// both insert; the duplicate-organization risk is accepted.
func (s *Service) Ensure(ctx context.Context, ident Identity) (*Result, error) {
	orgIDs, err := s.store.ListMembershipOrgIDs(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(orgIDs) > 0 {
		return &Result{OrganizationID: orgIDs[0]}, nil
	}

	orgID, err := s.store.CreateOrganization(ctx, orgName(ident))
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	result := &Result{OrganizationID: orgID, Provisioned: true}

	if err := s.store.CreateMembership(ctx, orgID, ident.ID, models.RoleAdmin); err != nil {
		s.logger.Warn("bootstrap membership insert failed",
			zap.String("user_id", ident.ID.String()),
			zap.String("organization_id", orgID.String()),
			zap.Error(err))
		result.Warnings = append(result.Warnings, "failed to create membership")
	}

	if err := s.store.UpsertProfile(ctx, ident.ID, ProfileName(ident), ident.Email); err != nil {
		s.logger.Warn("bootstrap profile upsert failed",
			zap.String("user_id", ident.ID.String()),
			zap.Error(err))
		result.Warnings = append(result.Warnings, "failed to create profile")
	}

	return result, nil
}

// ProfileName resolves the display name for the identity's profile:
// explicit full name, then provider display name, then the local part
// of the email, then "User".
func ProfileName(ident Identity) string {
	if ident.FullName != "" {
		return ident.FullName
	}
	if ident.DisplayName != "" {
		return ident.DisplayName
	}
	if at := strings.Index(ident.Email, "@"); at > 0 {
		return ident.Email[:at]
	}
	return "User"
}

func orgName(ident Identity) string {
	if ident.OrgName != "" {
		return ident.OrgName
	}
	return ProfileName(ident) + "'s Organization"
}
