package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/matchday/backend/internal/models"
)

type fakeStore struct {
	memberships map[uuid.UUID][]uuid.UUID // user -> org ids
	orgs        map[uuid.UUID]string
	profiles    map[uuid.UUID]string // user -> profile name

	orgErr        error
	membershipErr error
	profileErr    error

	orgInserts        int
	membershipInserts int
	profileUpserts    int
	lastRole          string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		memberships: make(map[uuid.UUID][]uuid.UUID),
		orgs:        make(map[uuid.UUID]string),
		profiles:    make(map[uuid.UUID]string),
	}
}

func (f *fakeStore) ListMembershipOrgIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.memberships[userID], nil
}

func (f *fakeStore) CreateOrganization(_ context.Context, name string) (uuid.UUID, error) {
	if f.orgErr != nil {
		return uuid.Nil, f.orgErr
	}
	f.orgInserts++
	id := uuid.New()
	f.orgs[id] = name
	return id, nil
}

func (f *fakeStore) CreateMembership(_ context.Context, orgID, userID uuid.UUID, role string) error {
	if f.membershipErr != nil {
		return f.membershipErr
	}
	f.membershipInserts++
	f.lastRole = role
	f.memberships[userID] = append(f.memberships[userID], orgID)
	return nil
}

func (f *fakeStore) UpsertProfile(_ context.Context, userID uuid.UUID, name, _ string) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profileUpserts++
	f.profiles[userID] = name
	return nil
}

func TestEnsureProvisionsFirstLogin(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	userID := uuid.New()

	result, err := svc.Ensure(context.Background(), Identity{
		ID:       userID,
		Email:    "casey@example.com",
		FullName: "Casey Jordan",
		OrgName:  "Northside League",
	})

	require.NoError(t, err)
	require.True(t, result.Provisioned)
	require.Empty(t, result.Warnings)
	require.Equal(t, 1, store.orgInserts)
	require.Equal(t, 1, store.membershipInserts)
	require.Equal(t, 1, store.profileUpserts)
	require.Equal(t, "Northside League", store.orgs[result.OrganizationID])
	require.Equal(t, models.RoleAdmin, store.lastRole)
	require.Equal(t, "Casey Jordan", store.profiles[userID])
	require.Equal(t, []uuid.UUID{result.OrganizationID}, store.memberships[userID])
}

func TestEnsureSecondCallIsNoOp(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	userID := uuid.New()
	ident := Identity{ID: userID, Email: "casey@example.com"}

	first, err := svc.Ensure(context.Background(), ident)
	require.NoError(t, err)

	second, err := svc.Ensure(context.Background(), ident)
	require.NoError(t, err)
	require.False(t, second.Provisioned)
	require.Equal(t, first.OrganizationID, second.OrganizationID)
	require.Equal(t, 1, store.orgInserts)
	require.Equal(t, 1, store.membershipInserts)
	require.Equal(t, 1, store.profileUpserts)
}

func TestEnsureOrganizationFailureIsFatal(t *testing.T) {
	store := newFakeStore()
	store.orgErr = errors.New("connection reset")
	svc := NewService(store, nil)

	_, err := svc.Ensure(context.Background(), Identity{ID: uuid.New(), Email: "a@b.com"})
	require.Error(t, err)
	require.Equal(t, 0, store.membershipInserts)
	require.Equal(t, 0, store.profileUpserts)
}

func TestEnsureBestEffortStepsWarnButSucceed(t *testing.T) {
	store := newFakeStore()
	store.membershipErr = errors.New("membership insert failed")
	store.profileErr = errors.New("profile upsert failed")
	svc := NewService(store, nil)

	result, err := svc.Ensure(context.Background(), Identity{ID: uuid.New(), Email: "a@b.com"})
	require.NoError(t, err)
	require.True(t, result.Provisioned)
	require.Len(t, result.Warnings, 2)
	require.Contains(t, result.Warnings, "failed to create membership")
	require.Contains(t, result.Warnings, "failed to create profile")
	require.Equal(t, 1, store.orgInserts)
}

func TestEnsureProfileFailureAloneStillSucceeds(t *testing.T) {
	store := newFakeStore()
	store.profileErr = errors.New("duplicate key")
	svc := NewService(store, nil)
	userID := uuid.New()

	result, err := svc.Ensure(context.Background(), Identity{ID: userID, Email: "a@b.com"})
	require.NoError(t, err)
	require.Equal(t, []string{"failed to create profile"}, result.Warnings)
	require.Equal(t, []uuid.UUID{result.OrganizationID}, store.memberships[userID])
}

func TestProfileNameResolutionOrder(t *testing.T) {
	require.Equal(t, "Full Name", ProfileName(Identity{FullName: "Full Name", DisplayName: "Display", Email: "x@y.com"}))
	require.Equal(t, "Display", ProfileName(Identity{DisplayName: "Display", Email: "x@y.com"}))
	require.Equal(t, "x", ProfileName(Identity{Email: "x@y.com"}))
	require.Equal(t, "User", ProfileName(Identity{}))
	require.Equal(t, "User", ProfileName(Identity{Email: "@nolocal.com"}))
}

func TestEnsureGeneratedOrgNameDefault(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	result, err := svc.Ensure(context.Background(), Identity{ID: uuid.New(), Email: "casey@example.com"})
	require.NoError(t, err)
	require.Equal(t, "casey's Organization", store.orgs[result.OrganizationID])
}
