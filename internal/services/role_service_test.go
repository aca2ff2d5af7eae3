package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoraleda/crmcore/internal/models"
)

func TestResolve_KnownRole(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Role, error) {
			return NewTestRole(id, "seller", []string{"dashboard:view", "clients:read", "leads:read"}), nil
		},
	}, NewTestLogger())

	set, err := svc.Resolve(context.Background(), "role-seller")

	require.NoError(t, err)
	assert.True(t, set.Has(models.PermClientsRead))
	assert.False(t, set.Has(models.PermUsersManage))
}

func TestResolve_WildcardGrantsEverything(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Role, error) {
			return NewTestRole(id, "admin", []string{"*"}), nil
		},
	}, NewTestLogger())

	set, err := svc.Resolve(context.Background(), "role-admin")

	require.NoError(t, err)
	assert.True(t, set.Has(models.PermUsersManage))
	assert.True(t, set.Has(models.PermQuotationsWrite))
}

func TestResolve_UnknownRoleYieldsEmptySet(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{}, NewTestLogger())

	set, err := svc.Resolve(context.Background(), "no-such-role")

	require.NoError(t, err)
	assert.False(t, set.Has(models.PermDashboardView))
}

func TestResolve_CachesAfterFirstLookup(t *testing.T) {
	calls := 0
	svc := NewRoleService(&MockRoleRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Role, error) {
			calls++
			return NewTestRole(id, "manager", []string{"clients:read", "clients:write"}), nil
		},
	}, NewTestLogger())

	for i := 0; i < 3; i++ {
		_, err := svc.Resolve(context.Background(), "role-manager")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, calls)
}

func TestResolve_RepoErrorPropagates(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Role, error) {
			return nil, models.ErrStorageUnavailable
		},
	}, NewTestLogger())

	_, err := svc.Resolve(context.Background(), "role-x")

	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestAuthorize(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Role, error) {
			return NewTestRole(id, "seller", []string{"leads:read", "leads:write"}), nil
		},
	}, NewTestLogger())

	allowed, err := svc.Authorize(context.Background(), "role-seller", models.PermLeadsWrite)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Authorize(context.Background(), "role-seller", models.PermUsersManage)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestGetByName_NotFound(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{}, NewTestLogger())

	_, err := svc.GetByName(context.Background(), "ghost")

	assert.ErrorIs(t, err, models.ErrRoleNotFound)
}

func TestGetByName_Found(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{
		GetByNameFunc: func(ctx context.Context, name string) (*models.Role, error) {
			return NewTestRole("role-1", name, []string{"dashboard:view"}), nil
		},
	}, NewTestLogger())

	role, err := svc.GetByName(context.Background(), "seller")

	require.NoError(t, err)
	assert.Equal(t, "seller", role.Name)
}
