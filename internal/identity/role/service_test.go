// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package role_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquangduy/medicore/internal/identity/role"
	"github.com/tranquangduy/medicore/internal/platform/apperr"
)

// fakeRoleRepository is an in-memory [role.Repository] keyed by normalized name.
type fakeRoleRepository struct {
	byID   map[string]*role.Role
	byName map[string]*role.Role

	// failNextCreate simulates losing the insert race: the next Create call
	// returns ErrNameTaken and installs racedRole as the winner.
	failNextCreate bool
	racedRole      *role.Role
}

func newFakeRoleRepository() *fakeRoleRepository {
	return &fakeRoleRepository{
		byID:   make(map[string]*role.Role),
		byName: make(map[string]*role.Role),
	}
}

func (f *fakeRoleRepository) FindByID(_ context.Context, id string) (*role.Role, error) {
	if found, ok := f.byID[id]; ok {
		return cloneRole(found), nil
	}
	return nil, apperr.NotFound("Role")
}

func (f *fakeRoleRepository) FindByName(_ context.Context, normalizedName string) (*role.Role, error) {
	if found, ok := f.byName[normalizedName]; ok {
		return cloneRole(found), nil
	}
	return nil, apperr.NotFound("Role")
}

func (f *fakeRoleRepository) Create(_ context.Context, newRole *role.Role) error {
	if f.failNextCreate {
		f.failNextCreate = false
		f.byID[f.racedRole.ID] = f.racedRole
		f.byName[f.racedRole.Name] = f.racedRole
		return role.ErrNameTaken
	}
	if _, exists := f.byName[newRole.Name]; exists {
		return role.ErrNameTaken
	}
	stored := cloneRole(newRole)
	f.byID[stored.ID] = stored
	f.byName[stored.Name] = stored
	return nil
}

func (f *fakeRoleRepository) Update(_ context.Context, updated *role.Role) error {
	existing, ok := f.byID[updated.ID]
	if !ok {
		return apperr.NotFound("Role")
	}
	if owner, taken := f.byName[updated.Name]; taken && owner.ID != updated.ID {
		return role.ErrNameTaken
	}
	delete(f.byName, existing.Name)
	stored := cloneRole(updated)
	f.byID[stored.ID] = stored
	f.byName[stored.Name] = stored
	return nil
}

func cloneRole(r *role.Role) *role.Role {
	copied := *r
	copied.Scopes = r.CloneScopes()
	return &copied
}

func newRoleService(repo *fakeRoleRepository) *role.Service {
	return role.NewService(repo, slog.Default())
}

/*
TestFindOrCreate_Idempotent verifies repeated discovery returns the same role.
*/
func TestFindOrCreate_Idempotent(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	first, err := service.FindOrCreate(ctx, "doctor", []string{"patient:read", "patient:write"})
	require.NoError(t, err)
	assert.Equal(t, "DOCTOR", first.Name)

	second, err := service.FindOrCreate(ctx, "doctor", []string{"patient:read", "patient:write"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Scopes, second.Scopes)
}

/*
TestFindOrCreate_NormalizationEquivalence verifies that all spellings of a
name resolve to one role.
*/
func TestFindOrCreate_NormalizationEquivalence(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	first, err := service.FindOrCreate(ctx, " doctor ", []string{"patient:read"})
	require.NoError(t, err)

	for _, variant := range []string{"DOCTOR", "Doctor", "\tdoctor\n"} {
		found, err := service.FindOrCreate(ctx, variant, nil)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID, "variant %q must resolve to the same role", variant)
	}
}

/*
TestFindOrCreate_ExistingScopesUntouched verifies that discovering an
existing role never widens its scope set.
*/
func TestFindOrCreate_ExistingScopesUntouched(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	created, err := service.FindOrCreate(ctx, "nurse", []string{"patient:read"})
	require.NoError(t, err)

	// Re-discover with a wider scope set; it must be discarded.
	found, err := service.FindOrCreate(ctx, "nurse", []string{"patient:read", "role:manage"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, []string{"patient:read"}, found.Scopes)
}

/*
TestFindOrCreate_BlankName verifies rejection before any store access.
*/
func TestFindOrCreate_BlankName(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)

	for _, blank := range []string{"", "   ", "\t\n"} {
		created, err := service.FindOrCreate(context.Background(), blank, nil)
		assert.Nil(t, created)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	}
}

/*
TestFindOrCreate_LostRace verifies the loser of a concurrent create returns
the winner's role.
*/
func TestFindOrCreate_LostRace(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	winner := &role.Role{
		ID:     "0190b7b2-52fa-7cc8-a2f1-2d8f1a9e0c11",
		Name:   "DOCTOR",
		Scopes: []string{"patient:read"},
	}
	repo.failNextCreate = true
	repo.racedRole = winner

	resolved, err := service.FindOrCreate(ctx, "doctor", []string{"patient:write"})
	require.NoError(t, err)

	assert.Equal(t, winner.ID, resolved.ID)
	assert.Equal(t, winner.Scopes, resolved.Scopes)
}

/*
TestFindOrCreate_DedupesScopes verifies duplicate scopes collapse on create.
*/
func TestFindOrCreate_DedupesScopes(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)

	created, err := service.FindOrCreate(context.Background(), "admin", []string{"role:manage", "role:manage", "account:manage"})
	require.NoError(t, err)

	assert.Equal(t, []string{"role:manage", "account:manage"}, created.Scopes)
}

/*
TestResolve verifies lookup by ID and by name in any casing.
*/
func TestResolve(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	created, err := service.FindOrCreate(ctx, "doctor", []string{"patient:read"})
	require.NoError(t, err)

	byID, err := service.Resolve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byName, err := service.Resolve(ctx, "  Doctor ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	missing, err := service.Resolve(ctx, "surgeon")
	assert.Nil(t, missing)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestUpdate_RenameAndRescope verifies the happy path replaces name and scopes
wholesale.
*/
func TestUpdate_RenameAndRescope(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	created, err := service.FindOrCreate(ctx, "nurse", []string{"patient:read"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, " head nurse ", []string{"patient:read", "patient:write"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "HEAD NURSE", updated.Name)
	assert.Equal(t, []string{"patient:read", "patient:write"}, updated.Scopes)

	// The old name no longer resolves.
	_, err = service.Resolve(ctx, "nurse")
	assert.Error(t, err)
}

/*
TestUpdate_RenameConflict verifies that a rename collision changes nothing.
*/
func TestUpdate_RenameConflict(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	doctor, err := service.FindOrCreate(ctx, "doctor", []string{"patient:read", "patient:write"})
	require.NoError(t, err)
	nurse, err := service.FindOrCreate(ctx, "nurse", []string{"patient:read"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, nurse.ID, "Doctor", []string{"role:manage"})
	assert.Nil(t, updated)
	require.ErrorIs(t, err, role.ErrNameTaken)

	// Neither role was mutated.
	storedNurse, err := service.Resolve(ctx, nurse.ID)
	require.NoError(t, err)
	assert.Equal(t, "NURSE", storedNurse.Name)
	assert.Equal(t, []string{"patient:read"}, storedNurse.Scopes)

	storedDoctor, err := service.Resolve(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"patient:read", "patient:write"}, storedDoctor.Scopes)
}

/*
TestUpdate_SameNameRescope verifies re-scoping without renaming is allowed.
*/
func TestUpdate_SameNameRescope(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)
	ctx := context.Background()

	created, err := service.FindOrCreate(ctx, "doctor", []string{"patient:read"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, "DOCTOR", []string{"patient:read", "patient:write"})
	require.NoError(t, err)
	assert.Equal(t, []string{"patient:read", "patient:write"}, updated.Scopes)
}

/*
TestUpdate_MissingRole verifies updating an unknown ID returns NotFound.
*/
func TestUpdate_MissingRole(t *testing.T) {
	repo := newFakeRoleRepository()
	service := newRoleService(repo)

	updated, err := service.Update(context.Background(), "0190b7b2-52fa-7cc8-a2f1-2d8f1a9e0c11", "doctor", nil)
	assert.Nil(t, updated)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
