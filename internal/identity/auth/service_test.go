// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package auth_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquangduy/medicore/internal/identity/auth"
	"github.com/tranquangduy/medicore/internal/identity/role"
	"github.com/tranquangduy/medicore/internal/platform/apperr"
	"github.com/tranquangduy/medicore/internal/platform/sec"
)

// # Test Doubles

// fakeAccountRepository is an in-memory [auth.AccountRepository] keyed by email.
type fakeAccountRepository struct {
	byEmail map[string]*auth.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{byEmail: make(map[string]*auth.Account)}
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	for _, account := range f.byEmail {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	if account, ok := f.byEmail[email]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepository) Create(_ context.Context, account *auth.Account) error {
	if _, exists := f.byEmail[account.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *fakeAccountRepository) ReplacePasswordHash(_ context.Context, email, newHash string) error {
	account, ok := f.byEmail[email]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.PasswordHash = newHash
	return nil
}

// fakeRoleRegistry is an in-memory [auth.RoleRegistry].
type fakeRoleRegistry struct {
	byRef map[string]*role.Role
}

func newFakeRoleRegistry(roles ...*role.Role) *fakeRoleRegistry {
	registry := &fakeRoleRegistry{byRef: make(map[string]*role.Role)}
	for _, r := range roles {
		registry.byRef[r.ID] = r
		registry.byRef[r.Name] = r
	}
	return registry
}

func (f *fakeRoleRegistry) Resolve(_ context.Context, ref string) (*role.Role, error) {
	if found, ok := f.byRef[ref]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Role")
}

func (f *fakeRoleRegistry) FindOrCreate(_ context.Context, rawName string, scopes []string) (*role.Role, error) {
	if found, ok := f.byRef[rawName]; ok {
		return found, nil
	}
	created := &role.Role{
		ID:     fmt.Sprintf("role-%d", len(f.byRef)),
		Name:   rawName,
		Scopes: scopes,
	}
	f.byRef[created.ID] = created
	f.byRef[created.Name] = created
	return created, nil
}

// fakeTokenProvider records the issuance arguments instead of signing.
type fakeTokenProvider struct {
	lastSubject string
	lastScopes  []string
	lastTTL     time.Duration
	failNext    bool
}

func (f *fakeTokenProvider) GenerateAccessToken(subject string, scopes []string, timeToLive time.Duration) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", errors.New("signer unavailable")
	}
	f.lastSubject = subject
	f.lastScopes = append([]string(nil), scopes...)
	f.lastTTL = timeToLive
	return "signed." + subject, nil
}

// # Fixtures

const (
	testEmail    = "duy@medicore.health"
	testPassword = "correct horse battery"
)

func newServiceWithAccount(t *testing.T) (*auth.Service, *fakeAccountRepository, *fakeRoleRegistry, *fakeTokenProvider, *role.Role) {
	t.Helper()

	doctorRole := &role.Role{
		ID:     "0190b7b2-52fa-7cc8-a2f1-2d8f1a9e0c11",
		Name:   "DOCTOR",
		Scopes: []string{"patient:read", "patient:write"},
	}

	repo := newFakeAccountRepository()
	registry := newFakeRoleRegistry(doctorRole)
	tokens := &fakeTokenProvider{}
	service := auth.NewService(repo, registry, tokens, slog.Default())

	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &auth.Account{
		ID:           "acct-1",
		Email:        testEmail,
		PasswordHash: hash,
		RoleID:       doctorRole.ID,
	}))

	return service, repo, registry, tokens, doctorRole
}

// # Credential Validation

/*
TestValidate_Success verifies a correct email/password pair returns the account.
*/
func TestValidate_Success(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)

	account, err := service.Validate(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	assert.Equal(t, testEmail, account.Email)
}

/*
TestValidate_IndistinguishableFailures verifies that unknown-email and
wrong-password return the exact same error value.
*/
func TestValidate_IndistinguishableFailures(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)
	ctx := context.Background()

	_, unknownEmailErr := service.Validate(ctx, "nobody@medicore.health", testPassword)
	_, wrongPasswordErr := service.Validate(ctx, testEmail, "wrong-password")

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)

	// Same value, same code, same message: no account enumeration oracle.
	assert.Equal(t, auth.ErrInvalidCredentials, unknownEmailErr)
	assert.Equal(t, auth.ErrInvalidCredentials, wrongPasswordErr)
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

/*
TestValidate_RejectsMalformedInput verifies empty fields fail before any
store lookup.
*/
func TestValidate_RejectsMalformedInput(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"", testPassword},
		{testEmail, ""},
		{"", ""},
	} {
		_, err := service.Validate(ctx, tc.email, tc.password)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

// # Token Issuance

/*
TestIssue_TokenShape verifies the issued token carries the Bearer type, the
300-second lifetime, and the role's scope snapshot.
*/
func TestIssue_TokenShape(t *testing.T) {
	service, _, _, tokens, doctorRole := newServiceWithAccount(t)
	ctx := context.Background()

	account, err := service.Validate(ctx, testEmail, testPassword)
	require.NoError(t, err)

	token, err := service.Issue(ctx, account)
	require.NoError(t, err)

	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, 300, token.ExpiresIn)
	assert.Equal(t, doctorRole.Scopes, token.Scopes)
	assert.Equal(t, testEmail, tokens.lastSubject)
	assert.Equal(t, auth.AccessTokenTTL, tokens.lastTTL)
}

/*
TestIssue_ScopeSnapshot verifies later role mutation does not reach into an
already issued token.
*/
func TestIssue_ScopeSnapshot(t *testing.T) {
	service, _, _, tokens, doctorRole := newServiceWithAccount(t)
	ctx := context.Background()

	account, err := service.Validate(ctx, testEmail, testPassword)
	require.NoError(t, err)

	token, err := service.Issue(ctx, account)
	require.NoError(t, err)

	// Mutate the live role after issuance.
	doctorRole.Scopes[0] = "role:manage"

	assert.Equal(t, []string{"patient:read", "patient:write"}, token.Scopes)
	assert.Equal(t, []string{"patient:read", "patient:write"}, tokens.lastScopes)
}

/*
TestIssue_DanglingRoleReference verifies an orphaned role reference surfaces
as a server fault, never as bad credentials.
*/
func TestIssue_DanglingRoleReference(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)
	ctx := context.Background()

	orphan := &auth.Account{
		ID:     "acct-orphan",
		Email:  "orphan@medicore.health",
		RoleID: "deleted-role-id",
	}

	token, err := service.Issue(ctx, orphan)
	assert.Nil(t, token)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.NotEqual(t, auth.ErrInvalidCredentials, err)
}

/*
TestIssue_SigningFault verifies a broken signer surfaces as a server fault.
*/
func TestIssue_SigningFault(t *testing.T) {
	service, _, _, tokens, _ := newServiceWithAccount(t)
	ctx := context.Background()

	account, err := service.Validate(ctx, testEmail, testPassword)
	require.NoError(t, err)

	tokens.failNext = true
	token, err := service.Issue(ctx, account)
	assert.Nil(t, token)
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
}

// # Login Flow

/*
TestLogin verifies the composed validate-then-issue path.
*/
func TestLogin(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)

	token, err := service.Login(context.Background(), auth.LoginInput{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.Equal(t, 300, token.ExpiresIn)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email:    testEmail,
		Password: "wrong",
	})
	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

// # Registration Flow

/*
TestRegister verifies hashing before persistence and role discovery with an
empty scope set.
*/
func TestRegister(t *testing.T) {
	service, repo, registry, _, doctorRole := newServiceWithAccount(t)
	ctx := context.Background()

	created, err := service.Register(ctx, auth.RegisterInput{
		Email:    "nurse@medicore.health",
		Password: "another-secret",
		RoleName: "DOCTOR",
	})
	require.NoError(t, err)

	// The stored hash verifies the plaintext but never equals it.
	stored := repo.byEmail["nurse@medicore.health"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "another-secret", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("another-secret", stored.PasswordHash))

	// Joining an existing role must not widen it.
	assert.Equal(t, doctorRole.ID, created.RoleID)
	assert.Equal(t, []string{"patient:read", "patient:write"}, registry.byRef["DOCTOR"].Scopes)
}

/*
TestRegister_DuplicateEmail verifies enrollment of a taken email conflicts.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)

	created, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    testEmail,
		Password: "whatever-else",
		RoleName: "DOCTOR",
	})
	assert.Nil(t, created)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestRegister_WeakPassword verifies the strength policy at the boundary.
*/
func TestRegister_WeakPassword(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)

	created, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "new@medicore.health",
		Password: "short",
		RoleName: "DOCTOR",
	})
	assert.Nil(t, created)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Password Lifecycle

/*
TestRotatePassword verifies the old secret stops working and the new one
starts working, atomically from the caller's view.
*/
func TestRotatePassword(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)
	ctx := context.Background()

	require.NoError(t, service.RotatePassword(ctx, testEmail, "brand-new-secret"))

	// Old password no longer validates.
	_, err := service.Validate(ctx, testEmail, testPassword)
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	// New password does.
	account, err := service.Validate(ctx, testEmail, "brand-new-secret")
	require.NoError(t, err)
	assert.Equal(t, testEmail, account.Email)
}

/*
TestRotatePassword_UnknownEmail verifies rotation against a missing account
returns NotFound rather than silently succeeding.
*/
func TestRotatePassword_UnknownEmail(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)

	err := service.RotatePassword(context.Background(), "ghost@medicore.health", "brand-new-secret")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestRotatePassword_WeakPassword verifies the strength policy applies to
rotation as well.
*/
func TestRotatePassword_WeakPassword(t *testing.T) {
	service, _, _, _, _ := newServiceWithAccount(t)

	err := service.RotatePassword(context.Background(), testEmail, "short")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
