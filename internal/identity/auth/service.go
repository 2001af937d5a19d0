// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tranquangduy/medicore/internal/identity/role"
	"github.com/tranquangduy/medicore/internal/platform/apperr"
	"github.com/tranquangduy/medicore/internal/platform/sec"
	"github.com/tranquangduy/medicore/internal/platform/validate"
	"github.com/tranquangduy/medicore/pkg/uuid"
)

// # Contracts & Types

// ErrInvalidCredentials is the single failure value for every credential
// mismatch. An unknown email and a wrong password return this exact value —
// same code, same message — so a caller can never probe which accounts exist.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given subject.
	//
	// # Parameters
	//   - subject: The account's email ('sub' claim).
	//   - scopes: The capability snapshot to embed.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(subject string, scopes []string, timeToLive time.Duration) (string, error)
}

// RoleRegistry defines the slice of the role registry the auth service needs.
type RoleRegistry interface {
	// Resolve looks up a role by ID or name.
	Resolve(context context.Context, ref string) (*role.Role, error)

	// FindOrCreate returns the role owning the normalized name, creating it
	// only if absent. Supplied scopes are discarded when the role exists.
	FindOrCreate(context context.Context, rawName string, scopes []string) (*role.Role, error)
}

// Service implements the credential validation, token issuance, and password
// lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, validation,
// or issuance logic must be reviewed by the security team.
type Service struct {
	accountRepository AccountRepository
	roleRegistry      RoleRegistry
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	roles RoleRegistry,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		roleRegistry:      roles,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Credential Validation

/*
Validate checks an email/password pair against the stored hash.

Description: Read-only. Looks up the account by exact email match, then
performs bcrypt's constant-time comparison against the stored hash. Both
failure modes — unknown email and wrong password — return the identical
[ErrInvalidCredentials] value to prevent account enumeration.

Parameters:
  - context: context.Context
  - email: string
  - password: string (plaintext, never persisted)

Returns:
  - *Account: The matched account on success
  - err: ErrInvalidCredentials, ValidationError, or storage faults
*/
func (service *Service) Validate(context context.Context, email, password string) (*Account, error) {

	// Malformed input is rejected before any store access.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.accountRepository.FindByEmail(context, email)

	// Unknown email: generic failure, identical to the wrong-password path.
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Wrong password: same generic failure.
	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// # Token Issuance

/*
Issue produces a signed, time-bounded token for an already-validated account.

Description: The account's role reference is resolved through the registry
and its scope set is snapshotted into the token. Issue never re-checks the
password — it must only be called with an account returned by [Validate].

A role reference that cannot be resolved is a data-integrity fault (orphaned
reference), surfaced as a server-side error distinct from bad credentials and
logged loudly for the operator. A signing failure means the key material is
broken and is likewise fatal, never retried.

Parameters:
  - context: context.Context
  - account: *Account (already validated)

Returns:
  - *Token: Signed artifact plus its lifetime and scope snapshot
  - err: Integrity or signing faults (apperr.Internal)
*/
func (service *Service) Issue(context context.Context, account *Account) (*Token, error) {

	// Resolve the role reference. Failure here is an integrity problem,
	// never attributed to the caller's credentials.
	resolvedRole, err := service.roleRegistry.Resolve(context, account.RoleID)
	if err != nil {
		service.logger.Error("role_reference_not_resolvable",
			slog.String("account_id", account.ID),
			slog.String("role_id", account.RoleID),
			slog.Any("error", err),
		)
		return nil, apperr.Internal(fmt.Errorf("auth_service_role_not_resolvable: account %s references role %s: %w", account.ID, account.RoleID, err))
	}

	// Snapshot the scope set: later role mutation must not reach into
	// tokens that are already in flight.
	scopes := resolvedRole.CloneScopes()

	signedValue, err := service.tokenProvider.GenerateAccessToken(account.Email, scopes, AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_signing_failed: %w", err))
	}

	return &Token{
		Value:     signedValue,
		TokenType: "Bearer",
		ExpiresIn: int(AccessTokenTTL.Seconds()),
		Scopes:    scopes,
	}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates credentials and issues an access token.

Description: The composition of [Validate] and [Issue] — the only login path
in the system. Gateways never re-implement any part of it.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Token: Transport-ready token with lifetime and scope list
  - err: ErrInvalidCredentials or issuance faults
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Token, error) {
	account, err := service.Validate(context, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return service.Issue(context, account)
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new principal.
type RegisterInput struct {
	Email    string
	Password string
	RoleName string
}

/*
Register validates, hashes, and persists a brand new account.

Description: The password is hashed before anything touches the store —
plaintext never persists. The role is resolved through the registry's
idempotent discovery with an EMPTY scope set: enrolling an account must
never widen an existing role's capabilities.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Account: Created entity
  - err: Conflict (if the email is registered), validation, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Account, error) {

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldRole, input.RoleName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.accountRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Resolve the role with an empty scope set: registration discovers,
	// it never curates.
	accountRole, err := service.roleRegistry.FindOrCreate(context, input.RoleName, nil)
	if err != nil {
		return nil, err
	}

	// Construct the new Account entity. Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		RoleID:       accountRole.ID,
	}

	// Persist the account to the database
	if err := service.accountRepository.Create(context, account); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("account_registered",
		slog.String("account_id", account.ID),
		slog.String("role_id", account.RoleID),
	)

	return account, nil
}

// # Password Lifecycle

/*
RotatePassword replaces an account's stored hash with a hash of the new plaintext.

Description: The new hash is computed first, then written with a single
atomic UPDATE keyed by email. A rotation against an unknown email returns
NotFound rather than silently succeeding — a silent no-op would be a trap
for both testing and auditing.

No token invalidation happens here: tokens already issued remain valid until
their own expiry (there is no revocation list in this core).

Parameters:
  - context: context.Context
  - email: string
  - newPassword: string

Returns:
  - err: apperr.NotFound, validation, or storage errors
*/
func (service *Service) RotatePassword(context context.Context, email, newPassword string) error {

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_rotate_hash_failed: %w", err)
	}

	// Atomic overwrite; the repository returns NotFound when no row matches.
	if err := service.accountRepository.ReplacePasswordHash(context, email, hashedPassword); err != nil {
		return err
	}

	service.logger.Info("password_rotated", slog.String("email", email))

	return nil
}
