// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package role

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/tranquangduy/medicore/internal/platform/validate"
	"github.com/tranquangduy/medicore/pkg/normalize"
	"github.com/tranquangduy/medicore/pkg/uuid"
)

// uuidRegex distinguishes an ID reference from a name reference in [Service.Resolve].
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// # Service Layer

// Service implements the Role/Type Registry use cases.
//
// # Review Process
//
// This service defines the authorized scope of every issued token. Any changes
// to discovery or update semantics must be reviewed by the security team.
type Service struct {
	roleRepository Repository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(roleRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		roleRepository: roleRepo,
		logger:         logger,
	}
}

// # Resolution

/*
Resolve looks up a role by ID or by (raw or normalized) name.

Description: Pure read used by the token issuer and by account registration.
Name references are normalized before lookup, so "  Doctor " and "DOCTOR"
resolve identically.

Parameters:
  - context: context.Context
  - ref: string (role ID, or a role name in any casing)

Returns:
  - *Role: The resolved role
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Resolve(context context.Context, ref string) (*Role, error) {
	if uuidRegex.MatchString(ref) {
		return service.roleRepository.FindByID(context, ref)
	}
	return service.roleRepository.FindByName(context, normalize.RoleName(ref))
}

// # Discovery

/*
FindOrCreate returns the role owning the normalized form of rawName, creating
it with the supplied scopes only if no such role exists.

Description: Idempotent discovery, not an upsert. When the role already
exists the supplied scopes are discarded and the stored role is returned
unchanged — silently widening an existing role's scopes as a side effect of
an unrelated request would be a privilege-escalation hazard.

# Concurrency

Two concurrent callers may both miss the lookup and both attempt the insert.
The store's unique constraint on the normalized name is the arbiter: the
loser receives [ErrNameTaken], re-queries by name, and returns the winner's
role to its caller.

Parameters:
  - context: context.Context
  - rawName: string (normalized internally; blank after trim is rejected)
  - scopes: []string (used only on the create path)

Returns:
  - *Role: The existing or freshly created role
  - error: Validation or storage errors
*/
func (service *Service) FindOrCreate(context context.Context, rawName string, scopes []string) (*Role, error) {

	// Reject blank names before any store access.
	if normalize.IsBlank(rawName) {
		return nil, validate.RequiredError(FieldName, "Role name must not be blank")
	}
	normalizedName := normalize.RoleName(rawName)

	// Fast path: the role already exists. Supplied scopes are intentionally ignored.
	existing, err := service.roleRepository.FindByName(context, normalizedName)
	if err == nil {
		return existing, nil
	}

	// Slow path: create it with the supplied scope set.
	newRole := &Role{
		ID:     uuid.New(),
		Name:   normalizedName,
		Scopes: dedupeScopes(scopes),
	}

	if err := service.roleRepository.Create(context, newRole); err != nil {

		// Lost the create race: re-read the winner's role and return it.
		if errors.Is(err, ErrNameTaken) {
			winner, readErr := service.roleRepository.FindByName(context, normalizedName)
			if readErr != nil {
				return nil, fmt.Errorf("role_service_reread_after_conflict_failed: %w", readErr)
			}
			return winner, nil
		}

		return nil, fmt.Errorf("role_service_create_failed: %w", err)
	}

	service.logger.Info("role_created",
		slog.String("role_id", newRole.ID),
		slog.String("name", newRole.Name),
		slog.Int("scope_count", len(newRole.Scopes)),
	)

	return newRole, nil
}

// # Curation

/*
Update renames a role and/or replaces its scope set wholesale.

Description: Looks up the role by ID, normalizes the new name, and rejects
the rename with a Conflict when another role already owns the normalized
name. On success the stored scope set is replaced, never merged.

Parameters:
  - context: context.Context
  - id: string
  - rawName: string
  - scopes: []string

Returns:
  - *Role: The updated role
  - error: apperr.NotFound, ErrNameTaken, validation, or storage errors
*/
func (service *Service) Update(context context.Context, id, rawName string, scopes []string) (*Role, error) {

	if normalize.IsBlank(rawName) {
		return nil, validate.RequiredError(FieldName, "Role name must not be blank")
	}
	normalizedName := normalize.RoleName(rawName)

	// The target must exist.
	existing, err := service.roleRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// A rename must not collide with another role's normalized name.
	// Nothing is mutated on the conflict path.
	if normalizedName != existing.Name {
		owner, lookupErr := service.roleRepository.FindByName(context, normalizedName)
		if lookupErr == nil && owner.ID != existing.ID {
			return nil, ErrNameTaken
		}
	}

	existing.Name = normalizedName
	existing.Scopes = dedupeScopes(scopes)

	// A concurrent FindOrCreate targeting the same name can still win between
	// the check above and this write; the store's unique constraint surfaces
	// that as ErrNameTaken, which is the documented outcome for the caller.
	if err := service.roleRepository.Update(context, existing); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("role_service_update_failed: %w", err)
	}

	service.logger.Info("role_updated",
		slog.String("role_id", existing.ID),
		slog.String("name", existing.Name),
		slog.Int("scope_count", len(existing.Scopes)),
	)

	return existing, nil
}

// dedupeScopes copies the scope list, dropping duplicates while preserving order.
// Scopes form an unordered set; storing one copy of each keeps tokens compact.
func dedupeScopes(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes))
	result := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if _, duplicate := seen[scope]; duplicate {
			continue
		}
		seen[scope] = struct{}{}
		result = append(result, scope)
	}
	return result
}
