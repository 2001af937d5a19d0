// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package role

import (
	"context"

	"github.com/tranquangduy/medicore/internal/platform/apperr"
)

// ErrNameTaken is returned by [Repository.Create] and [Repository.Update] when
// the role's normalized name is already owned by another live role.
//
// It is a single shared value so that the service layer can branch on it with
// [errors.Is] and treat the store's uniqueness violation as an ordinary
// alternate result path rather than exception-driven control flow.
var ErrNameTaken = apperr.Conflict("Role name is already in use")

// # Role Data Access

// Repository defines the data access contract for authorization roles.
type Repository interface {

	/*
		FindByID returns the role with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Role: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Role, error)

	/*
		FindByName returns the role owning the given normalized name.

		The caller is responsible for normalizing the name first; the store
		performs an exact match.

		Parameters:
		  - context: context.Context
		  - normalizedName: string

		Returns:
		  - *Role: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByName(context context.Context, normalizedName string) (*Role, error)

	/*
		Create persists a brand-new role.

		Parameters:
		  - context: context.Context
		  - role: *Role

		Returns:
		  - error: ErrNameTaken if the normalized name is already owned,
		    or other persistence failures
	*/
	Create(context context.Context, role *Role) error

	/*
		Update persists changes to a role's name and scope set.

		The scope set is replaced wholesale, never merged.

		Parameters:
		  - context: context.Context
		  - role: *Role

		Returns:
		  - error: ErrNameTaken if a rename collides, apperr.NotFound if the
		    role vanished, or other persistence failures
	*/
	Update(context context.Context, role *Role) error
}
