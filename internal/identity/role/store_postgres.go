// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

// Postgres implementation of the role registry storage.
//
// # Err Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] values so the service layer never sees
// driver internals.
package role

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranquangduy/medicore/internal/platform/apperr"
	"github.com/tranquangduy/medicore/internal/platform/dberr"
)

// # Role Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the role [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves a role by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Role: Hydrated role entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Role, error) {
	const query = `
		SELECT id, name, scopes, createdat, updatedat
		FROM identity.role
		WHERE id = $1`

	role := &Role{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.Scopes,
		&role.CreatedAt,
		&role.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, fmt.Errorf("postgres_role_repo_find_by_id_failed: %w", err)
	}

	return role, nil
}

/*
FindByName retrieves a role by its normalized name (exact match).

Parameters:
  - context: context.Context
  - normalizedName: string

Returns:
  - *Role: Hydrated role entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByName(context context.Context, normalizedName string) (*Role, error) {
	const query = `
		SELECT id, name, scopes, createdat, updatedat
		FROM identity.role
		WHERE name = $1`

	role := &Role{}
	err := repository.pool.QueryRow(context, query, normalizedName).Scan(
		&role.ID,
		&role.Name,
		&role.Scopes,
		&role.CreatedAt,
		&role.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, fmt.Errorf("postgres_role_repo_find_by_name_failed: %w", err)
	}

	return role, nil
}

/*
Create persists a new role record into the identity.role table.

Description: The unique constraint on the name column is the arbiter for
concurrent creation; a violation surfaces as [ErrNameTaken], an ordinary
result the service resolves by re-reading the winner's row.

Parameters:
  - context: context.Context
  - role: *Role

Returns:
  - error: ErrNameTaken on a name collision, or other persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, role *Role) error {
	const query = `
		INSERT INTO identity.role (id, name, scopes, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	role.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		role.ID,
		role.Name,
		role.Scopes,
		role.CreatedAt,
		role.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("postgres_role_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update overwrites a role's name and scope set.

Parameters:
  - context: context.Context
  - role: *Role

Returns:
  - error: ErrNameTaken on a rename collision, apperr.NotFound if the row is
    gone, or other persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, role *Role) error {
	const query = `
		UPDATE identity.role
		SET name = $2, scopes = $3, updatedat = $4
		WHERE id = $1`

	role.UpdatedAt = time.Now()
	commandTag, err := repository.pool.Exec(context, query,
		role.ID,
		role.Name,
		role.Scopes,
		role.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("postgres_role_repo_update_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Role")
	}

	return nil
}
