// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

/*
Package role implements the Role/Type Registry of the Medicore identity core.

A Role is a first-class named authorization class carrying a set of capability
strings (scopes). Roles are uniquely keyed by their normalized name and are
centrally curated: discovery of an existing role never widens its scope set.

# Architecture

This layer is the "Truth" of authorization classes. The registry is the only
code path that creates, renames, or re-scopes a role; the token issuer reads
from it, never writes.
*/
package role

import (
	"time"
)

// # Domain Entities

// Role represents a named authorization class.
//
// Name always holds the normalized form (see pkg/normalize); the raw label a
// client submitted is never persisted. Two live roles never share a Name —
// the store enforces this with a unique constraint.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CloneScopes returns an independent copy of the role's scope set.
//
// Issued tokens embed a snapshot of the scopes at issuance time; handing out
// the live slice would let later role mutation reach into existing tokens.
func (r *Role) CloneScopes() []string {
	scopes := make([]string, len(r.Scopes))
	copy(scopes, r.Scopes)
	return scopes
}

// # Capabilities

const (
	// ScopeManage guards the role administration endpoints.
	ScopeManage = "role:manage"
)

// # Field Identifiers

// Global field names for validation in the role domain.
const (
	FieldID     = "id"
	FieldName   = "name"
	FieldScopes = "scopes"
)
