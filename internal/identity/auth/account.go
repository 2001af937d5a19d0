// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

/*
Package auth implements the credential side of the Medicore identity core.

It defines the Account entity and the logic for credential validation, token
issuance, and the password lifecycle (hash-at-rest, rotation).

# Architecture

This layer is the "Truth" of authentication. A plaintext password exists only
transiently inside a request; the only durable form is the bcrypt hash, and
the only component allowed to replace it is the password lifecycle operation
in this package.
*/
package auth

import (
	"time"
)

// # Domain Entities

// Account represents one authenticatable principal.
//
// RoleID references exactly one role in the registry. Every account must
// resolve to a role at token-issuance time; a dangling reference is a
// data-integrity fault, not an authentication failure.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	RoleID       string    `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Token is the transient, non-persisted result of issuance.
//
// Value is the signed artifact; Scopes is the snapshot embedded in it. The
// core never stores a token — its validity window lives entirely inside the
// signed expiry claim.
type Token struct {
	Value     string   `json:"access_token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	Scopes    []string `json:"scopes"`
}

// # Capabilities

const (
	// ScopeAccountManage allows rotating other principals' passwords.
	ScopeAccountManage = "account:manage"
)

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldNewPassword = "new_password"
	FieldRole        = "role"
)
