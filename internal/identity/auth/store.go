// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package auth

import (
	"context"
)

// # Account Data Access

// AccountRepository defines the data access contract for accounts.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByEmail returns the account with the given email (exact match).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		Create persists a brand-new account.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: apperr.Conflict if the email is taken, or persistence failures
	*/
	Create(context context.Context, account *Account) error

	/*
		ReplacePasswordHash atomically overwrites the password hash of the
		account owning the given email.

		The write is a single conditional UPDATE: a concurrent credential
		check observes either the old hash or the new one, never a partial
		value, and the old hash is unrecoverable once the write lands.

		Parameters:
		  - context: context.Context
		  - email: string
		  - newHash: string

		Returns:
		  - error: apperr.NotFound if no account owns the email, or
		    persistence failures
	*/
	ReplacePasswordHash(context context.Context, email, newHash string) error
}
